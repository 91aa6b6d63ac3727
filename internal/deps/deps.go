// Package deps locates the external binaries autoreel shells out to.
package deps

import (
	"os/exec"
	"strings"
)

// Requirement names a binary autoreel needs and how it was configured.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the outcome of looking up one Requirement.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// Check looks the requirement up on PATH. Command holds the resolved path
// when found and the configured value otherwise.
func (r Requirement) Check() Status {
	st := Status{
		Name:        r.Name,
		Command:     strings.TrimSpace(r.Command),
		Description: strings.TrimSpace(r.Description),
		Optional:    r.Optional,
	}
	if st.Command == "" {
		st.Detail = "command not configured"
		return st
	}
	path, err := exec.LookPath(st.Command)
	if err != nil {
		st.Detail = "binary " + strings.TrimSpace(r.Command) + " not found"
		return st
	}
	st.Command, st.Available = path, true
	return st
}

// CheckBinaries runs Check for each requirement, preserving order.
func CheckBinaries(requirements []Requirement) []Status {
	out := make([]Status, len(requirements))
	for i, req := range requirements {
		out[i] = req.Check()
	}
	return out
}

// MissingRequired lists the names of required binaries that were not found.
func MissingRequired(statuses []Status) []string {
	var names []string
	for _, st := range statuses {
		if st.Optional || st.Available {
			continue
		}
		names = append(names, st.Name)
	}
	return names
}
