package preflight

import (
	"context"

	"autoreel/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the filesystem and tool checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckInputFolder("Input folder", cfg.Paths.InputDir),
		CheckDirectoryAccess("Output folder", cfg.Paths.OutputDir),
	}
	if cfg.Paths.ScratchDir != "" {
		results = append(results, CheckDirectoryAccess("Scratch folder", cfg.Paths.ScratchDir))
	}
	for _, status := range CheckSystemDeps(ctx, cfg) {
		result := Result{Name: status.Name, Passed: status.Available || status.Optional, Detail: status.Command}
		if status.Detail != "" {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// Failed returns the checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
