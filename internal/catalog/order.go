package catalog

import (
	"fmt"
	"strings"
)

// OrderPolicy determines the sequence of catalog items.
type OrderPolicy string

const (
	OrderName       OrderPolicy = "name"
	OrderDateNewest OrderPolicy = "date_newest"
	OrderDateOldest OrderPolicy = "date_oldest"
	OrderRandom     OrderPolicy = "random"
)

// Deterministic reports whether repeated listings of an unchanged folder yield the same order.
func (p OrderPolicy) Deterministic() bool {
	return p != OrderRandom
}

// ParseOrder maps user input to an OrderPolicy. Empty input selects name order.
func ParseOrder(value string) (OrderPolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch normalized {
	case "", "name", "name_asc":
		return OrderName, nil
	case "date_newest", "newest", "date":
		return OrderDateNewest, nil
	case "date_oldest", "oldest":
		return OrderDateOldest, nil
	case "random", "shuffle":
		return OrderRandom, nil
	default:
		return "", fmt.Errorf("unknown order %q", value)
	}
}
