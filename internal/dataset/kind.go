package dataset

import (
	"fmt"
	"strings"
)

// Kind is the semantic type of a column.
type Kind string

const (
	Auto       Kind = "auto"
	Discrete   Kind = "discrete"
	Continuous Kind = "continuous"
	Datetime   Kind = "datetime"
	Text       Kind = "text"
	List       Kind = "list"
)

// Kinds lists the concrete semantic types in display order.
var Kinds = []Kind{Discrete, Continuous, Datetime, Text, List}

// ParseKind accepts a kind name and a few common aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "discrete", "categorical", "category":
		return Discrete, nil
	case "continuous", "numeric", "number":
		return Continuous, nil
	case "datetime", "date", "time", "timestamp":
		return Datetime, nil
	case "text", "string":
		return Text, nil
	case "list", "list-valued", "collection":
		return List, nil
	default:
		return "", fmt.Errorf("unknown column type %q (use auto|discrete|continuous|datetime|text|list)", s)
	}
}
