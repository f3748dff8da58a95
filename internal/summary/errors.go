package summary

import (
	"fmt"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
)

// InvalidTrimError indicates trim counts that are negative or would remove
// every observed value.
type InvalidTrimError struct {
	Label    string
	Lower    int
	Upper    int
	Observed int
}

func (e *InvalidTrimError) Error() string {
	if e.Lower < 0 || e.Upper < 0 {
		return fmt.Sprintf("invalid trim for %q: lower=%d upper=%d must be non-negative", e.Label, e.Lower, e.Upper)
	}
	return fmt.Sprintf("invalid trim for %q: lower=%d + upper=%d must be less than %d observed values",
		e.Label, e.Lower, e.Upper, e.Observed)
}

// UnsupportedKindError indicates a kind the summary builder has no statistics for.
type UnsupportedKindError struct {
	Kind dataset.Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("no summary table for column type %q", e.Kind)
}
