package dataset

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrMissingColumns is matched by every *SchemaError.
var ErrMissingColumns = errors.New("missing required columns")

// SchemaError reports required columns absent from a dataset.
// Required and Missing are sorted; Present keeps the file's column order.
type SchemaError struct {
	Required []string
	Present  []string
	Missing  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("CSV must contain columns %v; found %v", e.Required, e.Present)
}

// Is makes errors.Is(err, ErrMissingColumns) succeed.
func (e *SchemaError) Is(target error) bool {
	return target == ErrMissingColumns
}

// RequireColumns succeeds when every required name is present.
func RequireColumns(present []string, required ...string) error {
	var missing []string
	for _, name := range required {
		if !slices.Contains(present, name) && !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	req := dedupeSorted(required)
	sort.Strings(missing)

	return &SchemaError{
		Required: req,
		Present:  slices.Clone(present),
		Missing:  missing,
	}
}

func dedupeSorted(in []string) []string {
	out := slices.Clone(in)
	sort.Strings(out)
	return slices.Compact(out)
}
