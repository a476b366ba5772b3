package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// namePattern restricts query names to characters safe in artifact file
// names. Mirrors the #Query.name constraint in schema.cue for catalogs
// constructed in code rather than loaded from a file.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks a catalog beyond what the CUE schema expresses:
// non-empty, unique query names, the {source} placeholder present in every
// text variant, positive row bounds, and well-formed column declarations.
func Validate(queries []Query) error {
	if len(queries) == 0 {
		return &Error{Code: ErrCodeEmpty, Message: "catalog declares no queries"}
	}

	seen := make(map[string]struct{}, len(queries))
	for _, q := range queries {
		if !namePattern.MatchString(q.Name) {
			return &Error{Code: ErrCodeBadQuery, Message: fmt.Sprintf("query name %q is not a valid identifier", q.Name)}
		}
		if _, dup := seen[q.Name]; dup {
			return &Error{Code: ErrCodeDuplicate, Message: fmt.Sprintf("duplicate query name %q", q.Name)}
		}
		seen[q.Name] = struct{}{}

		if err := validateQuery(q); err != nil {
			return err
		}
	}
	return nil
}

func validateQuery(q Query) error {
	if strings.TrimSpace(q.Text) == "" {
		return &Error{Code: ErrCodeBadQuery, Message: fmt.Sprintf("query %q has empty text", q.Name)}
	}
	if !strings.Contains(q.Text, SourcePlaceholder) {
		return &Error{Code: ErrCodeBadQuery, Message: fmt.Sprintf("query %q text does not reference %s", q.Name, SourcePlaceholder)}
	}
	for tag, text := range q.EngineOverrides {
		if !strings.Contains(text, SourcePlaceholder) {
			return &Error{Code: ErrCodeBadQuery, Message: fmt.Sprintf("query %q override for %q does not reference %s", q.Name, tag, SourcePlaceholder)}
		}
	}
	if q.MaxRows <= 0 {
		return &Error{Code: ErrCodeBadQuery, Message: fmt.Sprintf("query %q must declare max_rows > 0", q.Name)}
	}

	cols := make(map[string]struct{}, len(q.Columns))
	for _, c := range q.Columns {
		if c.Name == "" {
			return &Error{Code: ErrCodeBadColumn, Message: fmt.Sprintf("query %q declares a column with no name", q.Name)}
		}
		if !c.Role.IsValid() {
			return &Error{Code: ErrCodeBadColumn, Message: fmt.Sprintf("query %q column %q has invalid role %q", q.Name, c.Name, c.Role)}
		}
		if _, dup := cols[c.Name]; dup {
			return &Error{Code: ErrCodeBadColumn, Message: fmt.Sprintf("query %q declares column %q twice", q.Name, c.Name)}
		}
		cols[c.Name] = struct{}{}
	}
	return nil
}
