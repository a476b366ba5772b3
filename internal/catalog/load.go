package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSrc string

// Error codes for catalog loading and validation.
const (
	ErrCodeNotFound  = "CATALOG_NOT_FOUND"
	ErrCodeParse     = "CATALOG_PARSE"
	ErrCodeSchema    = "CATALOG_SCHEMA"
	ErrCodeDuplicate = "CATALOG_DUPLICATE"
	ErrCodeBadQuery  = "CATALOG_BAD_QUERY"
	ErrCodeBadColumn = "CATALOG_BAD_COLUMN"
	ErrCodeEmpty     = "CATALOG_EMPTY"
)

// Error is a structured catalog error with a stable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// catalogFile is the on-disk shape of a catalog document.
type catalogFile struct {
	Queries []Query `yaml:"queries"`
}

// Load reads a YAML catalog file, checks it against the embedded CUE
// schema, applies the Go-level validation rules, and returns the queries
// in file order.
func Load(path string) ([]Query, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog file not found: %s", path)}
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading catalog file: %v", err)}
	}
	return Parse(data)
}

// Parse validates and decodes a YAML catalog document.
func Parse(data []byte) ([]Query, error) {
	// Generic decode first: the CUE schema sees exactly what the file
	// says, including fields the typed struct would drop.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: fmt.Sprintf("parsing catalog YAML: %v", err)}
	}
	if err := checkSchema(doc); err != nil {
		return nil, err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: fmt.Sprintf("decoding catalog YAML: %v", err)}
	}
	if err := Validate(file.Queries); err != nil {
		return nil, err
	}
	return file.Queries, nil
}

// checkSchema unifies the document with the embedded schema and reports
// the first constraint violation.
func checkSchema(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSrc)
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a bug.
		return &Error{Code: ErrCodeSchema, Message: fmt.Sprintf("compiling catalog schema: %v", err)}
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return &Error{Code: ErrCodeSchema, Message: fmt.Sprintf("encoding catalog document: %v", err)}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &Error{Code: ErrCodeSchema, Message: fmt.Sprintf("catalog does not match schema: %v", err)}
	}
	return nil
}
