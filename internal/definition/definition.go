// Package definition inspects and validates OpenAPI/Swagger documents before
// they are uploaded to, or after they are downloaded from, the registry.
package definition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// ErrorCode categorizes definition errors for clearer handling and messaging.
type ErrorCode string

const (
	ParseError      ErrorCode = "ParseError"
	ValidationError ErrorCode = "ValidationError"
	ConversionError ErrorCode = "ConversionError"
)

// DefinitionError is a structured error with an optional JSON Pointer.
type DefinitionError struct {
	Code        ErrorCode
	Message     string
	JSONPointer string // e.g. "#/paths/~1pets/get"
	Cause       error
}

func (e *DefinitionError) Error() string { return e.Message }
func (e *DefinitionError) Unwrap() error { return e.Cause }

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Info summarizes a definition document.
type Info struct {
	// Major is 3 for OpenAPI 3.x and 2 for Swagger 2.0.
	Major int
	// OAS is the literal version tag, e.g. "3.0.3" or "2.0".
	OAS        string
	Format     string
	Title      string
	APIVersion string
}

type header struct {
	OpenAPI string `yaml:"openapi"`
	Swagger string `yaml:"swagger"`
	Info    struct {
		Title   string `yaml:"title"`
		Version string `yaml:"version"`
	} `yaml:"info"`
}

// Detect reports the version and serialization format of a document.
func Detect(data []byte) (Info, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Info{}, &DefinitionError{Code: ParseError, Message: "definition: document is empty"}
	}

	var h header
	if err := yaml.Unmarshal(data, &h); err != nil {
		return Info{}, &DefinitionError{Code: ParseError, Message: fmt.Sprintf("parse definition: %v", err), Cause: err}
	}

	info := Info{
		Format:     detectFormat(data),
		Title:      h.Info.Title,
		APIVersion: h.Info.Version,
	}
	switch {
	case strings.HasPrefix(strings.TrimSpace(h.OpenAPI), "3."):
		info.Major = 3
		info.OAS = strings.TrimSpace(h.OpenAPI)
	case strings.HasPrefix(strings.TrimSpace(h.Swagger), "2."):
		info.Major = 2
		info.OAS = strings.TrimSpace(h.Swagger)
	default:
		return Info{}, &DefinitionError{Code: ParseError, Message: "definition: missing or unknown version (expected 'openapi: 3.x' or 'swagger: 2.0')"}
	}
	return info, nil
}

func detectFormat(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Validate checks a document against the OpenAPI specification. Swagger 2.0
// documents are converted to OpenAPI 3 first. Unresolved external references
// do not fail validation.
func Validate(ctx context.Context, data []byte) error {
	info, err := Detect(data)
	if err != nil {
		return err
	}

	var doc *openapi3.T
	switch info.Major {
	case 3:
		loader := openapi3.NewLoader()
		doc, err = loader.LoadFromData(data)
		if err != nil {
			return mapValidateOrParseErr(err)
		}
	case 2:
		doc, err = convertV2ToV3(data)
		if err != nil {
			return &DefinitionError{Code: ConversionError, Message: fmt.Sprintf("convert v2→v3: %v", err), Cause: err}
		}
	}

	if err := doc.Validate(ctx); err != nil && !canProceedDespiteValidation(err) {
		return mapValidateOrParseErr(err)
	}
	return nil
}

func mapValidateOrParseErr(err error) error {
	pointer := extractJSONPointer(err)
	code := ValidationError
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "parse") || strings.Contains(lower, "invalid character") || strings.Contains(lower, "unmarshal") {
		code = ParseError
	}
	return &DefinitionError{Code: code, Message: err.Error(), JSONPointer: pointer, Cause: err}
}

var jsonPtrRe = regexp.MustCompile(`#/[^\s'\"]+`)

func extractJSONPointer(err error) string {
	if err == nil {
		return ""
	}
	if me, ok := err.(openapi3.MultiError); ok {
		if len(me) > 0 {
			return extractJSONPointer(me[0])
		}
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if parts := se.JSONPointer(); len(parts) > 0 {
			return "#/" + strings.Join(parts, "/")
		}
		if se.SchemaField != "" {
			return se.SchemaField
		}
	}
	if m := jsonPtrRe.FindString(err.Error()); m != "" {
		return m
	}
	return ""
}

// canProceedDespiteValidation tolerates references the registry resolves
// on its side.
func canProceedDespiteValidation(err error) bool {
	if err == nil {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unresolved ref")
}
