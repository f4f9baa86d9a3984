package definition

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const petstoreV3 = `openapi: 3.0.3
info:
  title: Petstore
  version: "1.0.0"
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
`

const petstoreV2JSON = `{
  "swagger": "2.0",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {"responses": {"200": {"description": "ok"}}}
    }
  }
}`

func TestDetect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data string
		want Info
	}{
		{
			name: "openapi 3 yaml",
			data: petstoreV3,
			want: Info{Major: 3, OAS: "3.0.3", Format: FormatYAML, Title: "Petstore", APIVersion: "1.0.0"},
		},
		{
			name: "swagger 2 json",
			data: petstoreV2JSON,
			want: Info{Major: 2, OAS: "2.0", Format: FormatJSON, Title: "Petstore", APIVersion: "1.0.0"},
		},
		{
			name: "openapi 3.1 json with leading space",
			data: "\n  {\"openapi\": \"3.1.0\", \"info\": {\"title\": \"t\"}}",
			want: Info{Major: 3, OAS: "3.1.0", Format: FormatJSON, Title: "t"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Detect([]byte(tt.data))
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Detect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetect_UnknownVersion(t *testing.T) {
	t.Parallel()
	_, err := Detect([]byte("title: nothing here\n"))
	var de *DefinitionError
	if !errors.As(err, &de) || de.Code != ParseError {
		t.Fatalf("expected ParseError, got %v (%T)", err, err)
	}
}

func TestDetect_Empty(t *testing.T) {
	t.Parallel()
	_, err := Detect([]byte("  \n"))
	var de *DefinitionError
	if !errors.As(err, &de) || de.Code != ParseError {
		t.Fatalf("expected ParseError, got %v (%T)", err, err)
	}
}

func TestDetect_Malformed(t *testing.T) {
	t.Parallel()
	_, err := Detect([]byte("openapi: [3.0\n"))
	var de *DefinitionError
	if !errors.As(err, &de) || de.Code != ParseError {
		t.Fatalf("expected ParseError, got %v (%T)", err, err)
	}
	if de.Cause == nil {
		t.Fatalf("expected cause to be preserved")
	}
}

func TestValidate_V3(t *testing.T) {
	t.Parallel()
	if err := Validate(context.Background(), []byte(petstoreV3)); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidate_V3_InvalidDocument(t *testing.T) {
	t.Parallel()
	content := strings.TrimSpace(`openapi: 3.0.0
info:
  title: Bad
  version: "1.0.0"
paths:
  "/pet":
    get:
      responses: {}
`) + "\n"

	err := Validate(context.Background(), []byte(content))
	if err == nil {
		t.Fatalf("expected validation error for incomplete responses")
	}
	var de *DefinitionError
	if !errors.As(err, &de) {
		t.Fatalf("expected DefinitionError, got %T", err)
	}
	if de.Code != ValidationError && de.Code != ParseError { // parser version differences
		t.Fatalf("expected ValidationError/ParseError, got %v", de.Code)
	}
}

func TestValidate_V2_Conversion(t *testing.T) {
	t.Parallel()
	if err := Validate(context.Background(), []byte(petstoreV2JSON)); err != nil {
		t.Fatalf("validate v2 json: %v", err)
	}

	yamlDoc := strings.TrimSpace(`swagger: "2.0"
info:
  title: Sample
  version: "1.0.0"
paths:
  "/hello":
    get:
      responses:
        200:
          description: ok
`) + "\n"
	if err := Validate(context.Background(), []byte(yamlDoc)); err != nil {
		t.Fatalf("validate v2 yaml: %v", err)
	}
}

func TestValidate_V2_Failure(t *testing.T) {
	t.Parallel()
	content := strings.TrimSpace(`swagger: "2.0"
paths: {}
`) + "\n"

	err := Validate(context.Background(), []byte(content))
	if err == nil {
		t.Fatalf("expected error for v2 document without info")
	}
	var de *DefinitionError
	if !errors.As(err, &de) {
		t.Fatalf("expected DefinitionError, got %T", err)
	}
	if de.Code != ConversionError && de.Code != ValidationError && de.Code != ParseError {
		t.Fatalf("expected ConversionError/ValidationError/ParseError, got %v", de.Code)
	}
}
