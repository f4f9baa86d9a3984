package definition

import (
	"encoding/json"

	openapi2 "github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/invopop/yaml"
)

// convertV2ToV3 accepts Swagger 2.0 in JSON or YAML. YAML is normalized to
// JSON first so unquoted status codes like 200 survive as object keys.
func convertV2ToV3(data []byte) (*openapi3.T, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, err
	}
	var v2 openapi2.T
	if err := json.Unmarshal(raw, &v2); err != nil {
		return nil, err
	}
	return openapi2conv.ToV3(&v2)
}
