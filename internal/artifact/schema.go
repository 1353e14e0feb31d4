package artifact

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/scandocs/pipeline/constants"
	"github.com/scandocs/pipeline/internal/common"
)

// artifactSchema validates the on-disk page artifact shape at the ingestion
// boundary. Producers disagree on the confidence field name, so either
// confidence or avg_confidence satisfies the schema.
const artifactSchema = `{
  "type": "object",
  "required": ["text", "metadata"],
  "properties": {
    "filename": {"type": "string"},
    "text": {"type": "string"},
    "metadata": {
      "type": "object",
      "required": ["page_number", "dimensions", "ocr_engine"],
      "properties": {
        "page_number": {"type": "integer", "minimum": 1},
        "dimensions": {
          "type": "array",
          "items": {"type": "integer", "minimum": 0},
          "minItems": 2,
          "maxItems": 2
        },
        "confidence": {"type": "number", "minimum": 0, "maximum": 1},
        "avg_confidence": {"type": "number", "minimum": 0, "maximum": 1},
        "median_confidence": {"type": "number", "minimum": 0, "maximum": 1},
        "ocr_engine": {"type": "string"}
      },
      "anyOf": [
        {"required": ["confidence"]},
        {"required": ["avg_confidence"]}
      ]
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("artifact.json", artifactSchema)

// ValidateArtifactJSON checks raw bytes against the artifact schema. Shape
// violations surface as MISSING_FIELD so the caller can skip the artifact
// instead of hitting decode surprises later.
func ValidateArtifactJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return common.NewAppError(constants.KindMissingField, "artifact is not valid JSON", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return common.NewAppError(constants.KindMissingField,
			fmt.Sprintf("artifact does not match schema: %v", err), err)
	}
	return nil
}
