// Package spec embeds the OpenAPI specification for the Travel Planner API.
// The HTTP server serves it at /openapi.yaml and, converted, at /openapi.json.
package spec

import (
	_ "embed"
	"sync"

	"github.com/ghodss/yaml"
)

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte

// JSON returns the document converted to JSON. The conversion runs once.
var JSON = sync.OnceValues(func() ([]byte, error) {
	return yaml.YAMLToJSON(OpenAPI)
})
