package spec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/spec"
)

func TestJSON_ConvertsEmbeddedDocument(t *testing.T) {
	raw, err := spec.JSON()
	require.NoError(t, err)

	var doc struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotEmpty(t, doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/destinations")
	assert.Contains(t, doc.Paths, "/sync")
}
