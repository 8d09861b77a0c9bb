package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/itcguard/itc-api/docs"
)

func TestSwaggerRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	for path, method := range map[string]string{
		"/health":                     "get",
		"/api/compliance":             "get",
		"/api/compliance/{id}":        "patch",
		"/api/compliance/{id}/verify": "post",
		"/api/compliance/{id}/settle": "post",
		"/api/compliance/{id}/block":  "post",
		"/api/scan":                   "post",
		"/api/reports/gstr3b":         "get",
		"/api/chat":                   "post",
	} {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, path)
	}
}
