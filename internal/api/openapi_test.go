package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAPISpec_CoversEveryRoute(t *testing.T) {
	doc := NewOpenAPISpec()

	for _, rd := range routeDocs {
		item := doc.Paths.Find(rd.path)
		require.NotNil(t, item, rd.path)
		op := item.GetOperation(rd.method)
		require.NotNil(t, op, "%s %s", rd.method, rd.path)
		assert.NotEmpty(t, op.Summary)
	}
}

func TestNewOpenAPISpec_AdminOperationsDeclareAuthErrors(t *testing.T) {
	doc := NewOpenAPISpec()

	op := doc.Paths.Find("/products").GetOperation(http.MethodPost)

	require.NotNil(t, op.Security)
	assert.NotNil(t, op.Responses.Value("401"))
	assert.NotNil(t, op.Responses.Value("403"))
	assert.NotNil(t, op.Responses.Value("201"))
}

func TestNewOpenAPISpec_Schemas(t *testing.T) {
	doc := NewOpenAPISpec()

	for _, name := range []string{"Product", "ProductInput", "Category", "Cart", "Error"} {
		assert.Contains(t, doc.Components.Schemas, name)
	}
	assert.Contains(t, doc.Components.Schemas["Cart"].Value.Properties, "items")
}
