package api

import (
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

const schemaPrefix = "#/components/schemas/"

type queryParam struct {
	name, typ, description string
}

type routeDoc struct {
	method, path, summary string
	params                []queryParam
	request               string
	status                int
	response              string
	list                  bool
	admin                 bool
}

var routeDocs = []routeDoc{
	{method: http.MethodGet, path: "/products", summary: "Search products", status: 200, response: "Product", list: true, params: []queryParam{
		{"category", "string", "Category id, or a comma separated list of ids"},
		{"search", "string", "Case-insensitive substring of the product name"},
		{"minPrice", "number", "Inclusive lower price bound"},
		{"maxPrice", "number", "Inclusive upper price bound"},
		{"inStock", "boolean", "Only products with stock"},
		{"outOfStock", "boolean", "Only products without stock"},
		{"limit", "integer", "Maximum number of results"},
	}},
	{method: http.MethodPost, path: "/products", summary: "Create a product", request: "ProductInput", status: 201, response: "Product", admin: true},
	{method: http.MethodGet, path: "/products/{id}", summary: "Get a product", status: 200, response: "Product"},
	{method: http.MethodPut, path: "/products/{id}", summary: "Update a product", request: "ProductInput", status: 200, response: "Product", admin: true},
	{method: http.MethodDelete, path: "/products/{id}", summary: "Delete a product", status: 204, admin: true},
	{method: http.MethodGet, path: "/products/{id}/related", summary: "Products in the same category", status: 200, response: "Product", list: true, params: []queryParam{
		{"limit", "integer", "Maximum number of results"},
	}},
	{method: http.MethodGet, path: "/categories", summary: "List categories", status: 200, response: "Category", list: true},
	{method: http.MethodPost, path: "/categories", summary: "Create a category", request: "CategoryInput", status: 201, response: "Category", admin: true},
	{method: http.MethodPut, path: "/categories/{id}", summary: "Update a category", request: "CategoryInput", status: 200, response: "Category", admin: true},
	{method: http.MethodDelete, path: "/categories/{id}", summary: "Delete a category", status: 204, admin: true},
	{method: http.MethodGet, path: "/cart", summary: "Get the cart", status: 200, response: "Cart"},
	{method: http.MethodPost, path: "/cart", summary: "Set a product quantity in the cart", request: "CartLineInput", status: 200, response: "Cart"},
	{method: http.MethodDelete, path: "/cart", summary: "Remove a line, or clear the cart without productId", status: 200, response: "Cart", params: []queryParam{
		{"productId", "string", "Product whose line is removed"},
	}},
}

// NewOpenAPISpec describes the HTTP API.
func NewOpenAPISpec() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Storefront API",
			Version:     "1.0.0",
			Description: "Catalog, search and cart of the storefront.",
		},
		Paths: &openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: componentSchemas(),
			SecuritySchemes: openapi3.SecuritySchemes{
				"bearerAuth": &openapi3.SecuritySchemeRef{
					Value: openapi3.NewJWTSecurityScheme(),
				},
			},
		},
	}

	for _, rd := range routeDocs {
		pathItem := doc.Paths.Find(rd.path)
		if pathItem == nil {
			pathItem = &openapi3.PathItem{}
			doc.Paths.Set(rd.path, pathItem)
		}
		pathItem.SetOperation(rd.method, rd.operation())
	}
	return doc
}

func (rd routeDoc) operation() *openapi3.Operation {
	op := &openapi3.Operation{
		Summary:   rd.summary,
		Responses: &openapi3.Responses{},
	}

	if rd.path == "/products/{id}" || rd.path == "/products/{id}/related" || rd.path == "/categories/{id}" {
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema()),
		})
	}
	for _, p := range rd.params {
		param := openapi3.NewQueryParameter(p.name).WithDescription(p.description)
		param.Schema = &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{p.typ}}}
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
	}

	if rd.request != "" {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schemaRef(rd.request)),
		}
	}

	description := http.StatusText(rd.status)
	success := &openapi3.Response{Description: &description}
	if rd.response != "" {
		ref := schemaRef(rd.response)
		if rd.list {
			ref = &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"array"}, Items: ref}}
		}
		success.Content = openapi3.NewContentWithJSONSchemaRef(ref)
	}
	op.Responses.Set(strconv.Itoa(rd.status), &openapi3.ResponseRef{Value: success})

	if rd.request != "" || len(rd.params) > 0 {
		op.Responses.Set("400", errorResponseRef("Invalid input"))
	}
	if rd.admin {
		op.Security = &openapi3.SecurityRequirements{{"bearerAuth": []string{}}}
		op.Responses.Set("401", errorResponseRef("No session"))
		op.Responses.Set("403", errorResponseRef("Admin role required"))
	}
	if rd.path != "/products" && rd.path != "/categories" {
		op.Responses.Set("404", errorResponseRef("Not found"))
	}
	op.Responses.Set("500", errorResponseRef("Persistence failure"))
	return op
}

func schemaRef(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: schemaPrefix + name}
}

func errorResponseRef(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &description,
			Content:     openapi3.NewContentWithJSONSchemaRef(schemaRef("Error")),
		},
	}
}

func object(required []string, props map[string]*openapi3.Schema) *openapi3.SchemaRef {
	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: make(openapi3.Schemas, len(props)),
		Required:   required,
	}
	for name, p := range props {
		schema.Properties[name] = &openapi3.SchemaRef{Value: p}
	}
	return &openapi3.SchemaRef{Value: schema}
}

func componentSchemas() openapi3.Schemas {
	str := openapi3.NewStringSchema
	num := openapi3.NewFloat64Schema
	integer := openapi3.NewIntegerSchema

	cartItem := object(nil, map[string]*openapi3.Schema{
		"productId": str(), "name": str(), "price": num(), "image": str(),
		"category": str(), "stock": integer(), "quantity": integer(), "lineTotal": num(),
	})

	schemas := openapi3.Schemas{
		"Product": object([]string{"id", "name", "price", "category", "stock"}, map[string]*openapi3.Schema{
			"id": str(), "name": str(), "price": num(), "description": str(),
			"category": str(), "stock": integer(), "image": str(),
			"createdAt": openapi3.NewDateTimeSchema(),
		}),
		"ProductInput": object([]string{"name", "price", "description", "category"}, map[string]*openapi3.Schema{
			"name":        openapi3.NewStringSchema().WithMaxLength(100),
			"price":       openapi3.NewFloat64Schema().WithMin(0),
			"description": str(),
			"category":    str(),
			"stock":       openapi3.NewIntegerSchema().WithMin(0),
			"image":       str(),
		}),
		"Category": object([]string{"id", "name"}, map[string]*openapi3.Schema{
			"id": str(), "name": str(), "image": str(),
		}),
		"CategoryInput": object([]string{"name"}, map[string]*openapi3.Schema{
			"id": str(), "name": openapi3.NewStringSchema().WithMaxLength(50), "image": str(),
		}),
		"CartLineInput": object([]string{"productId"}, map[string]*openapi3.Schema{
			"productId": str(), "quantity": integer(),
		}),
		"Error": object([]string{"error"}, map[string]*openapi3.Schema{
			"error":  str(),
			"fields": openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()),
		}),
	}

	schemas["Cart"] = object(nil, map[string]*openapi3.Schema{
		"subtotal": num(), "shipping": num(), "total": num(),
	})
	schemas["Cart"].Value.Properties["items"] = &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:  &openapi3.Types{"array"},
		Items: cartItem,
	}}
	return schemas
}

// GetOpenAPI serves the API description as JSON.
func GetOpenAPI(doc *openapi3.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, doc)
	}
}
