package generate

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/polyforge/polyforge/internal/spec"
)

// buildOpenAPIDoc renders the API contract the generated backend exposes
// as an OpenAPI 3 document: one schema per entity, one operation per
// derived endpoint. Emitting a real document (rather than a file name)
// lets the consistency analyzer and external tools diff contracts
// structurally.
func buildOpenAPIDoc(s *spec.Specification, endpoints []Endpoint) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   s.Name + " API",
			Version: orDefault(s.Version, "0.1.0"),
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas, len(s.Entities)),
		},
	}

	for _, e := range s.Entities {
		doc.Components.Schemas[pascal(e.Name)] = entitySchema(e).NewRef()
	}

	for _, ep := range endpoints {
		// Flow ids carry a "run" prefix so a flow named after an entity
		// action ("Create Task" over Task) cannot collide with the CRUD
		// operation ids below.
		op := openapi3.NewOperation()
		op.OperationID = "run" + pascal(ep.Flow)
		op.Summary = fmt.Sprintf("Flow %s", ep.Flow)
		op.Responses = openapi3.NewResponses()

		item := &openapi3.PathItem{}
		item.SetOperation(strings.ToUpper(ep.Method), op)
		doc.Paths.Set(ep.Path, item)
	}

	// Entity CRUD endpoints exist on every backend regardless of flows.
	for _, e := range s.Entities {
		createOp := openapi3.NewOperation()
		createOp.OperationID = "create" + pascal(e.Name)
		createOp.Responses = openapi3.NewResponses()

		getOp := openapi3.NewOperation()
		getOp.OperationID = "get" + pascal(e.Name)
		getOp.Responses = openapi3.NewResponses()
		getOp.AddParameter(openapi3.NewPathParameter("id").WithSchema(openapi3.NewUUIDSchema()))

		collection := &openapi3.PathItem{}
		collection.SetOperation("POST", createOp)
		doc.Paths.Set("/"+kebab(e.Name), collection)

		item := &openapi3.PathItem{}
		item.SetOperation("GET", getOp)
		doc.Paths.Set(fmt.Sprintf("/%s/{id}", kebab(e.Name)), item)
	}

	return doc, nil
}

func entitySchema(e spec.Entity) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, f := range e.Fields {
		schema.WithProperty(snake(f.Name), fieldSchema(f.Type))
		if f.Required {
			schema.Required = append(schema.Required, snake(f.Name))
		}
	}
	return schema
}

func fieldSchema(specType string) *openapi3.Schema {
	switch specType {
	case "uuid":
		return openapi3.NewUUIDSchema()
	case "string", "text":
		return openapi3.NewStringSchema()
	case "int":
		return openapi3.NewInt64Schema()
	case "float":
		return openapi3.NewFloat64Schema()
	case "bool":
		return openapi3.NewBoolSchema()
	case "datetime":
		return openapi3.NewDateTimeSchema()
	case "json":
		return openapi3.NewObjectSchema()
	default:
		return openapi3.NewStringSchema()
	}
}
