// Package gen holds the server code generated from spec/openapi.yaml.
// Regenerate after editing the document; never edit api.gen.go by hand.
package gen

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config oapi-codegen.yaml ../../../spec/openapi.yaml
