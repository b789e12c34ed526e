// Package api embeds the OpenAPI description of the fulfillment HTTP surface.
package api

import (
	_ "embed"
)

// OpenAPI is the raw OpenAPI 3 document in YAML.
//
//go:embed openapi.yaml
var OpenAPI []byte
