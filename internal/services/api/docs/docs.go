// Package docs embeds the OpenAPI document served by swaggerkit
package docs

import _ "embed"

// OpenAPI is the API description in OpenAPI 3 JSON
//
//go:embed openapi.json
var OpenAPI []byte
