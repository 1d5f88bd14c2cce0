// Package openapi REST APIのOpenAPI仕様を埋め込みで配信する
package openapi

import _ "embed"

// Spec OpenAPI仕様ファイルの内容
//
//go:embed openapi.yaml
var Spec []byte
