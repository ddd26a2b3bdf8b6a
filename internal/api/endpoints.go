// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/taibuivan/tabletop/internal/platform/respond"
)

// endpointsDocument describes every public route for GET /api.
//
//go:embed endpoints.json
var endpointsDocument []byte

// listEndpoints handles GET /api.
func listEndpoints(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]any{"endpoints": json.RawMessage(endpointsDocument)})
}
