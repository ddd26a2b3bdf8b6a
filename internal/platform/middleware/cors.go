// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/taibuivan/tabletop/internal/platform/constants"
)

// # Cross-Origin Resource Sharing

// CORS handles Cross-Origin Resource Sharing for the given origin allow-list.
// An entry of "*" allows every origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", constants.HeaderXRequestID},
		ExposedHeaders: []string{constants.HeaderXRequestID, constants.HeaderRetryAfter},
		MaxAge:         300,
	})
}
