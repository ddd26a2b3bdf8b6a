// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/tabletop/internal/platform/ctxutil"
)

// Tracing starts a server span per request. W3C trace context is extracted
// from inbound headers, and the span is renamed to the chi route pattern once
// routing has happened.
func Tracing(serviceName string) func(http.Handler) http.Handler {
	tracer := otel.Tracer("github.com/taibuivan/tabletop/" + serviceName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			propagator := otel.GetTextMapPropagator()
			ctx := propagator.Extract(request.Context(), propagation.HeaderCarrier(request.Header))

			ctx, span := tracer.Start(ctx, request.Method+" "+request.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPMethod(request.Method),
					semconv.HTTPTarget(request.URL.RequestURI()),
					semconv.UserAgentOriginal(request.UserAgent()),
					attribute.String("http.client_ip", RealIP(request)),
					attribute.String("request_id", ctxutil.GetRequestID(request.Context())),
				),
			)
			defer span.End()

			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(wrappedWriter, request.WithContext(ctx))

			if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
				if pattern := routeContext.RoutePattern(); pattern != "" {
					span.SetName(request.Method + " " + pattern)
					span.SetAttributes(attribute.String("http.route", pattern))
				}
			}

			span.SetAttributes(semconv.HTTPStatusCode(wrappedWriter.status))
			if wrappedWriter.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(wrappedWriter.status))
			}
		})
	}
}
