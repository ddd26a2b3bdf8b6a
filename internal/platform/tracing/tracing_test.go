// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/tracing"
)

/*
TestInitTracer_Disabled returns a no-op shutdown.
*/
func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := tracing.InitTracer(context.Background(), tracing.Config{ServiceName: "tabletop-api"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

/*
TestInitTracer_Enabled builds a provider without contacting the collector.
*/
func TestInitTracer_Enabled(t *testing.T) {
	shutdown, err := tracing.InitTracer(context.Background(), tracing.Config{
		ServiceName:  "tabletop-api",
		Environment:  "test",
		OTLPEndpoint: "localhost:4318",
		SampleRate:   0.5,
		Enabled:      true,
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	_ = shutdown(context.Background())
}

/*
TestSampler names the sampler chosen for each rate.
*/
func TestSampler(t *testing.T) {
	assert.Contains(t, tracing.Sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, tracing.Sampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, tracing.Sampler(0.25).Description(), "TraceIDRatioBased")
}
