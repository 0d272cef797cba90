package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap/zaptest"
)

func TestInitWithoutExporter(t *testing.T) {
	ctx := context.Background()

	tel, err := Init(ctx, Options{ServiceName: "catalog-test", Environment: "test"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(ctx, "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, tel.Shutdown(ctx))
}
