package telemetry_test

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/BeatGlow/pager/internal/telemetry"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	tp, shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{
		Endpoint:    "http://localhost:4318",
		ServiceName: "test-service",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := tp.(*sdktrace.TracerProvider); ok {
		t.Fatal("expected no SDK provider when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	_, shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:     true,
		ServiceName: "test-service",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEnabled(t *testing.T) {
	// Non-routable address so no actual export happens.
	tp, shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "test-service",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := tp.(*sdktrace.TracerProvider); !ok {
		t.Fatalf("expected SDK provider, got %T", tp)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
