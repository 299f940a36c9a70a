package util

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute, zap.NewNop())

	cb.RecordFailure()
	if !cb.CanExecute() {
		t.Fatalf("expected circuit to stay closed below threshold")
	}

	cb.RecordFailure()
	if cb.CanExecute() {
		t.Fatalf("expected circuit to open at threshold")
	}
	if cb.NextRetryTime().IsZero() {
		t.Fatalf("expected retry time while open")
	}
}

func TestCircuitBreakerHalfOpenAfterTimeout(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker("test", 1, 30*time.Second, zap.NewNop())
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	if cb.State() != CircuitStateOpen {
		t.Fatalf("expected OPEN, got %s", cb.State())
	}

	now = now.Add(31 * time.Second)
	if cb.State() != CircuitStateHalfOpen {
		t.Fatalf("expected HALF_OPEN after timeout, got %s", cb.State())
	}

	cb.RecordFailure()
	if cb.State() != CircuitStateOpen {
		t.Fatalf("expected failed probe to reopen the circuit")
	}

	now = now.Add(31 * time.Second)
	_ = cb.State()
	cb.RecordSuccess()
	if cb.State() != CircuitStateClosed {
		t.Fatalf("expected successful probe to close the circuit, got %s", cb.State())
	}
}

func TestCircuitBreakerSuccessResetsCount(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute, zap.NewNop())
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	if !cb.CanExecute() {
		t.Fatalf("expected success to reset the consecutive failure count")
	}
}
