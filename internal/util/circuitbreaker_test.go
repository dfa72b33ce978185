package util

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute, time.Hour, nil, zap.NewNop())

	if !cb.CanExecute() {
		t.Fatal("expected a fresh breaker to allow requests")
	}

	cb.RecordFailure(0)
	if cb.GetState() != CircuitStateClosed {
		t.Fatalf("expected closed below threshold, got %s", cb.GetState())
	}

	cb.RecordFailure(0)
	if cb.GetState() != CircuitStateOpen {
		t.Fatalf("expected open at threshold, got %s", cb.GetState())
	}
	if cb.CanExecute() {
		t.Fatal("expected open breaker to block requests")
	}
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute, time.Hour, nil, zap.NewNop())

	cb.RecordFailure(0)
	cb.RecordSuccess()
	cb.RecordFailure(0)

	if cb.GetState() != CircuitStateClosed {
		t.Fatalf("expected success to reset the count, got %s", cb.GetState())
	}
}

func TestCircuitBreakerRecoversAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond, time.Hour, nil, zap.NewNop())

	cb.RecordFailure(0)
	if cb.GetState() != CircuitStateOpen {
		t.Fatalf("expected open, got %s", cb.GetState())
	}

	time.Sleep(50 * time.Millisecond)

	if cb.GetState() != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after the reset timeout, got %s", cb.GetState())
	}

	cb.RecordSuccess()
	if cb.GetState() != CircuitStateClosed {
		t.Fatalf("expected closed after recovery, got %s", cb.GetState())
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond, time.Hour, nil, zap.NewNop())

	cb.RecordFailure(0)
	time.Sleep(50 * time.Millisecond)
	if cb.GetState() != CircuitStateHalfOpen {
		t.Fatalf("expected half-open, got %s", cb.GetState())
	}

	cb.RecordFailure(time.Hour)
	if cb.GetState() != CircuitStateOpen {
		t.Fatalf("expected failure during recovery to reopen, got %s", cb.GetState())
	}
}

func TestCircuitBreakerHealthCheckPromotesToHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Hour, 0, func() bool { return true }, zap.NewNop())

	cb.RecordFailure(0)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cb.GetState() == CircuitStateHalfOpen {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected health check to promote the breaker, still %s", cb.GetState())
}

func TestCircuitBreakerManualReset(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Hour, time.Hour, nil, zap.NewNop())

	cb.RecordFailure(0)
	if cb.CanExecute() {
		t.Fatal("expected open breaker to block")
	}

	cb.Reset()
	if cb.GetState() != CircuitStateClosed || !cb.CanExecute() {
		t.Fatalf("expected manual reset to close the breaker, got %s", cb.GetState())
	}
}

func TestCircuitBreakerStatus(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Hour, time.Hour, nil, zap.NewNop())

	status := cb.GetStatus()
	if status.State != CircuitStateClosed || status.NextRetryTime != nil {
		t.Fatalf("unexpected fresh status: %+v", status)
	}

	cb.RecordFailure(0)
	status = cb.GetStatus()
	if status.State != CircuitStateOpen || status.FailureCount != 1 {
		t.Fatalf("unexpected open status: %+v", status)
	}
	if status.NextRetryTime == nil || !status.NextRetryTime.After(time.Now()) {
		t.Fatalf("expected a future retry time, got %+v", status.NextRetryTime)
	}
}
