package overdue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
)

type countingEscalator struct {
	calls int64
}

func (e *countingEscalator) EscalateOverdue(ctx context.Context) (int, *serviceerror.ServiceError) {
	atomic.AddInt64(&e.calls, 1)
	return 1, nil
}

type failingEscalator struct {
	calls int64
}

func (e *failingEscalator) EscalateOverdue(ctx context.Context) (int, *serviceerror.ServiceError) {
	atomic.AddInt64(&e.calls, 1)
	svcErr := serviceerror.CustomServiceError(serviceerror.DatabaseError, "boom")
	return 0, svcErr
}

func TestChecker_SweepsImmediatelyOnStart(t *testing.T) {
	escalator := &countingEscalator{}
	checker := NewChecker(time.Hour, map[string]Escalator{"requests": escalator})

	checker.Start(context.Background())
	defer checker.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&escalator.calls) >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestChecker_SweepsOnEachTick(t *testing.T) {
	escalator := &countingEscalator{}
	checker := NewChecker(20*time.Millisecond, map[string]Escalator{"requests": escalator})

	checker.Start(context.Background())
	defer checker.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&escalator.calls) >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestChecker_FailureOfOneTargetDoesNotSkipOthers(t *testing.T) {
	failing := &failingEscalator{}
	healthy := &countingEscalator{}
	checker := NewChecker(time.Hour, map[string]Escalator{
		"requests":   failing,
		"grievances": healthy,
	})

	checker.Start(context.Background())
	defer checker.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&failing.calls) >= 1 && atomic.LoadInt64(&healthy.calls) >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestChecker_StopTerminatesSweepLoop(t *testing.T) {
	escalator := &countingEscalator{}
	checker := NewChecker(10*time.Millisecond, map[string]Escalator{"requests": escalator})

	checker.Start(context.Background())
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&escalator.calls) >= 1
	}, time.Second, 5*time.Millisecond)

	checker.Stop()
	settled := atomic.LoadInt64(&escalator.calls)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt64(&escalator.calls))
}
