package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func failN(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_ = cb.Execute(func() error { return errBoom })
	}
}

func TestBreakerStaysClosedOnSuccess(t *testing.T) {
	cb := New(Settings{Name: "test"})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	cb := New(Settings{Name: "test"})

	failN(cb, 5)
	assert.Equal(t, StateClosed, cb.State())

	failN(cb, 1)
	assert.Equal(t, StateOpen, cb.State())

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrOpen)
}

func TestBreakerSuccessResetsConsecutiveCount(t *testing.T) {
	cb := New(Settings{Name: "test"})

	failN(cb, 5)
	require.NoError(t, cb.Execute(func() error { return nil }))
	failN(cb, 5)

	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	cb := New(Settings{
		Name:    "test",
		Timeout: 20 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	failN(cb, 2)
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := New(Settings{
		Name:    "test",
		Timeout: 20 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	failN(cb, 2)
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, StateHalfOpen, cb.State())

	_ = cb.Execute(func() error { return errBoom })
	assert.Equal(t, StateOpen, cb.State())
}

func TestBreakerHalfOpenLimitsRequests(t *testing.T) {
	cb := New(Settings{
		Name:        "test",
		MaxRequests: 1,
		Timeout:     20 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	failN(cb, 1)
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, StateHalfOpen, cb.State())

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = cb.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrTooManyRequests)
	close(release)
}

func TestBreakerNotifiesStateChanges(t *testing.T) {
	var transitions []string
	cb := New(Settings{
		Name: "test",
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	failN(cb, 1)
	assert.Equal(t, []string{"closed->open"}, transitions)
}
