package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_SyncsUntilCancelled(t *testing.T) {
	srv := NewInsightServer("0", fixedClock(), nil)
	var calls atomic.Int32

	w := &Worker{
		Server:   srv,
		Interval: 10 * time.Millisecond,
		Sync: func(context.Context) ([]byte, error) {
			n := calls.Add(1)
			if n > 1 {
				return nil, errors.New("source unavailable")
			}
			return []byte("BEGIN:VCALENDAR"), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	// Later failures keep the first feed.
	item := srv.feed.Load()
	require.NotNil(t, item)
	assert.Equal(t, "BEGIN:VCALENDAR", string(item.body))

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorker_DefaultInterval(t *testing.T) {
	srv := NewInsightServer("0", fixedClock(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		Server: srv,
		Sync: func(context.Context) ([]byte, error) {
			cancel()
			return []byte("X"), nil
		},
	}

	// The first sync cancels the context, so Run returns right after it.
	w.Run(ctx)
	require.NotNil(t, srv.feed.Load())
}
