package sender

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 4})
	var ran atomic.Int32

	require.NoError(t, d.Enqueue(context.Background(), "send.text", func() error {
		ran.Add(1)
		return nil
	}))
	d.Close()

	assert.Equal(t, int32(1), ran.Load())
	assert.Zero(t, d.ErrorCount())
}

func TestDispatcherCountsPermanentFailures(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 4})

	require.NoError(t, d.Enqueue(context.Background(), "send.text", func() error {
		return errors.New("telegram: bad request (400)")
	}))
	d.Close()

	assert.Equal(t, uint64(1), d.ErrorCount())
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1})
	d.Close()
	err := d.Enqueue(context.Background(), "send.text", func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestDispatcherQueueFull(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	defer d.Close()

	block := make(chan struct{})
	// Occupy the single worker, then fill the queue.
	require.NoError(t, d.Enqueue(context.Background(), "a", func() error {
		<-block
		return nil
	}))

	var err error
	deadline := time.After(time.Second)
	for {
		err = d.Enqueue(context.Background(), "b", func() error { return nil })
		if errors.Is(err, ErrQueueFull) {
			break
		}
		select {
		case <-deadline:
			close(block)
			t.Fatal("queue never reported full")
		default:
		}
	}
	close(block)
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestSanitizeErrorMessage(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot12345:AAaa_bb-cc/sendMessage": timeout`)
	got := sanitizeErrorMessage(err)
	assert.NotContains(t, got, "12345:AAaa_bb-cc")
	assert.Contains(t, got, "bot<redacted>")
}
