package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestCall_returnsAnswer(t *testing.T) {
	defer goleak.VerifyNone(t)

	got, err := Call(context.Background(), time.Second, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	}, 21)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestCall_propagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Call(context.Background(), time.Second, func(context.Context, string) (string, error) {
		return "", boom
	}, "x")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrRemoteUnreachable)
}

func TestCall_timeoutFailsFast(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	start := time.Now()
	_, err := Call(context.Background(), 50*time.Millisecond, func(context.Context, int) (int, error) {
		<-release
		return 1, nil
	}, 0)
	elapsed := time.Since(start)
	close(release)

	assert.ErrorIs(t, err, ErrRemoteUnreachable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, time.Second)

	// give the released handler a moment to deliver into the buffered channel and exit
	time.Sleep(20 * time.Millisecond)
}

func TestCall_handlerSeesDeadline(t *testing.T) {
	_, err := Call(context.Background(), 30*time.Millisecond, func(ctx context.Context, _ int) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}, 0)
	assert.ErrorIs(t, err, ErrRemoteUnreachable)
}

func TestCall_panicIsUnreachable(t *testing.T) {
	_, err := Call(context.Background(), time.Second, func(context.Context, int) (int, error) {
		panic("tab crashed")
	}, 0)
	assert.ErrorIs(t, err, ErrRemoteUnreachable)
}

func TestCall_nonPositiveTimeout(t *testing.T) {
	_, err := Call(context.Background(), 0, func(context.Context, int) (int, error) {
		return 1, nil
	}, 0)
	assert.ErrorIs(t, err, ErrRemoteUnreachable)
}
