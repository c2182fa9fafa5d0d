package background_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-sync/internal/platform/background"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitTaskWait(t *testing.T) {
	logger := zerolog.Nop()
	group := background.NewGroup(&logger)
	wantErr := errors.New("backfill failed")

	tests := map[string]struct {
		fn      func(ctx context.Context) error
		wantErr error
	}{
		"success": {
			fn:      func(context.Context) error { return nil },
			wantErr: nil,
		},
		"failure": {
			fn:      func(context.Context) error { return wantErr },
			wantErr: wantErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			task := group.Go(context.TODO(), name, tt.fn)

			require.ErrorIs(t, task.Wait(), tt.wantErr, "should return task error")
		})
	}
}

func TestUnitTaskDetachedFromCaller(t *testing.T) {
	logger := zerolog.Nop()
	group := background.NewGroup(&logger)

	type key struct{}
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, "value"))
	cancel()

	task := group.Go(ctx, "detached", func(ctx context.Context) error {
		assert.NoError(t, ctx.Err(), "task context shouldn't be canceled")
		assert.Equal(t, "value", ctx.Value(key{}), "task context should keep values")
		return nil
	})

	require.NoError(t, task.Wait())
}

func TestUnitNilTaskWait(t *testing.T) {
	var task *background.Task

	assert.NoError(t, task.Wait(), "nil task shouldn't block")
}

func TestUnitGroupWait(t *testing.T) {
	logger := zerolog.Nop()
	group := background.NewGroup(&logger)

	release := make(chan struct{})
	group.Go(context.TODO(), "blocked", func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, group.Wait(ctx), context.DeadlineExceeded, "should stop waiting when context is done")

	close(release)
	require.NoError(t, group.Wait(context.Background()), "should wait for all tasks")
}
