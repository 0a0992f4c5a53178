package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooksRunInPriorityOrder(t *testing.T) {
	hooks := New()
	var order []string
	record := func(label string) func(context.Context) error {
		return func(context.Context) error {
			order = append(order, label)
			return nil
		}
	}

	hooks.AddWithPriority("store", PriorityDatabase, record("store"))
	hooks.AddWithPriority("http", PriorityIngress, record("http"))
	hooks.Add("first default", record("first default"))
	hooks.Add("second default", record("second default"))
	assert.Equal(t, 4, hooks.Len())

	require.NoError(t, hooks.Run(context.Background()))
	assert.Equal(t, []string{"http", "first default", "second default", "store"}, order)
	assert.Zero(t, hooks.Len())

	require.NoError(t, hooks.Run(context.Background()), "hooks only run once")
	assert.Len(t, order, 4)
}

func TestHooksContinueAfterFailure(t *testing.T) {
	hooks := New()
	ran := 0
	hooks.AddWithPriority("fails", PriorityIngress, func(context.Context) error { return errors.New("boom") })
	hooks.AddWithPriority("panics", PriorityWorkers, func(context.Context) error { panic("bad hook") })
	hooks.AddWithPriority("runs", PriorityDatabase, func(context.Context) error {
		ran++
		return nil
	})

	err := hooks.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Equal(t, 1, ran)
}

func TestHooksStopAfterDeadline(t *testing.T) {
	hooks := New()
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	hooks.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	called := false
	hooks.AddWithPriority("late", PriorityCritical, func(context.Context) error {
		called = true
		return nil
	})

	assert.Error(t, hooks.Run(ctx))
	assert.False(t, called, "hooks are skipped once the deadline passed")
}
