package guard_test

import (
	"errors"
	"sync"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errCommandNotConstructed := errors.New("ship command must be created via constructor")

	type shipCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}
	newShipCommand := func(id string) shipCommand {
		return shipCommand{orderID: id, guard: guard.NewConstructorGuard()}
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd := newShipCommand("order-1")
		require.NoError(t, cmd.guard.Validate(errCommandNotConstructed))
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		cmd := shipCommand{orderID: "order-1"}
		require.ErrorIs(t, cmd.guard.Validate(errCommandNotConstructed), errCommandNotConstructed)
	})
}

func TestConstructorGuard_Concurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(errNotConstructed))
		}()
	}
	wg.Wait()
}
