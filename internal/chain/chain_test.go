package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logoscenter/logos-bot/internal/handlers"
)

func TestProcessEmptyContextCompletes(t *testing.T) {
	c := NewChainOfResponsibility()

	// A context with no platform message resolves no action and must
	// fall through every handler without touching any external system.
	require.NotPanics(t, func() {
		c.Process(&handlers.Context{})
	})
}
