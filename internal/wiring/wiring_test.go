package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsmeta/internal/app"
	_ "go.trai.ch/tsmeta/internal/wiring"
)

// TestWiring_ResolvesComponents runs the registered Graft nodes the way main
// does, so a missing registration or an unsatisfied dependency fails here.
func TestWiring_ResolvesComponents(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)

	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
}
