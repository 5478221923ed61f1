package tools

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherToolStaysInRange(t *testing.T) {
	tool := NewWeatherToolWithRand(rand.New(rand.NewSource(42)))

	for i := 0; i < 200; i++ {
		result, err := tool.Execute(context.Background(), map[string]any{"location": "Rosario"})
		require.NoError(t, err)

		assert.Equal(t, "Rosario", result["location"])
		assert.Contains(t, weatherConditions, result["condition"])

		temp := result["temperature"].(int)
		assert.GreaterOrEqual(t, temp, 10)
		assert.LessOrEqual(t, temp, 40)
	}
}

func TestWeatherToolMissingLocation(t *testing.T) {
	tool := NewWeatherTool()

	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", result["location"])
}

func TestImageToolBuildsEncodedURL(t *testing.T) {
	tool := NewImageTool()

	result, err := tool.Execute(context.Background(), map[string]any{"prompt": "un gato con sombrero"})
	require.NoError(t, err)

	assert.Equal(t, "https://image.pollinations.ai/prompt/un%20gato%20con%20sombrero", result["url"])
	assert.Equal(t, "![un gato con sombrero](https://image.pollinations.ai/prompt/un%20gato%20con%20sombrero)", result["markdown"])
	assert.Equal(t, "un gato con sombrero", result["prompt"])
}

func TestRegistryUnknownToolYieldsSentinel(t *testing.T) {
	registry := DefaultRegistry()

	result := registry.Execute(context.Background(), "launch_rocket", map[string]any{})
	assert.Equal(t, map[string]any{"error": "Unknown tool: launch_rocket"}, result)
}

func TestRegistryDefinitionsOrder(t *testing.T) {
	registry := DefaultRegistry()

	defs := registry.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "get_weather", defs[0].Name)
	assert.Equal(t, "generate_image", defs[1].Name)

	assert.True(t, registry.Has("get_weather"))
	assert.False(t, registry.Has("get_forecast"))
}
