package tools

import (
	"context"
	"math/rand"

	"promptia-be/pkg/llm"
)

var weatherConditions = []string{"soleado", "nublado", "lluvioso", "tormentoso", "nevado"}

const (
	weatherTempMin = 10
	weatherTempMax = 40
)

// WeatherTool reports simulated weather for a location. Conditions and
// temperature are randomized; the location is echoed back verbatim.
type WeatherTool struct {
	rng *rand.Rand
}

func NewWeatherTool() *WeatherTool {
	return &WeatherTool{}
}

// NewWeatherToolWithRand uses the given source, which keeps results
// reproducible in tests.
func NewWeatherToolWithRand(rng *rand.Rand) *WeatherTool {
	return &WeatherTool{rng: rng}
}

func (t *WeatherTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "get_weather",
		Description: "Obtiene el clima actual para una ubicación dada.",
		Parameters: map[string]llm.ToolParam{
			"location": {
				Type:        "string",
				Description: "La ciudad o ubicación para consultar el clima.",
			},
		},
		Required: []string{"location"},
	}
}

func (t *WeatherTool) intn(n int) int {
	if t.rng != nil {
		return t.rng.Intn(n)
	}
	return rand.Intn(n)
}

func (t *WeatherTool) Execute(_ context.Context, args map[string]any) (map[string]any, error) {
	location := stringArg(args, "location")

	condition := weatherConditions[t.intn(len(weatherConditions))]
	temperature := weatherTempMin + t.intn(weatherTempMax-weatherTempMin+1)

	return map[string]any{
		"location":    location,
		"condition":   condition,
		"temperature": temperature,
		"unit":        "celsius",
	}, nil
}
