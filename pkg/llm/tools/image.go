package tools

import (
	"context"
	"fmt"
	"net/url"

	"promptia-be/pkg/llm"
)

const pollinationsBaseURL = "https://image.pollinations.ai/prompt/"

// ImageTool generates an image for a prompt by building a pollinations.ai
// URL. No network call is made; the hosted service renders the image when
// the client fetches the URL.
type ImageTool struct{}

func NewImageTool() *ImageTool {
	return &ImageTool{}
}

func (t *ImageTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "generate_image",
		Description: "Genera una imagen a partir de una descripción en texto.",
		Parameters: map[string]llm.ToolParam{
			"prompt": {
				Type:        "string",
				Description: "Descripción de la imagen a generar.",
			},
		},
		Required: []string{"prompt"},
	}
}

func (t *ImageTool) Execute(_ context.Context, args map[string]any) (map[string]any, error) {
	prompt := stringArg(args, "prompt")

	return map[string]any{
		"prompt":   prompt,
		"url":      ImageURL(prompt),
		"markdown": ImageMarkdown(prompt),
	}, nil
}

// ImageURL returns the pollinations.ai URL for the given prompt.
func ImageURL(prompt string) string {
	return pollinationsBaseURL + url.PathEscape(prompt)
}

// ImageMarkdown returns the markdown image embed for the given prompt.
func ImageMarkdown(prompt string) string {
	return fmt.Sprintf("![%s](%s)", prompt, ImageURL(prompt))
}
