package dto

type ChatRequest struct {
	SessionId    string   `json:"sessionId" validate:"required"`
	Message      string   `json:"message" validate:"required,min=1,max=10000"`
	SystemPrompt *string  `json:"systemPrompt,omitempty" validate:"omitempty,max=2000"`
	Temperature  *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// GenerateTitleMessage is the payload published to the title-generation
// topic after a session's first exchange completes.
type GenerateTitleMessage struct {
	SessionId string `json:"sessionId"`
}

type GenerateAudioRequest struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

type GenerateAudioResponse struct {
	AudioData string `json:"audioData"`
}
