package chat

type ChatRequest struct {
	Message   string `json:"message" example:"Explain photosynthesis"`
	Username  string `json:"username" example:"alice"`
	UserClass string `json:"userClass,omitempty" example:"9"`
}

type ChatResponse struct {
	Reply string `json:"reply" example:"Photosynthesis is how plants turn light into food..."`
}

// FallbackReply is returned with a 500 when the provider call fails.
const FallbackReply = "⚠️ Error: Something went wrong with the AI server."
