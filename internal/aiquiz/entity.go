package aiquiz

type QuizRequest struct {
	Topic    string `json:"topic" example:"Photosynthesis"`
	Username string `json:"username" example:"alice"`
}

type QuizResponse struct {
	Quiz string `json:"quiz" example:"1) What do plants absorb from sunlight?\nA) Heat\nB) Light energy\nC) Oxygen\nD) Water\nAnswer: B"`
}

// FallbackQuiz is returned with a 500 when the provider call fails.
const FallbackQuiz = "⚠️ Error generating quiz."
