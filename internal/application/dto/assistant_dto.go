package dto

// ChatRequest is a question for the CFO assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assistant's plain-text answer.
type ChatResponse struct {
	Reply string `json:"reply"`
}
