package models

// Settings are the two user-editable values kept in the settings store.
type Settings struct {
	APIKey       string `json:"apiKey"`
	SystemPrompt string `json:"systemPrompt"`
}

// ChatRequest is the JSON body for POST /api/chat.
type ChatRequest struct {
	Mode    string `json:"mode"`
	Message string `json:"message"`
	Tab     *Tab   `json:"tab,omitempty"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
	Mode  string `json:"mode"`
}
