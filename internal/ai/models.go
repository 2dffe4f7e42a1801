package ai

// Message is a single turn of a conversation passed to the model.
type Message struct {
	// Role is "user" or "assistant". Anything else is treated as "user".
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateConfig tunes a single model invocation. The planner uses a low
// temperature and a tight token budget for concise structured output; chat
// gets more headroom.
type GenerateConfig struct {
	Temperature     float32
	MaxOutputTokens int32
}
