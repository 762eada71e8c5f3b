package gemini

// Part carries one text fragment of a content block.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is a single role-tagged turn on the wire.
type Content struct {
	Role  string `json:"role,omitempty"` // "user" | "model"
	Parts []Part `json:"parts"`
}

// GenerationConfig holds the sampling parameters sent with every request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// SafetySetting sets the blocking threshold for one harm category.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// Tool enables a built-in tool for the request.
type Tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

// generateRequest mirrors the generateContent request body.
type generateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings    []SafetySetting   `json:"safetySettings,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
}

// GenerateResponse mirrors the generateContent response body. Text is a
// top-level convenience field some API surfaces return instead of
// candidates; the extractor only consults it when candidates carry nothing.
type GenerateResponse struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	Text           string          `json:"text,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

// Candidate is one alternative completion.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
	Index        int     `json:"index,omitempty"`
}

// PromptFeedback reports why the prompt itself was rejected.
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// Fixed generation parameters. These are constants of the service, not
// derived or tunable per request.
const (
	defaultTemperature     = 1.0
	defaultTopP            = 0.95
	defaultMaxOutputTokens = 8192
)

// harmCategories are the four categories the service disables blocking for.
var harmCategories = []string{
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_HARASSMENT",
}

func defaultGenerationConfig() *GenerationConfig {
	return &GenerationConfig{
		Temperature:     defaultTemperature,
		TopP:            defaultTopP,
		MaxOutputTokens: defaultMaxOutputTokens,
	}
}

func defaultSafetySettings() []SafetySetting {
	settings := make([]SafetySetting, 0, len(harmCategories))
	for _, cat := range harmCategories {
		settings = append(settings, SafetySetting{Category: cat, Threshold: "OFF"})
	}
	return settings
}
