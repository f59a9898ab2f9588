package app

// Config holds runtime configuration for the application.
type Config struct {
	Topic      string
	Pages      int
	Style      string
	OutputPath string

	// LLM
	LLMBaseURL     string
	LLMModel       string
	LLMAPIKey      string
	LLMTemperature float32

	// Handwriting
	FontPath string
	Seed     int64

	// Behavior
	Verbose bool
}
