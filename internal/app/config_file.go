package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to the flag and env names.
type FileConfig struct {
	Topic  string `yaml:"topic" json:"topic"`
	Pages  int    `yaml:"pages" json:"pages"`
	Style  string `yaml:"style" json:"style"`
	Output string `yaml:"output" json:"output"`

	LLM struct {
		BaseURL     string  `yaml:"base" json:"base"`
		Model       string  `yaml:"model" json:"model"`
		APIKey      string  `yaml:"key" json:"key"`
		Temperature float32 `yaml:"temperature" json:"temperature"`
	} `yaml:"llm" json:"llm"`

	Handwriting struct {
		Font string `yaml:"font" json:"font"`
		Seed int64  `yaml:"seed" json:"seed"`
	} `yaml:"handwriting" json:"handwriting"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any
// fields that are currently unset/zero in cfg. Flags should already
// have been parsed; this lets file config supply defaults while
// preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.Topic == "" && fc.Topic != "" {
		cfg.Topic = fc.Topic
	}
	if cfg.Pages == 0 && fc.Pages > 0 {
		cfg.Pages = fc.Pages
	}
	if cfg.Style == "" && fc.Style != "" {
		cfg.Style = fc.Style
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.LLMTemperature == 0 && fc.LLM.Temperature > 0 {
		cfg.LLMTemperature = fc.LLM.Temperature
	}

	if cfg.FontPath == "" && fc.Handwriting.Font != "" {
		cfg.FontPath = fc.Handwriting.Font
	}
	if cfg.Seed == 0 && fc.Handwriting.Seed != 0 {
		cfg.Seed = fc.Handwriting.Seed
	}

	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
