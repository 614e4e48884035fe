package config

import "fmt"

type Config struct {
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PipelineConfig struct {
	SplitThresholdBytes int64    `yaml:"split_threshold_bytes"`
	MaxAssetBytes       int64    `yaml:"max_asset_bytes"`
	SegmentSeconds      int      `yaml:"segment_seconds"`
	AllowedMimeTypes    []string `yaml:"allowed_mime_types"`
	PromptCharBudget    int      `yaml:"prompt_char_budget"`
	PromptMaxChunks     int      `yaml:"prompt_max_chunks"`
	PromptMinFirstChars int      `yaml:"prompt_min_first_chars"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type PathsConfig struct {
	Jobs string `yaml:"jobs"`
	Work string `yaml:"work"`
	Data string `yaml:"data"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrentTranscriptions int `yaml:"max_concurrent_transcriptions"`
	MaxConcurrentJobs           int `yaml:"max_concurrent_jobs"`
}

func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	if c.Paths.Jobs == "" {
		return fmt.Errorf("paths.jobs is required")
	}

	if c.Paths.Work == "" {
		c.Paths.Work = "data/work"
	}
	if c.Paths.Data == "" {
		c.Paths.Data = "data"
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Pipeline.SplitThresholdBytes == 0 {
		c.Pipeline.SplitThresholdBytes = 24_000_000
	}
	if c.Pipeline.MaxAssetBytes == 0 {
		c.Pipeline.MaxAssetBytes = 512 * 1024 * 1024
	}
	if c.Pipeline.SegmentSeconds == 0 {
		c.Pipeline.SegmentSeconds = 600
	}
	if len(c.Pipeline.AllowedMimeTypes) == 0 {
		c.Pipeline.AllowedMimeTypes = []string{
			"audio/mpeg", "audio/mp4", "audio/x-m4a",
			"audio/wav", "audio/webm", "audio/ogg",
		}
	}
	if c.Pipeline.PromptCharBudget == 0 {
		c.Pipeline.PromptCharBudget = 12_000
	}
	if c.Pipeline.PromptMaxChunks == 0 {
		c.Pipeline.PromptMaxChunks = 6
	}
	if c.Pipeline.PromptMinFirstChars == 0 {
		c.Pipeline.PromptMinFirstChars = 4_000
	}
	if c.Performance.MaxConcurrentTranscriptions == 0 {
		c.Performance.MaxConcurrentTranscriptions = 4
	}
	if c.Performance.MaxConcurrentJobs == 0 {
		c.Performance.MaxConcurrentJobs = 2
	}

	if c.Pipeline.SplitThresholdBytes > c.Pipeline.MaxAssetBytes {
		return fmt.Errorf("pipeline.split_threshold_bytes exceeds pipeline.max_asset_bytes")
	}

	return nil
}
