package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Pipeline PipelineConfig
	OCR      OCRConfig
	NLP      NLPConfig
	Sink     SinkConfig
}

// PipelineConfig holds assembly-run configuration.
type PipelineConfig struct {
	ArtifactDir string
	OutputDir   string
	URLTable    string
	RulesFile   string // optional YAML override for the OCR-correction table
	Workers     int
}

// OCRConfig holds the page OCR collaborator configuration. The engine
// location is explicit here, never read from ambient process state.
type OCRConfig struct {
	Language    string
	TessdataDir string
	PSM         int
	EngineLabel string
}

// NLPConfig holds the entity-extraction collaborator configuration.
type NLPConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SinkConfig holds the optional relational sink configuration.
type SinkConfig struct {
	DBPath string // empty disables the sink
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			ArtifactDir: getEnv("ARTIFACT_DIR", "./corpus/pages"),
			OutputDir:   getEnv("OUTPUT_DIR", "./corpus/documents"),
			URLTable:    getEnv("URL_TABLE", ""),
			RulesFile:   getEnv("RULES_FILE", ""),
			Workers:     getEnvAsInt("PIPELINE_WORKERS", 4),
		},
		OCR: OCRConfig{
			Language:    getEnv("OCR_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("OCR_PSM", 3),
			EngineLabel: getEnv("OCR_ENGINE_LABEL", "Tesseract 5.5.0"),
		},
		NLP: NLPConfig{
			BaseURL: getEnv("NLP_BASE_URL", ""),
			Timeout: getEnvAsDuration("NLP_TIMEOUT", 30*time.Second),
		},
		Sink: SinkConfig{
			DBPath: getEnv("SINK_DB_PATH", ""),
		},
	}
}

// Validate checks the loaded configuration for an assembly run.
func (c *Config) Validate() error {
	if c.Pipeline.ArtifactDir == "" {
		return NewAppError("CONFIG_ERROR", "ARTIFACT_DIR is required", nil)
	}
	if c.Pipeline.OutputDir == "" {
		return NewAppError("CONFIG_ERROR", "OUTPUT_DIR is required", nil)
	}
	if c.Pipeline.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "PIPELINE_WORKERS must be positive", nil)
	}
	return nil
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
