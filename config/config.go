// ABOUTME: Configuration loader for the print cost analyzer service
// ABOUTME: Loads settings from environment variables (and optional .env) with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port      string
	CacheTTL  int // seconds, general cache default
	ScrapeTTL int // seconds, scrape result cache

	// Material defaults (PLA)
	DefaultDensity   float64 // g/cm3
	DefaultCostPerKg float64 // local currency per kg

	// Slicer defaults
	DefaultInfillPercent float64
	DefaultWallPercent   float64
	DefaultLayerHeightMm float64

	// Quotation rate card
	MachineRatePerHour     float64
	ElectricityRatePerHour float64
	LabourRatePerHour      float64
	ProfitMarginFraction   float64
	TaxFraction            float64

	// AI advisory
	AnthropicAPIKey string
	AIModels        []string // ordered fallback list, first success wins
	AIMaxTokens     int
	AIMinPromptLen  int // below this, advisory returns mock without calling out

	// Scraper
	ScrapeTimeout   int // seconds
	ScrapeUserAgent string
	ScrapeMaxImages int
	ScrapeMaxBytes  int

	// History ledger
	HistoryFile string
}

// AIConfigured returns true if a generative-text API key is set.
func (c *Config) AIConfigured() bool {
	return c.AnthropicAPIKey != ""
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win over file values
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		CacheTTL:  getEnvInt("CACHE_TTL", 300),
		ScrapeTTL: getEnvInt("SCRAPE_CACHE_TTL", 3600),

		DefaultDensity:   getEnvFloat("DEFAULT_DENSITY", 1.24),
		DefaultCostPerKg: getEnvFloat("DEFAULT_COST_PER_KG", 20.0),

		DefaultInfillPercent: getEnvFloat("DEFAULT_INFILL_PERCENT", 20),
		DefaultWallPercent:   getEnvFloat("DEFAULT_WALL_PERCENT", 25),
		DefaultLayerHeightMm: getEnvFloat("DEFAULT_LAYER_HEIGHT_MM", 0.2),

		MachineRatePerHour:     getEnvFloat("MACHINE_RATE_PER_HOUR", 50),
		ElectricityRatePerHour: getEnvFloat("ELECTRICITY_RATE_PER_HOUR", 10),
		LabourRatePerHour:      getEnvFloat("LABOUR_RATE_PER_HOUR", 50),
		ProfitMarginFraction:   getEnvFloat("PROFIT_MARGIN_FRACTION", 0.3),
		TaxFraction:            getEnvFloat("TAX_FRACTION", 0.18),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AIModels:        getEnvStringList("AI_MODELS"),
		AIMaxTokens:     getEnvInt("AI_MAX_TOKENS", 1024),
		AIMinPromptLen:  getEnvInt("AI_MIN_PROMPT_LEN", 100),

		ScrapeTimeout:   getEnvInt("SCRAPE_TIMEOUT", 60),
		ScrapeUserAgent: getEnv("SCRAPE_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"),
		ScrapeMaxImages: getEnvInt("SCRAPE_MAX_IMAGES", 5),
		ScrapeMaxBytes:  getEnvInt("SCRAPE_MAX_BYTES", 50000),

		HistoryFile: getEnv("HISTORY_FILE", "history.csv"),
	}

	if len(cfg.AIModels) == 0 {
		cfg.AIModels = []string{"claude-sonnet-4-5", "claude-3-5-haiku-latest"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DefaultDensity <= 0 {
		return fmt.Errorf("DEFAULT_DENSITY must be positive, got %v", cfg.DefaultDensity)
	}
	if cfg.DefaultInfillPercent < 0 || cfg.DefaultInfillPercent > 100 {
		return fmt.Errorf("DEFAULT_INFILL_PERCENT must be in [0,100], got %v", cfg.DefaultInfillPercent)
	}
	if cfg.DefaultWallPercent < 0 || cfg.DefaultWallPercent > 100 {
		return fmt.Errorf("DEFAULT_WALL_PERCENT must be in [0,100], got %v", cfg.DefaultWallPercent)
	}
	if cfg.DefaultLayerHeightMm <= 0 {
		return fmt.Errorf("DEFAULT_LAYER_HEIGHT_MM must be positive, got %v", cfg.DefaultLayerHeightMm)
	}
	if cfg.HistoryFile == "" {
		return fmt.Errorf("HISTORY_FILE cannot be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
