package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	MoltbookAPIKey string `yaml:"moltbook_api_key"`
	MoltbookAPIURL string `yaml:"moltbook_api_url"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	SlackAppToken   string `yaml:"slack_app_token"`
	VerifyChannelID string `yaml:"verify_channel_id"`

	DBPath         string `yaml:"db_path"`
	DigestSchedule string `yaml:"digest_schedule"`

	LLMFallback     bool   `yaml:"llm_fallback"`
	LLMModel        string `yaml:"llm_model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`

	Timezone string `yaml:"timezone"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.MoltbookAPIKey, "MOLTBOOK_API_KEY")
	envOverride(&cfg.MoltbookAPIURL, "MOLTBOOK_API_URL")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackAppToken, "SLACK_APP_TOKEN")
	envOverride(&cfg.VerifyChannelID, "VERIFY_CHANNEL_ID")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.DigestSchedule, "DIGEST_SCHEDULE")
	envOverrideBool(&cfg.LLMFallback, "LLM_FALLBACK")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.Timezone, "TIMEZONE")

	// Defaults
	if cfg.MoltbookAPIURL == "" {
		cfg.MoltbookAPIURL = "https://www.moltbook.com/api/v1/verify"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./moltverify.db"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultAnthropicModel
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}

	// Validate required fields
	required := map[string]string{
		"moltbook_api_key": cfg.MoltbookAPIKey,
		"slack_bot_token":  cfg.SlackBotToken,
		"slack_app_token":  cfg.SlackAppToken,
	}
	for name, val := range required {
		if val == "" {
			log.Fatalf("Required config '%s' is not set (via config.yaml or env var)", name)
		}
	}

	if cfg.LLMFallback && cfg.AnthropicAPIKey == "" {
		log.Fatalf("anthropic_api_key is required when llm_fallback is enabled")
	}

	if cfg.DigestSchedule != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(cfg.DigestSchedule); err != nil {
			log.Fatalf("invalid digest_schedule '%s': %v", cfg.DigestSchedule, err)
		}
		if cfg.VerifyChannelID == "" {
			log.Fatalf("verify_channel_id is required when digest_schedule is set")
		}
	}

	if strings.EqualFold(cfg.Timezone, "Local") {
		cfg.Timezone = time.Local.String()
	} else {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
		}
		time.Local = loc
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
