// Package config loads the on-disk configuration surface of the outreach
// pipeline: agent definitions, email templates, the user profile, and
// environment-backed runtime settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default file locations, relative to the working directory.
const (
	DefaultSecretsPath     = "configs/secrets.env"
	DefaultAgentConfigPath = "configs/agent_config.yaml"
	DefaultTemplatesPath   = "templates/email_templates.yaml"
	DefaultProfilePath     = "data/my_profile.yaml"
	DefaultPreviewOutput   = "data/email_previews.json"
	DefaultDraftOutput     = "data/draft_results.json"
)

// Settings carries the environment-backed runtime configuration.
type Settings struct {
	GoogleAPIKey string
	OpenAIAPIKey string
	MailBaseURL  string
	MailToken    string
	SenderName   string
	SenderEmail  string

	MaxRetries     int
	RequestTimeout time.Duration
	Verbose        bool
}

// LoadSecrets loads key=value pairs from the secrets file into the process
// environment, then resolves Settings. A missing secrets file is not an
// error; every value can come from the ambient environment instead.
func LoadSecrets(path string) (Settings, error) {
	if path == "" {
		path = DefaultSecretsPath
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("load secrets %s: %w", path, err)
	}
	return FromEnv()
}

// FromEnv resolves Settings from the process environment.
func FromEnv() (Settings, error) {
	s := Settings{
		GoogleAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		OpenAIAPIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		MailBaseURL:  strings.TrimSpace(os.Getenv("MAIL_API_BASE_URL")),
		MailToken:    strings.TrimSpace(os.Getenv("MAIL_API_TOKEN")),
		SenderName:   strings.TrimSpace(os.Getenv("SENDER_NAME")),
		SenderEmail:  strings.TrimSpace(os.Getenv("SENDER_EMAIL")),
	}
	if s.SenderName == "" {
		s.SenderName = "John Smith"
	}

	var err error
	if s.MaxRetries, err = envInt("OUTREACH_MAX_RETRIES", 2); err != nil {
		return Settings{}, err
	}
	if s.RequestTimeout, err = envDuration("OUTREACH_REQUEST_TIMEOUT", 60*time.Second); err != nil {
		return Settings{}, err
	}
	if s.Verbose, err = envBool("OUTREACH_VERBOSE"); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func envInt(varName string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envDuration(varName string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envBool(varName string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return false, nil
	}
	out, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}
