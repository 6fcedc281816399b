package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

// EmailTemplate describes the tone and framing of one email style.
type EmailTemplate struct {
	Tone  string `yaml:"tone"`
	Focus string `yaml:"focus"`
	Notes string `yaml:"notes"`
}

// TemplateStore holds the email templates keyed by template type.
type TemplateStore map[string]EmailTemplate

// Get returns the named template, falling back to professional_application.
func (s TemplateStore) Get(templateType string) EmailTemplate {
	if t, ok := s[templateType]; ok {
		return t
	}
	return s[outreach.TemplateProfessionalApplication]
}

// LoadTemplates reads the email templates YAML from path.
func LoadTemplates(path string) (TemplateStore, error) {
	if path == "" {
		path = DefaultTemplatesPath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", path, err)
	}
	var store TemplateStore
	if err := yaml.Unmarshal(raw, &store); err != nil {
		return nil, fmt.Errorf("parse templates %s: %w", path, err)
	}
	if len(store) == 0 {
		return nil, fmt.Errorf("templates %s: no templates defined", path)
	}
	return store, nil
}
