package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Agent roles defined in the agent configuration file.
const (
	AgentResearcher     = "researcher"
	AgentPersonalizer   = "personalizer"
	AgentEmailWriter    = "email_writer"
	AgentQualityChecker = "quality_checker"
)

// AgentConfig is the persona for one pipeline agent. The role and goal feed
// LLM system instructions; the backstory adds grounding for generation.
type AgentConfig struct {
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
}

// AgentConfigs maps agent name to its persona.
type AgentConfigs map[string]AgentConfig

// LoadAgentConfigs reads agent personas from the YAML file at path and
// verifies every known agent is defined.
func LoadAgentConfigs(path string) (AgentConfigs, error) {
	if path == "" {
		path = DefaultAgentConfigPath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent configs %s: %w", path, err)
	}
	var configs AgentConfigs
	if err := yaml.Unmarshal(raw, &configs); err != nil {
		return nil, fmt.Errorf("parse agent configs %s: %w", path, err)
	}
	for _, name := range []string{AgentResearcher, AgentPersonalizer, AgentEmailWriter, AgentQualityChecker} {
		if _, ok := configs[name]; !ok {
			return nil, fmt.Errorf("agent configs %s: missing agent %q", path, name)
		}
	}
	return configs, nil
}
