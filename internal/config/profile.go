package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UserProfile is the sender's background used for profile matching.
//
// The profile file is hand-edited YAML, so the shape is forgiving: skill
// categories may hold a list or a single string, and achievements may be
// plain strings or mappings with a description field.
type UserProfile struct {
	PersonalInfo PersonalInfo  `yaml:"personal_info"`
	Skills       SkillGroups   `yaml:"skills"`
	Achievements []Achievement `yaml:"achievements"`
}

type PersonalInfo struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	Email string `yaml:"email"`
}

// SkillGroup is one named skill category. Categories keep the order they
// appear in the profile file so downstream output stays stable.
type SkillGroup struct {
	Category string
	Skills   []string
}

type SkillGroups []SkillGroup

func (g *SkillGroups) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("skills: expected mapping, got %s", value.Tag)
	}
	out := make(SkillGroups, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		val := value.Content[i+1]
		switch val.Kind {
		case yaml.SequenceNode:
			var skills []string
			if err := val.Decode(&skills); err != nil {
				return fmt.Errorf("skills.%s: %w", key, err)
			}
			out = append(out, SkillGroup{Category: key, Skills: skills})
		case yaml.ScalarNode:
			out = append(out, SkillGroup{Category: key, Skills: []string{val.Value}})
		default:
			return fmt.Errorf("skills.%s: expected list or string", key)
		}
	}
	*g = out
	return nil
}

// Achievement is one profile achievement with an optional impact note.
type Achievement struct {
	Description string `yaml:"description"`
	Impact      string `yaml:"impact"`
}

func (a *Achievement) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		a.Description = value.Value
		return nil
	}
	type plain Achievement
	return value.Decode((*plain)(a))
}

// SkillSet flattens every category into a deduplicated skill list, keeping
// the order skills appear in the profile file.
func (p *UserProfile) SkillSet() []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range p.Skills {
		for _, s := range group.Skills {
			if s != "" && !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// LoadProfile reads the user profile YAML from path.
func LoadProfile(path string) (*UserProfile, error) {
	if path == "" {
		path = DefaultProfilePath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	var p UserProfile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}
