package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile is a named machine configuration. Each profile maps to exactly one
// branch of the dotfiles repository.
type Profile struct {
	Name        string   `yaml:"-"`
	Branch      string   `yaml:"branch,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Modules     []string `yaml:"modules,omitempty"`
}

// BranchName returns the profile's branch, which defaults to the profile name
func (p Profile) BranchName() string {
	if p.Branch != "" {
		return p.Branch
	}
	return p.Name
}

// Profiles keeps profiles in file order; the first one is the default.
type Profiles []Profile

// UnmarshalYAML decodes a mapping of name to profile while preserving order
func (ps *Profiles) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: profiles must be a mapping", node.Line)
	}

	profiles := make(Profiles, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var p Profile
		// A profile written as "name:" with no body is allowed
		if node.Content[i+1].Tag != "!!null" {
			if err := node.Content[i+1].Decode(&p); err != nil {
				return fmt.Errorf("profile %q: %w", node.Content[i].Value, err)
			}
		}
		p.Name = node.Content[i].Value
		profiles = append(profiles, p)
	}
	*ps = profiles
	return nil
}

// MarshalYAML encodes profiles back into an ordered mapping
func (ps Profiles) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range ps {
		value := &yaml.Node{}
		if err := value.Encode(p); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.Name},
			value,
		)
	}
	return node, nil
}

// Get returns the profile with the given name
func (ps Profiles) Get(name string) (Profile, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// ForBranch returns the profile mapped to branch
func (ps Profiles) ForBranch(branch string) (Profile, bool) {
	for _, p := range ps {
		if p.BranchName() == branch {
			return p, true
		}
	}
	return Profile{}, false
}

// Names returns the profile names in order
func (ps Profiles) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// ProfileBranch returns the branch mapped to the named profile
func (c *Config) ProfileBranch(name string) (string, error) {
	p, ok := c.Profiles.Get(name)
	if !ok {
		return "", fmt.Errorf("profile %q not found", name)
	}
	return p.BranchName(), nil
}

// ActivateProfile moves the named profile to the front so its branch becomes
// the active one
func (c *Config) ActivateProfile(name string) error {
	for i, p := range c.Profiles {
		if p.Name != name {
			continue
		}
		reordered := make(Profiles, 0, len(c.Profiles))
		reordered = append(reordered, p)
		reordered = append(reordered, c.Profiles[:i]...)
		reordered = append(reordered, c.Profiles[i+1:]...)
		c.Profiles = reordered
		return nil
	}
	return fmt.Errorf("profile %q not found", name)
}
