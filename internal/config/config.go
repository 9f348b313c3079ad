package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// CurrentVersion is the config layout written by this version of freckle
	CurrentVersion = 2

	// FileName is the config file name inside the home directory
	FileName = ".freckle.yaml"

	// DefaultStoreDir is where the metadata store lives when dotfiles.dir is unset
	DefaultStoreDir = "~/.dotfiles"

	// DefaultBranch is used when neither a profile nor dotfiles.branch names one
	DefaultBranch = "main"

	migratedDescription = "Migrated from v1 config"
)

// Config is the content of ~/.freckle.yaml
type Config struct {
	Version  int               `yaml:"version"`
	Vars     map[string]string `yaml:"vars,omitempty"`
	Dotfiles Dotfiles          `yaml:"dotfiles"`
	Profiles Profiles          `yaml:"profiles,omitempty"`
	Secrets  Secrets           `yaml:"secrets,omitempty"`

	// Modules is the v1 module list; it is only read during migration
	Modules []string `yaml:"modules,omitempty"`

	migrated bool
}

// Dotfiles locates the dotfiles repository
type Dotfiles struct {
	RepoURL string `yaml:"repo_url,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
	// Branch is the v1 way of naming the branch; profiles replace it
	Branch string `yaml:"branch,omitempty"`
}

// Secrets holds the patterns handed to the secret scanner
type Secrets struct {
	Block []string `yaml:"block,omitempty"`
	Allow []string `yaml:"allow,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Version:  CurrentVersion,
		Vars:     map[string]string{},
		Dotfiles: Dotfiles{Dir: DefaultStoreDir},
	}
}

// DefaultPath returns the config file path: $FRECKLE_CONFIG if set,
// otherwise ~/.freckle.yaml.
func DefaultPath(home string) string {
	if custom := os.Getenv("FRECKLE_CONFIG"); custom != "" {
		return custom
	}
	return filepath.Join(home, FileName)
}

// Load reads the config at path. A missing file yields Default().
// Legacy v1 files are migrated in memory; Migrated reports when that happened.
func Load(path, user string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if needsMigration(raw) {
		cfg.migrateV1()
	}
	if cfg.Dotfiles.Dir == "" {
		cfg.Dotfiles.Dir = DefaultStoreDir
	}
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}

	cfg.applyReplacements(user)
	return cfg, nil
}

// Migrated reports whether Load converted a v1 config
func (c *Config) Migrated() bool {
	return c.migrated
}

// needsMigration detects the v1 layout: a modules list without version or profiles
func needsMigration(raw map[string]any) bool {
	_, hasModules := raw["modules"].([]any)
	_, hasVersion := raw["version"]
	_, hasProfiles := raw["profiles"]
	return hasModules && !hasVersion && !hasProfiles
}

// migrateV1 turns the legacy branch and module list into a single profile
func (c *Config) migrateV1() {
	branch := c.Dotfiles.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	modules := []string{}
	for _, m := range c.Modules {
		if m != "dotfiles" {
			modules = append(modules, m)
		}
	}

	c.Profiles = Profiles{{
		Name:        branch,
		Branch:      branch,
		Description: migratedDescription,
		Modules:     modules,
	}}
	c.Dotfiles.Branch = ""
	c.Modules = nil
	c.Version = CurrentVersion
	c.migrated = true
}

// applyReplacements substitutes {local_user} and {var} placeholders
func (c *Config) applyReplacements(user string) {
	replacements := map[string]string{"local_user": user}
	for k, v := range c.Vars {
		replacements[k] = v
	}
	pairs := make([]string, 0, len(replacements)*2)
	for k, v := range replacements {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)

	c.Dotfiles.RepoURL = r.Replace(c.Dotfiles.RepoURL)
	c.Dotfiles.Dir = r.Replace(c.Dotfiles.Dir)
	for i := range c.Profiles {
		p := &c.Profiles[i]
		p.Branch = r.Replace(p.Branch)
		p.Description = r.Replace(p.Description)
		for j := range p.Modules {
			p.Modules[j] = r.Replace(p.Modules[j])
		}
	}
	for i := range c.Secrets.Block {
		c.Secrets.Block[i] = r.Replace(c.Secrets.Block[i])
	}
	for i := range c.Secrets.Allow {
		c.Secrets.Allow[i] = r.Replace(c.Secrets.Allow[i])
	}
}

// ActiveBranch returns the branch of the first profile, then the legacy
// dotfiles.branch, then DefaultBranch.
func (c *Config) ActiveBranch() string {
	if len(c.Profiles) > 0 {
		return c.Profiles[0].BranchName()
	}
	if c.Dotfiles.Branch != "" {
		return c.Dotfiles.Branch
	}
	return DefaultBranch
}

// StoreDir resolves dotfiles.dir: "~" expands to home and relative paths are
// taken relative to home, never to the process working directory.
func (c *Config) StoreDir(home string) string {
	dir := c.Dotfiles.Dir
	if dir == "" {
		dir = DefaultStoreDir
	}
	switch {
	case dir == "~":
		return home
	case strings.HasPrefix(dir, "~/"):
		return filepath.Join(home, dir[2:])
	case filepath.IsAbs(dir):
		return filepath.Clean(dir)
	default:
		return filepath.Join(home, dir)
	}
}

// Coordinates returns the repository coordinates for the given home and branch.
// An empty branch means ActiveBranch().
func (c *Config) Coordinates(home, branch string) Coordinates {
	if branch == "" {
		branch = c.ActiveBranch()
	}
	return Coordinates{
		RepoURL:  c.Dotfiles.RepoURL,
		StoreDir: c.StoreDir(home),
		WorkTree: home,
		Branch:   branch,
	}
}
