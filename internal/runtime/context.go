package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"freckle.dev/freckle/internal/config"
	"freckle.dev/freckle/internal/engine"
	"freckle.dev/freckle/internal/git"
	"freckle.dev/freckle/internal/restore"
	"freckle.dev/freckle/internal/secrets"
	"freckle.dev/freckle/internal/tui"
)

// DefaultLockWait is how long a command waits for another freckle process
const DefaultLockWait = 2 * time.Second

// Options are the global settings collected from flags and the environment
type Options struct {
	// ConfigPath overrides DefaultPath(Home)
	ConfigPath string
	// Home overrides the user's home directory
	Home string
	// RestoreRoot overrides restore.DefaultRoot()
	RestoreRoot string
	Verbose     bool
	LockWait    time.Duration
	// Output receives console output instead of stdout
	Output io.Writer
}

type optionsKey struct{}

// WithOptions stores opts in ctx for GetContext
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// OptionsFrom returns the options stored by WithOptions, or zero options
func OptionsFrom(ctx context.Context) Options {
	if ctx == nil {
		return Options{}
	}
	opts, _ := ctx.Value(optionsKey{}).(Options)
	return opts
}

// Context provides access to the engine, config and output for commands
type Context struct {
	context.Context

	Config      *config.Config
	ConfigPath  string
	Home        string
	Coordinates config.Coordinates
	Store       *git.Store
	Engine      *engine.Engine
	Splog       *tui.Splog

	RestorePoints *restore.Manager
	Secrets       *secrets.Scanner

	lockWait time.Duration
}

// GetContext builds a Context from the options stored in ctx
func GetContext(ctx context.Context) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return NewContext(ctx, OptionsFrom(ctx))
}

// NewContext loads the config, migrating and saving a v1 file, and wires
// the engine for the active profile
func NewContext(ctx context.Context, opts Options) (*Context, error) {
	home, configPath, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}

	var splog *tui.Splog
	if opts.Output != nil {
		splog = tui.NewSplogWithWriter(opts.Output, opts.Verbose)
	} else {
		s, err := tui.NewSplogWithConfig(tui.GetLogFilePath(), opts.Verbose)
		if err != nil {
			s = tui.NewSplogWithWriter(os.Stdout, opts.Verbose)
		}
		splog = s
	}

	cfg, err := config.Load(configPath, currentUser())
	if err != nil {
		return nil, err
	}
	if cfg.Migrated() {
		if err := config.Save(configPath, cfg); err != nil {
			return nil, err
		}
		splog.Info("Migrated %s to config version %d.", configPath, config.CurrentVersion)
	}

	restoreRoot := opts.RestoreRoot
	if restoreRoot == "" {
		restoreRoot = restore.DefaultRoot()
	}
	lockWait := opts.LockWait
	if lockWait == 0 {
		lockWait = DefaultLockWait
	}

	c := &Context{
		Context:       ctx,
		ConfigPath:    configPath,
		Home:          home,
		Splog:         splog,
		RestorePoints: restore.NewManager(restoreRoot),
		lockWait:      lockWait,
	}
	if err := c.UseConfig(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

func resolvePaths(opts Options) (string, string, error) {
	home := opts.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", "", fmt.Errorf("failed to find home directory: %w", err)
		}
		home = h
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath(home)
	}
	return home, configPath, nil
}

// ConfigPathFor returns the config file NewContext would load for opts
func ConfigPathFor(opts Options) (string, error) {
	_, path, err := resolvePaths(opts)
	return path, err
}

// ValidateConfig loads the config at path the way NewContext does and checks
// its secret patterns compile, without touching the file.
func ValidateConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path, currentUser())
	if err != nil {
		return nil, err
	}
	if _, err := secrets.NewScanner(cfg.Secrets.Block, cfg.Secrets.Allow); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UseConfig replaces the config and rebuilds everything derived from it
func (c *Context) UseConfig(cfg *config.Config) error {
	scanner, err := secrets.NewScanner(cfg.Secrets.Block, cfg.Secrets.Allow)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Secrets = scanner
	c.UseBranch("")
	return nil
}

// UseBranch points the engine at branch instead of the active profile's.
// An empty branch means the active profile's branch.
func (c *Context) UseBranch(branch string) {
	c.Coordinates = c.Config.Coordinates(c.Home, branch)
	c.Store = git.NewStore(c.Coordinates.StoreDir, c.Coordinates.WorkTree, c.Coordinates.RepoURL, c.Splog.Logger())
	c.Engine = engine.New(c.Store, c.Coordinates, engine.WithLogger(c.Splog.Logger()))
}

// SaveConfig writes the current config back to ConfigPath
func (c *Context) SaveConfig() error {
	return config.Save(c.ConfigPath, c.Config)
}

// WithLock runs fn while holding the advisory lock on the metadata store
func (c *Context) WithLock(fn func() error) error {
	lock, err := engine.AcquireStoreLock(c.Context, c.Coordinates.StoreDir, c.lockWait)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()
	return fn()
}

// Platform names this machine in commit messages
func Platform() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "unknown host"
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
