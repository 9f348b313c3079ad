// Package create implements the init command: either record an existing
// remote in the config so sync can clone it, or create a new repository
// from files already in home, optionally creating the remote on GitHub.
package create

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	gogithub "github.com/google/go-github/v62/github"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/config"
	"freckle.dev/freckle/internal/engine"
	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/github"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
)

// DefaultFiles are tracked by a new repository when no files are given
var DefaultFiles = []string{".zshrc", ".bashrc", ".gitconfig", ".tmux.conf"}

// Mode selects what init does
type Mode int

const (
	// ModeAsk prompts, defaulting to ModeNew when prompts are unavailable
	ModeAsk Mode = iota
	// ModeExisting writes config for a remote that already has dotfiles
	ModeExisting
	// ModeNew creates a repository from files in home
	ModeNew
)

// Options contains options for the init command
type Options struct {
	Mode    Mode
	RepoURL string
	Branch  string
	Dir     string
	// Files are home-relative paths to track in a new repository
	Files []string
	// Force overwrites an existing config file
	Force bool

	// GitHub creates the remote repository through the GitHub API
	GitHub       bool
	GitHubName   string
	GitHubPublic bool
	// GitHubClient overrides the client built from GITHUB_TOKEN or gh
	GitHubClient *gogithub.Client
}

// Action runs init
func Action(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog
	if _, err := os.Stat(ctx.ConfigPath); err == nil && !opts.Force {
		return fmt.Errorf("config file already exists at %s; use --force to overwrite", ctx.ConfigPath)
	}

	mode := opts.Mode
	if mode == ModeAsk {
		existing, err := tui.PromptConfirm("Do you have an existing dotfiles repository?", false)
		switch {
		case errors.Is(err, tui.ErrInteractiveDisabled):
			mode = ModeNew
		case err != nil:
			return err
		case existing:
			mode = ModeExisting
		default:
			mode = ModeNew
		}
	}

	opts.Branch = orDefault(opts.Branch, config.DefaultBranch)
	opts.Dir = orDefault(opts.Dir, config.DefaultStoreDir)

	if mode == ModeExisting {
		return initExisting(ctx, opts)
	}
	splog.Debug("creating a new repository in %s", opts.Dir)
	return initNew(ctx, opts)
}

func initExisting(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog
	url := opts.RepoURL
	if url == "" {
		entered, err := tui.PromptTextInput("Dotfiles repository URL:", "")
		if err != nil {
			return fmt.Errorf("a repository URL is required: %w", err)
		}
		url = entered
	}
	if url == "" {
		return fmt.Errorf("a repository URL is required")
	}
	if info, err := github.ParseRemoteURL(url); err == nil {
		splog.Info("Using GitHub repository %s", info)
	}

	cfg := newConfig(url, opts)
	if err := config.Save(ctx.ConfigPath, cfg); err != nil {
		return err
	}
	splog.Info("✓ Configuration saved to %s.", ctx.ConfigPath)
	splog.Tip("Run 'freckle sync' to clone and set up your dotfiles.")
	return nil
}

func initNew(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog

	url := opts.RepoURL
	if opts.GitHub {
		repo, err := createGitHubRepo(ctx, opts)
		if err != nil {
			return err
		}
		url = repo.SSHURL
		if repo.Created {
			splog.Info("✓ Created %s", repo.HTMLURL)
		} else {
			splog.Info("Using existing repository %s", repo.HTMLURL)
		}
	}

	cfg := newConfig(url, opts)
	if err := ctx.UseConfig(cfg); err != nil {
		return err
	}
	if ctx.Engine.IsInitialized() {
		return fmt.Errorf("%s: %w; remove it or choose another --dir", ctx.Coordinates.StoreDir, freckleerrors.ErrAlreadyInitialized)
	}

	// The config is written first so it can be part of the initial commit
	if err := ctx.SaveConfig(); err != nil {
		return err
	}

	files := opts.Files
	if len(files) == 0 {
		files = DefaultFiles
	}
	configRel, err := ctx.Engine.RelativePath(ctx.ConfigPath)
	if err == nil && !slices.Contains(files, configRel) {
		files = append([]string{configRel}, files...)
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if filepath.IsAbs(f) {
			paths = append(paths, f)
		} else {
			paths = append(paths, filepath.Join(ctx.Home, f))
		}
	}

	if matches := ctx.Secrets.ScanFiles(files, ctx.Home); len(matches) > 0 {
		actions.ReportSecrets(splog, matches)
		return fmt.Errorf("refusing to create a repository that may contain secrets")
	}

	var result engine.CreateResult
	err = ctx.WithLock(func() error {
		var createErr error
		result, createErr = ctx.Engine.CreateNew(ctx.Context, paths)
		return createErr
	})
	if err != nil {
		return err
	}

	for _, s := range result.Skipped {
		splog.Info("  Note: %s doesn't exist yet, skipping", s)
	}
	splog.Info("✓ Created new dotfiles repository at %s on %s", ctx.Coordinates.StoreDir, result.Branch)
	if len(result.Added) > 0 {
		splog.Info("Tracking %d file(s):", len(result.Added))
		actions.PrintFiles(splog, "+", result.Added)
	} else {
		splog.Tip("No existing files to track. Add files later with 'freckle add <file>'.")
	}

	switch {
	case url == "":
		splog.Tip("No remote configured. Set dotfiles.repo_url in %s and run 'freckle save' to publish.", ctx.ConfigPath)
	case result.Pushed:
		splog.Info("✓ Pushed to %s", url)
	default:
		splog.Warn("Could not push to %s: %s", url, result.PushError)
		splog.Tip("Run 'freckle save' to retry.")
	}
	return nil
}

func createGitHubRepo(ctx *runtime.Context, opts Options) (*github.Repository, error) {
	name := orDefault(opts.GitHubName, "dotfiles")
	hostname := github.DefaultHostname
	if opts.RepoURL != "" {
		info, err := github.ParseRemoteURL(opts.RepoURL)
		if err != nil {
			return nil, err
		}
		hostname, name = info.Hostname, info.Repo
	}

	client := opts.GitHubClient
	if client == nil {
		c, err := github.NewClientFromEnv(ctx.Context, hostname)
		if err != nil {
			return nil, err
		}
		client = c
	}
	return github.EnsureRepository(ctx.Context, client, github.CreateOptions{
		Name:        name,
		Description: "My dotfiles, managed by freckle",
		Private:     !opts.GitHubPublic,
	})
}

func newConfig(url string, opts Options) *config.Config {
	cfg := config.Default()
	cfg.Dotfiles.RepoURL = url
	cfg.Dotfiles.Dir = opts.Dir
	cfg.Profiles = config.Profiles{{Name: opts.Branch, Description: "Default profile"}}
	return cfg
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
