package github

import (
	"fmt"
	"strings"
)

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// String renders the repository as hostname/owner/repo
func (r RepoInfo) String() string {
	return r.Hostname + "/" + r.Owner + "/" + r.Repo
}

// ParseRemoteURL parses a git remote URL and extracts hostname, owner, and repo.
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, ".git")
	remoteURL = strings.TrimPrefix(remoteURL, "ssh://")

	var hostname, path string
	if strings.Contains(remoteURL, "@") {
		parts := strings.SplitN(remoteURL, "@", 2)
		hostAndPath := parts[1]

		// git@hostname:owner/repo or git@hostname/owner/repo
		sep := "/"
		if strings.Contains(hostAndPath, ":") {
			sep = ":"
		}
		hostPath := strings.SplitN(hostAndPath, sep, 2)
		if len(hostPath) < 2 {
			return nil, fmt.Errorf("invalid SSH remote URL: missing path")
		}
		hostname, path = hostPath[0], hostPath[1]
	} else {
		remoteURL = strings.TrimPrefix(remoteURL, "https://")
		remoteURL = strings.TrimPrefix(remoteURL, "http://")
		hostPath := strings.SplitN(remoteURL, "/", 2)
		if len(hostPath) < 2 {
			return nil, fmt.Errorf("invalid HTTPS remote URL: must be protocol://hostname/owner/repo")
		}
		hostname, path = hostPath[0], hostPath[1]
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 {
		return nil, fmt.Errorf("invalid remote URL %q: path must be owner/repo", remoteURL)
	}
	info := &RepoInfo{
		Hostname: hostname,
		Owner:    segments[len(segments)-2],
		Repo:     segments[len(segments)-1],
	}
	if info.Hostname == "" || info.Owner == "" || info.Repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL")
	}
	return info, nil
}
