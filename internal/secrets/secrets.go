// Package secrets flags files that look like credentials before they are
// committed to the dotfiles repository.
package secrets

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Match describes one suspicious file
type Match struct {
	File   string
	Reason string
	// Line is 1-based; zero when the file name alone matched
	Line    int
	Snippet string
}

type rule struct {
	pattern *regexp.Regexp
	reason  string
}

// blockedNames match the base name or the full relative path
var blockedNames = []rule{
	{regexp.MustCompile(`^id_(rsa|dsa|ecdsa|ed25519)$`), "SSH private key file"},
	{regexp.MustCompile(`(^|/)\.env(\..+)?$`), "environment file"},
	{regexp.MustCompile(`\.env$`), "environment file"},
	{regexp.MustCompile(`(^|/)\.aws/credentials$`), "AWS credentials file"},
	{regexp.MustCompile(`(^|/)\.netrc$`), "netrc credentials file"},
	{regexp.MustCompile(`^secrets?\.(ya?ml|json)$`), "secrets file"},
	{regexp.MustCompile(`\.(token|pem|key|p12|pfx)$`), "key or token file"},
}

// allowedNames are never flagged
var allowedNames = []*regexp.Regexp{
	regexp.MustCompile(`(^|/)\.ssh/(config|known_hosts|authorized_keys)$`),
	regexp.MustCompile(`\.pub$`),
}

var contentRules = []rule{
	{regexp.MustCompile(`-----BEGIN ([A-Z]+ )?PRIVATE KEY-----`), "contains a private key"},
	{regexp.MustCompile(`AKIA[0-9A-Z]{16}`), "contains an AWS access key"},
	{regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,}`), "contains a GitHub token"},
	{regexp.MustCompile(`sk-[A-Za-z0-9_-]{40,}`), "contains an OpenAI API key"},
	{regexp.MustCompile(`xox[baprs]-[A-Za-z0-9-]{10,}`), "contains a Slack token"},
	{regexp.MustCompile(`(?i)(password|passwd|secret|api_?key)\s*[:=]\s*["']?[^\s"']{8,}`), "contains a password or secret assignment"},
}

// Scanner checks file names and contents against the built-in rules plus
// the configured extra block and allow patterns
type Scanner struct {
	block []rule
	allow []*regexp.Regexp
}

// NewScanner compiles the extra patterns, which are regular expressions
// matched against the home-relative path
func NewScanner(extraBlock, extraAllow []string) (*Scanner, error) {
	s := &Scanner{
		block: append([]rule{}, blockedNames...),
		allow: append([]*regexp.Regexp{}, allowedNames...),
	}
	for _, p := range extraBlock {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid secrets.block pattern %q: %w", p, err)
		}
		s.block = append(s.block, rule{re, "matches block pattern " + p})
	}
	for _, p := range extraAllow {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid secrets.allow pattern %q: %w", p, err)
		}
		s.allow = append(s.allow, re)
	}
	return s, nil
}

func (s *Scanner) allowed(file string) bool {
	for _, re := range s.allow {
		if re.MatchString(file) || re.MatchString(path.Base(file)) {
			return true
		}
	}
	return false
}

// CheckFilename flags file by name alone
func (s *Scanner) CheckFilename(file string) *Match {
	if s.allowed(file) {
		return nil
	}
	for _, r := range s.block {
		if r.pattern.MatchString(file) || r.pattern.MatchString(path.Base(file)) {
			return &Match{File: file, Reason: r.reason}
		}
	}
	return nil
}

// CheckContent flags the first line of content that looks like a secret
func (s *Scanner) CheckContent(file string, content string) *Match {
	if s.allowed(file) {
		return nil
	}
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		for _, r := range contentRules {
			if loc := r.pattern.FindStringIndex(text); loc != nil {
				return &Match{File: file, Reason: r.reason, Line: line, Snippet: Redact(text[loc[0]:loc[1]])}
			}
		}
	}
	return nil
}

// ScanFile checks the name and then the content of a home-relative file.
// Unreadable files are only checked by name.
func (s *Scanner) ScanFile(file, home string) *Match {
	if m := s.CheckFilename(file); m != nil {
		return m
	}
	if home == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(home, filepath.FromSlash(file)))
	if err != nil {
		return nil
	}
	return s.CheckContent(file, string(data))
}

// ScanFiles returns a match for every suspicious file
func (s *Scanner) ScanFiles(files []string, home string) []Match {
	var matches []Match
	for _, f := range files {
		if m := s.ScanFile(f, home); m != nil {
			matches = append(matches, *m)
		}
	}
	return matches
}

// Redact keeps only the first six and last four characters of a long value
func Redact(value string) string {
	if len(value) <= 12 {
		return "***"
	}
	return value[:6] + "..." + value[len(value)-4:]
}
