package engine

import (
	"fmt"
	"sort"
	"strings"
)

// swapBranches pairs the two common default branch names
var swapBranches = map[string]string{
	"main":   "master",
	"master": "main",
}

// defaultBranches are tried in order when nothing else matches
var defaultBranches = []string{"main", "master"}

// ResolveBranch picks the branch to operate on. In priority order it uses the
// configured branch, its main/master counterpart, the branch HEAD names, and
// finally main or master. If none exist the result has ReasonNotFound.
// It has no side effects and never fails; a failing provider counts as empty.
func ResolveBranch(configured string, available func() ([]string, error), head func() (string, bool)) BranchResolution {
	branches := normalizeBranches(available)
	has := func(name string) bool {
		i := sort.SearchStrings(branches, name)
		return i < len(branches) && branches[i] == name
	}

	res := BranchResolution{
		Configured: configured,
		Available:  branches,
	}

	if has(configured) {
		res.Effective = configured
		res.Reason = ReasonExact
		return res
	}

	if swapped, ok := swapBranches[configured]; ok && has(swapped) {
		res.Effective = swapped
		res.Reason = ReasonMainMasterSwap
		res.Message = fmt.Sprintf("Branch '%s' not found; using '%s' instead.", configured, swapped)
		return res
	}

	if head != nil {
		if headBranch, ok := head(); ok && headBranch != "" && has(headBranch) {
			res.Effective = headBranch
			res.Reason = ReasonFallbackHead
			res.Message = fmt.Sprintf("Branch '%s' not found; using current HEAD '%s'.", configured, headBranch)
			return res
		}
	}

	for _, fallback := range defaultBranches {
		if has(fallback) {
			res.Effective = fallback
			res.Reason = ReasonFallbackDefault
			res.Message = fmt.Sprintf("Branch '%s' not found; falling back to '%s'.", configured, fallback)
			return res
		}
	}

	listed := "(none)"
	if len(branches) > 0 {
		listed = strings.Join(branches, ", ")
	}
	res.Effective = configured
	res.Reason = ReasonNotFound
	res.Message = fmt.Sprintf("Branch '%s' not found. Available: %s", configured, listed)
	return res
}

// normalizeBranches returns the provider's branches sorted and de-duplicated
func normalizeBranches(available func() ([]string, error)) []string {
	branches := []string{}
	if available == nil {
		return branches
	}
	list, err := available()
	if err != nil {
		return branches
	}

	seen := make(map[string]bool, len(list))
	for _, b := range list {
		if b != "" && !seen[b] {
			seen[b] = true
			branches = append(branches, b)
		}
	}
	sort.Strings(branches)
	return branches
}
