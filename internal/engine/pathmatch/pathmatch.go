// Package pathmatch tests file paths against a glob pattern relative to a root.
//
// Matching is a pure string test: nothing is read from disk, so files created
// after the matcher was built match exactly like files that existed before.
package pathmatch

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/zerr"
)

// Matcher matches candidate paths against a compiled pattern.
type Matcher struct {
	root     string
	absolute bool
	alts     []string
}

// New compiles pattern for paths below root.
//
// Supported syntax: * within a segment, ** across segments, ?, [...], {a,b},
// and the extglob groups ?(a|b) (zero or one) and @(a|b) (exactly one).
// Wildcards skip files and directories whose name starts with a dot.
func New(root, pattern string) (*Matcher, error) {
	p := filepath.ToSlash(pattern)
	absolute := filepath.IsAbs(pattern)
	if !absolute {
		p = strings.TrimPrefix(p, "./")
	}

	alts, err := expand(p)
	if err != nil {
		return nil, zerr.With(err, "pattern", pattern)
	}
	for _, alt := range alts {
		if !doublestar.ValidatePattern(alt) {
			return nil, zerr.With(domain.ErrInvalidPattern, "pattern", pattern)
		}
	}

	return &Matcher{
		root:     filepath.Clean(root),
		absolute: absolute,
		alts:     alts,
	}, nil
}

// Match reports whether candidate matches. Relative candidates are taken
// relative to the root; candidates outside the root never match a relative pattern.
func (m *Matcher) Match(candidate string) bool {
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(m.root, candidate)
	}

	subject := filepath.ToSlash(filepath.Clean(candidate))
	if !m.absolute {
		rel, err := filepath.Rel(m.root, candidate)
		if err != nil {
			return false
		}
		subject = filepath.ToSlash(rel)
		if subject == ".." || strings.HasPrefix(subject, "../") {
			return false
		}
	}

	for _, alt := range m.alts {
		if !dotAllowed(alt, subject) {
			continue
		}
		if ok, _ := doublestar.Match(alt, subject); ok {
			return true
		}
	}
	return false
}

// dotAllowed applies the dotfile rule: wildcards never match a segment that
// starts with a dot, so such a segment needs a dot segment in the pattern.
func dotAllowed(alt, subject string) bool {
	explicit := strings.HasPrefix(alt, ".") || strings.Contains(alt, "/.")
	if explicit {
		return true
	}
	for seg := range strings.SplitSeq(subject, "/") {
		if strings.HasPrefix(seg, ".") {
			return false
		}
	}
	return true
}

// Matches is the one-shot form of New(root, pattern).Match(candidate).
// An invalid pattern matches nothing.
func Matches(candidate, root, pattern string) bool {
	m, err := New(root, pattern)
	if err != nil {
		return false
	}
	return m.Match(candidate)
}

// expand rewrites extglob groups into the plain alternatives they stand for.
func expand(p string) ([]string, error) {
	start, end, optional := findGroup(p)
	if start < 0 {
		return []string{p}, nil
	}
	if end < 0 {
		return nil, domain.ErrInvalidPattern
	}

	choices := splitAlternatives(p[start+2 : end])
	if optional {
		choices = append([]string{""}, choices...)
	}

	rest, err := expand(p[end+1:])
	if err != nil {
		return nil, err
	}

	var out []string
	for _, choice := range choices {
		inner, err := expand(choice)
		if err != nil {
			return nil, err
		}
		for _, in := range inner {
			for _, r := range rest {
				out = append(out, p[:start]+in+r)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// findGroup locates the first ?( or @( group. end is -1 when it is not closed.
func findGroup(p string) (start, end int, optional bool) {
	for i := 0; i+1 < len(p); i++ {
		switch {
		case p[i] == '\\':
			i++
		case (p[i] == '?' || p[i] == '@') && p[i+1] == '(':
			depth := 0
			for j := i + 1; j < len(p); j++ {
				switch p[j] {
				case '\\':
					j++
				case '(':
					depth++
				case ')':
					depth--
					if depth == 0 {
						return i, j, p[i] == '?'
					}
				}
			}
			return i, -1, p[i] == '?'
		}
	}
	return -1, -1, false
}

// splitAlternatives splits on | outside nested groups.
func splitAlternatives(s string) []string {
	var out []string
	depth, last := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				out = append(out, s[last:i])
				last = i + 1
			}
		}
	}
	return append(out, s[last:])
}
