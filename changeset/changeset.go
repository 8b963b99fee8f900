// Package changeset records which repository paths changed between two
// revisions and answers membership queries against that record.
package changeset

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
)

// Source lists the paths added, modified or deleted between two revisions.
type Source interface {
	ChangedPaths(ctx context.Context, from, to string) ([]string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, from, to string) ([]string, error)

// ChangedPaths calls f.
func (f SourceFunc) ChangedPaths(ctx context.Context, from, to string) ([]string, error) {
	return f(ctx, from, to)
}

// Options tunes Query.
type Options struct {
	// Ignore holds doublestar globs. Matching paths are dropped from the record.
	Ignore []string
}

// Record is an immutable, sorted set of distinct changed paths.
type Record struct {
	From  string
	To    string
	paths []string
}

// NewRecord builds a record from arbitrary paths, deduplicating and sorting them.
func NewRecord(from, to string, paths []string) *Record {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return &Record{From: from, To: to, paths: out}
}

// Query asks src for the paths changed between from and to.
func Query(ctx context.Context, src Source, from, to string, opts Options) (*Record, error) {
	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.NewWithContext(errors.CodeInvalidInput, "invalid ignore pattern",
				map[string]interface{}{"pattern": pattern})
		}
	}

	paths, err := src.ChangedPaths(ctx, from, to)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeVCSQueryFailed, "failed to list changed paths",
			map[string]interface{}{"from": from, "to": to})
	}

	kept := paths[:0:0]
	for _, p := range paths {
		if !ignored(p, opts.Ignore) {
			kept = append(kept, p)
		}
	}

	return NewRecord(from, to, kept), nil
}

func ignored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Paths returns a copy of the sorted paths.
func (r *Record) Paths() []string {
	return append(r.paths[:0:0], r.paths...)
}

// Len returns the number of changed paths.
func (r *Record) Len() int { return len(r.paths) }

// Empty reports whether nothing changed.
func (r *Record) Empty() bool { return len(r.paths) == 0 }

// Contains reports whether any path matches pattern, a regular expression
// tested against a substring of the path (anchor it with ^ for prefixes).
func (r *Record) Contains(pattern string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, errors.WrapWithContext(err, errors.CodeInvalidInput, "invalid change pattern",
			map[string]interface{}{"pattern": pattern})
	}
	return r.Match(re), nil
}

// Match reports whether any path matches re.
func (r *Record) Match(re *regexp.Regexp) bool {
	for _, p := range r.paths {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// HasPrefix reports whether any path starts with prefix.
func (r *Record) HasPrefix(prefix string) bool {
	for _, p := range r.paths {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// AnyOutside reports whether some path does not start with prefix.
func (r *Record) AnyOutside(prefix string) bool {
	for _, p := range r.paths {
		if !strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
