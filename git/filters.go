package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// PathPrefixFilter includes changes whose old or new path starts with prefix.
// This is useful for filtering by directory.
func PathPrefixFilter(prefix string) ChangeFilter {
	return func(change *object.Change) bool {
		// Check both From and To names to handle renames
		return strings.HasPrefix(change.From.Name, prefix) ||
			strings.HasPrefix(change.To.Name, prefix)
	}
}

// OrFilter combines multiple filters with OR logic - at least one must pass.
func OrFilter(filters ...ChangeFilter) ChangeFilter {
	return func(change *object.Change) bool {
		for _, filter := range filters {
			if filter != nil && filter(change) {
				return true
			}
		}
		return false
	}
}
