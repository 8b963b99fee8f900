// Package template splices generated fragments into a master document at
// marker lines.
//
// A marker line is a line whose only content, ignoring surrounding
// whitespace, is the marker token (for example "${JOBS_LIST}"). Parsing
// records each marker as a slot; rendering replaces the whole line with the
// slot's content.
package template

import (
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
)

const (
	// WorkflowJobsMarker is replaced by the accumulated workflow fragments.
	WorkflowJobsMarker = "${WORKFLOW_JOBS_LIST}"

	// JobsMarker is replaced by the accumulated job fragments.
	JobsMarker = "${JOBS_LIST}"

	// ReleasePlaceholder is substituted with the release label in fragments.
	ReleasePlaceholder = "${RELEASE}"
)

type line struct {
	text   string
	marker string
}

// Document is a parsed master template: an ordered list of static lines and
// marker slots.
type Document struct {
	lines   []line
	markers map[string]struct{}
}

// Parse splits text into lines and resolves the required markers. Every
// marker must occur on exactly one line: a missing marker fails with
// CodeMarkerNotFound and a repeated one with CodeInvalidTemplate.
func Parse(text string, markers ...string) (*Document, error) {
	doc := &Document{markers: make(map[string]struct{}, len(markers))}
	for _, m := range markers {
		doc.markers[m] = struct{}{}
	}

	found := make(map[string]int, len(markers))
	for i, raw := range splitLines(text) {
		l := line{text: raw}
		if _, ok := doc.markers[strings.TrimSpace(raw)]; ok {
			l.marker = strings.TrimSpace(raw)
			if _, dup := found[l.marker]; dup {
				return nil, errors.NewWithContext(errors.CodeInvalidTemplate, "marker appears more than once",
					map[string]interface{}{"marker": l.marker, "line": i + 1})
			}
			found[l.marker] = i + 1
		}
		doc.lines = append(doc.lines, l)
	}

	for _, m := range markers {
		if _, ok := found[m]; !ok {
			return nil, errors.NewWithContext(errors.CodeMarkerNotFound, "template marker not found",
				map[string]interface{}{"marker": m})
		}
	}

	return doc, nil
}

// Markers returns the markers this document was parsed with, in line order.
func (d *Document) Markers() []string {
	var out []string
	for _, l := range d.lines {
		if l.marker != "" {
			out = append(out, l.marker)
		}
	}
	return out
}

// Render replaces each marker line with content[marker]. Content is inserted
// verbatim; a trailing newline is added when it lacks one so following lines
// stay intact. A marker with no entry in content fails with
// CodeMarkerNotFound.
func (d *Document) Render(content map[string]string) (string, error) {
	for m := range d.markers {
		if _, ok := content[m]; !ok {
			return "", errors.NewWithContext(errors.CodeMarkerNotFound, "no content for template marker",
				map[string]interface{}{"marker": m})
		}
	}

	var b strings.Builder
	for _, l := range d.lines {
		if l.marker == "" {
			b.WriteString(l.text)
			continue
		}
		c := content[l.marker]
		b.WriteString(c)
		if c != "" && !strings.HasSuffix(c, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// Substitute replaces every occurrence of ReleasePlaceholder in fragment
// with label.
func Substitute(fragment, label string) string {
	return strings.ReplaceAll(fragment, ReleasePlaceholder, label)
}

// splitLines splits text after each newline, keeping terminators so that
// rendering an unmodified document reproduces the input byte for byte.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
