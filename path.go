package arrayfile

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one segment of a Path: either a string key into an object or an
// integer index into an array.
type Step struct {
	key   string
	index int
	isKey bool
}

// Key returns a Step addressing an object key.
func Key(k string) Step { return Step{key: k, isKey: true} }

// Index returns a Step addressing an array index.
func Index(i int) Step { return Step{index: i} }

// IsKey reports whether the step addresses an object key.
func (s Step) IsKey() bool { return s.isKey }

// KeyName returns the object key; only meaningful when IsKey is true.
func (s Step) KeyName() string { return s.key }

// ArrayIndex returns the array index; only meaningful when IsKey is false.
func (s Step) ArrayIndex() int { return s.index }

func (s Step) String() string {
	if s.isKey {
		return s.key
	}
	return strconv.Itoa(s.index)
}

// Path addresses a node in the value tree from the document root.
type Path []Step

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// ParsePath parses a dotted path such as "2.name" or "[2].name". A segment
// of digits is an index, anything else a key.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}
	// Normalize "[2]" bracket segments to dotted form before splitting.
	s = strings.ReplaceAll(s, "[", ".")
	s = strings.ReplaceAll(s, "]", "")
	s = strings.Trim(s, ".")

	var p Path
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return nil, fmt.Errorf("empty path segment in %q", s)
		}
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 {
			p = append(p, Index(i))
			continue
		}
		p = append(p, Key(seg))
	}
	return p, nil
}
