package tracing

import "strings"

// Namespace is the ordered sequence of path segments identifying a log
// site's position in the tracing hierarchy. It serves both as the key
// the configuration model resolves policy against, and as the key
// documentation is collected under.
//
// A Namespace may also be used as a selector, addressing the whole
// subtree rooted at it.
type Namespace []string

// ParseNamespace splits a dotted path like "node.chaindb" into a
// Namespace. The empty string parses to the empty (root) namespace.
func ParseNamespace(path string) Namespace {
	if path == "" {
		return nil
	}
	return Namespace(strings.Split(path, "."))
}

// String joins the segments with dots. The empty namespace renders as "".
func (n Namespace) String() string { return strings.Join(n, ".") }

// Parent returns the namespace with the last segment stripped. The
// parent of the empty namespace is the empty namespace.
func (n Namespace) Parent() Namespace {
	if len(n) == 0 {
		return nil
	}
	return n[:len(n)-1]
}

// Extend returns a copy of the namespace with the given segments
// appended. The receiver is not modified.
func (n Namespace) Extend(segments ...string) Namespace {
	out := make(Namespace, 0, len(n)+len(segments))
	out = append(out, n...)
	return append(out, segments...)
}

// Equal reports whether two namespaces consist of the same segments.
func (n Namespace) Equal(other Namespace) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}
