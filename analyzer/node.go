package analyzer

import (
	"sort"
	"strings"
)

// Node is the merged summary of every value observed at one path across
// all analyzed instances. Object children and array elements hang off
// the node, so a full analysis is a tree of Nodes rooted at the
// top-level document.
type Node struct {
	// Types lists the distinct non-null classifications observed at
	// this path, in first-seen order. More than one entry means the
	// path is conflicted. Empty values classify like any other: "" is
	// a string, {} an object, [] an array.
	Types []ValueType

	// Optional is true when the path was absent from some instances or
	// was ever observed null. Stamped by finalize.
	Optional bool

	// Children holds per-key summaries for object observations.
	// Order preserves first-seen key order across all instances.
	Children map[string]*Node
	Order    []string

	// Child summarizes the sampled elements of array observations,
	// nil when every element was null or empty. ChildType is its
	// compact description: a type name, "unknown", "mixed: a, b",
	// "mixed" or "mixed_complex".
	Child     *Node
	ChildType string

	// Observation counters.
	Seen        int // times the path was present (any value, nulls included)
	Nulls       int // times the value was null
	Empties     int // times the value was "", {} or []
	ObjectCount int // times the value was an object ({} included)
	ArrayCount  int // times the value was an array ([] included)
}

func newNode() *Node {
	return &Node{}
}

// registerType records a classification, keeping first-seen order and
// collapsing duplicates.
func (n *Node) registerType(t ValueType) {
	for _, existing := range n.Types {
		if existing == t {
			return
		}
	}
	n.Types = append(n.Types, t)
}

// HasType reports whether t was observed at this path.
func (n *Node) HasType(t ValueType) bool {
	for _, existing := range n.Types {
		if existing == t {
			return true
		}
	}
	return false
}

// Conflicted reports whether more than one distinct type was observed.
func (n *Node) Conflicted() bool {
	return len(n.Types) > 1
}

// SoleType returns the single observed type, or TypeUnknown when the
// path is conflicted or was never observed with a usable value.
func (n *Node) SoleType() ValueType {
	if len(n.Types) == 1 {
		return n.Types[0]
	}
	return TypeUnknown
}

// TypeNames returns the observed type names sorted alphabetically, for
// stable conflict reporting.
func (n *Node) TypeNames() []string {
	names := make([]string, 0, len(n.Types))
	for _, t := range n.Types {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// child returns the summary node for an object key, creating it and
// recording first-seen order on first use.
func (n *Node) child(key string) *Node {
	if n.Children == nil {
		n.Children = make(map[string]*Node)
	}
	c, ok := n.Children[key]
	if !ok {
		c = newNode()
		n.Children[key] = c
		n.Order = append(n.Order, key)
	}
	return c
}

// finalize stamps Optional flags and array element summaries across the
// tree once all instances have been observed.
func (n *Node) finalize() {
	for _, key := range n.Order {
		c := n.Children[key]
		c.Optional = c.Seen < n.ObjectCount || c.Nulls > 0
		c.finalize()
	}
	if n.Child != nil {
		n.Child.Optional = n.Child.Nulls > 0
		n.Child.finalize()
	}
	n.ChildType = n.childTypeSummary()
}

// childTypeSummary describes the element types of an array path.
func (n *Node) childTypeSummary() string {
	if !n.HasType(TypeArray) {
		return ""
	}

	c := n.Child
	if c == nil || len(c.Types) == 0 {
		return "unknown"
	}
	if len(c.Types) == 1 {
		return c.Types[0].String()
	}

	scalars, composites := 0, 0
	for _, t := range c.Types {
		if t.IsComposite() {
			composites++
		} else {
			scalars++
		}
	}
	switch {
	case composites == 0:
		return "mixed: " + strings.Join(c.TypeNames(), ", ")
	case scalars == 0:
		return "mixed"
	default:
		return "mixed_complex"
	}
}
