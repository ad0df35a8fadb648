// Package trie implements the prefix index used to prune the board search.
package trie

// Classification is the outcome of checking a string against the index.
type Classification int

const (
	// Absent means no indexed word starts with the string.
	Absent Classification = iota
	// Partial means the string is a proper prefix of some indexed word.
	Partial
	// Complete means the string is itself an indexed word.
	Complete
)

func (c Classification) String() string {
	switch c {
	case Absent:
		return "Absent"
	case Partial:
		return "Partial"
	case Complete:
		return "Complete"
	}
	return "Classification(?)"
}

// Node is one vertex of the prefix tree.  Each node owns its children; the
// root owns the whole tree.
type Node struct {
	// Value is the rune on the edge leading into this node.  Zero at the root.
	Value rune
	// Terminal is set when the path from the root to this node spells a word.
	Terminal bool

	root     bool
	children map[rune]*Node
}

// New returns an empty index.
func New() *Node {
	return &Node{root: true}
}

// FromWords builds an index containing every word in words.
func FromWords(words []string) *Node {
	root := New()
	for _, w := range words {
		root.Add(w)
	}
	return root
}

// Add inserts word beneath n.  Adding the empty string marks n itself.
func (n *Node) Add(word string) {
	curNode := n
	for _, r := range word {
		next, ok := curNode.children[r]
		if !ok {
			if curNode.children == nil {
				curNode.children = map[rune]*Node{}
			}
			next = &Node{Value: r}
			curNode.children[r] = next
		}
		curNode = next
	}
	curNode.Terminal = true
}

// Child returns the node reached from n along the edge r, or nil.
func (n *Node) Child(r rune) *Node {
	return n.children[r]
}

// Classify walks prefix starting at n.  The node reached is returned for
// Partial and Complete, nil for Absent.
func (n *Node) Classify(prefix string) (Classification, *Node) {
	curNode := n
	for _, r := range prefix {
		curNode = curNode.children[r]
		if curNode == nil {
			return Absent, nil
		}
	}
	return curNode.Class(), curNode
}

// Class classifies the prefix n stands for: Complete when it is a word,
// Partial otherwise.  A nil node is Absent.
func (n *Node) Class() Classification {
	if n == nil {
		return Absent
	}
	if n.Terminal {
		return Complete
	}
	return Partial
}

// IsRoot reports whether n is the root of an index.
func (n *Node) IsRoot() bool {
	return n.root
}

// Len counts the words stored at or beneath n.
func (n *Node) Len() int {
	count := 0
	if n.Terminal {
		count++
	}
	for _, c := range n.children {
		count += c.Len()
	}
	return count
}
