package concern

// A small Aho-Corasick automaton over bytes
// Inputs are cleaned ASCII text; keywords may contain any byte.
// Each node keeps a fixed 256-way transition table to avoid map lookups on the hot path

type acNode struct {
	// trans[b] = next state or -1 if absent
	trans [256]int32
	fail  int32
	// best is the lowest category index of any keyword ending here, including via fail links
	best int32
}

type acAutomaton struct {
	nodes []acNode
}

const none int32 = -1

func newNode() acNode {
	var n acNode
	for i := range n.trans {
		n.trans[i] = none
	}
	n.best = none
	return n
}

func newAutomaton() *acAutomaton {
	return &acAutomaton{nodes: []acNode{newNode()}}
}

// add inserts a keyword tagged with its category index
func (a *acAutomaton) add(pat string, cat int32) {
	if pat == "" {
		return
	}
	state := int32(0)
	for i := 0; i < len(pat); i++ {
		b := pat[i]
		nxt := a.nodes[state].trans[b]
		if nxt == none {
			nxt = int32(len(a.nodes))
			a.nodes[state].trans[b] = nxt
			a.nodes = append(a.nodes, newNode())
		}
		state = nxt
	}
	a.nodes[state].best = minCat(a.nodes[state].best, cat)
}

// build finalizes failure links breadth first and folds best through them
func (a *acAutomaton) build() {
	q := make([]int32, 0, len(a.nodes))
	for b := 0; b < 256; b++ {
		if s := a.nodes[0].trans[b]; s != none {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}

	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := 0; b < 256; b++ {
			s := a.nodes[r].trans[b]
			if s == none {
				continue
			}
			q = append(q, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].trans[b] == none {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].trans[b]; nxt != none {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}

			// parents in BFS order are final before children
			a.nodes[s].best = minCat(a.nodes[s].best, a.nodes[a.nodes[s].fail].best)
		}
	}
}

// lowest scans text and returns the lowest category index with any keyword present and
// the end offset of its first occurrence. It stops early once category 0 is seen
func (a *acAutomaton) lowest(text string) (cat int32, end int) {
	cat, end = none, -1
	state := int32(0)
	for i := 0; i < len(text); i++ {
		b := text[i]
		for state != 0 && a.nodes[state].trans[b] == none {
			state = a.nodes[state].fail
		}
		if nxt := a.nodes[state].trans[b]; nxt != none {
			state = nxt
		}
		if c := a.nodes[state].best; c != none && (cat == none || c < cat) {
			cat, end = c, i+1
			if cat == 0 {
				return cat, end
			}
		}
	}
	return cat, end
}

func minCat(a, b int32) int32 {
	switch {
	case a == none:
		return b
	case b == none:
		return a
	case b < a:
		return b
	default:
		return a
	}
}
