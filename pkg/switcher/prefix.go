package switcher

import (
	"github.com/tchap/go-patricia/v2/patricia"
)

// prefixIndex maps command strings to the handlers registered for them.
type prefixIndex struct {
	trie *patricia.Trie
	size int
}

func newPrefixIndex() *prefixIndex {
	return &prefixIndex{trie: patricia.NewTrie()}
}

// add registers handler index idx under command. Empty commands are ignored.
func (p *prefixIndex) add(command string, idx int) {
	if command == "" {
		return
	}
	key := patricia.Prefix(command)
	var handlers []int
	if item := p.trie.Get(key); item != nil {
		handlers = item.([]int)
	}
	p.trie.Set(key, append(handlers, idx))
	p.size++
}

// candidate is a handler whose command prefixes the input.
type candidate struct {
	command string
	handler int
}

// lookup returns the handlers whose command is a prefix of input, longest
// command first. Handlers sharing a command keep registration order.
func (p *prefixIndex) lookup(input string) []candidate {
	if input == "" || p.size == 0 {
		return nil
	}

	var levels [][]candidate
	_ = p.trie.VisitPrefixes(patricia.Prefix(input), func(prefix patricia.Prefix, item patricia.Item) error {
		var level []candidate
		for _, idx := range item.([]int) {
			level = append(level, candidate{command: string(prefix), handler: idx})
		}
		levels = append(levels, level)
		return nil
	})

	// VisitPrefixes walks from the shortest prefix to the longest.
	var out []candidate
	for i := len(levels) - 1; i >= 0; i-- {
		out = append(out, levels[i]...)
	}
	return out
}
