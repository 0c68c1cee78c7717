package search

import (
	"strconv"
	"strings"

	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/zipper"
)

// divergenceIndex returns the first index at which a and b differ. Callers
// only ever invoke this on paths known not to be mutual prefixes (guarded by
// zipper.Catalogue.FirstMergeableZid), so the common case always finds a
// real divergence before either path runs out.
func divergenceIndex(a, b []zipper.Step) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// encodeNodes builds a comparable grouping key for a sibling sequence.
// term.Invalid entries (no sibling at that path position) are encoded
// distinctly from any real NodeId.
func encodeNodes(nodes []term.NodeId) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(n)))
	}
	return b.String()
}

// sumCounts totals num_paths_to_node over a node group.
func sumCounts(counts map[term.NodeId]int, nodes []term.NodeId) int {
	total := 0
	for _, n := range nodes {
		total += counts[n]
	}
	return total
}
