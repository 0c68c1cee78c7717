// File: catalogue.go
// Role: the path catalogue — dedup every path seen across bubbling into a
// dense zid space, then index (node, zid) -> AppliedZipper both ways.
// Adapted from the sort-then-group pattern a minimum-spanning-tree builder
// uses on edge weights: sort once, assign dense ranks, group by rank.
package zipper

import (
	"sort"

	"github.com/lcinvent/lcinvent/term"
)

// Catalogue is the deduplicated, indexed view of every AppliedZipper
// produced by Bubble.
type Catalogue struct {
	paths [][]Step // zid -> path, sorted ascending by ComparePaths

	appZipperOf    map[nodeZid]AppliedZipper
	zidsOfNode     map[term.NodeId][]ZId // sorted ascending
	nodesOfZid     map[ZId][]term.NodeId
	firstMergeable []ZId // per zid, see BuildCatalogue doc
}

type nodeZid struct {
	node term.NodeId
	zid  ZId
}

// BuildCatalogue deduplicates the paths across per-node applied-zipper sets
// and builds the node<->zid indices plus the first-mergeable-zid table.
func BuildCatalogue(perNode map[term.NodeId][]AppliedZipper) *Catalogue {
	// 1. Collect every distinct path.
	seen := make(map[string][]Step)
	var keys []string
	for _, zs := range perNode {
		for _, z := range zs {
			k := pathKey(z.Path)
			if _, ok := seen[k]; !ok {
				seen[k] = z.Path
				keys = append(keys, k)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return ComparePaths(seen[keys[i]], seen[keys[j]]) < 0
	})

	paths := make([][]Step, len(keys))
	zidOf := make(map[string]ZId, len(keys))
	for i, k := range keys {
		paths[i] = seen[k]
		zidOf[k] = ZId(i)
	}

	c := &Catalogue{
		paths:       paths,
		appZipperOf: make(map[nodeZid]AppliedZipper),
		zidsOfNode:  make(map[term.NodeId][]ZId, len(perNode)),
		nodesOfZid:  make(map[ZId][]term.NodeId, len(paths)),
	}

	// 2. Populate both directions of the (node, zid) index.
	for n, zs := range perNode {
		zids := make([]ZId, 0, len(zs))
		for _, z := range zs {
			zid := zidOf[pathKey(z.Path)]
			c.appZipperOf[nodeZid{n, zid}] = z
			zids = append(zids, zid)
			c.nodesOfZid[zid] = append(c.nodesOfZid[zid], n)
		}
		sort.Slice(zids, func(i, j int) bool { return zids[i] < zids[j] })
		c.zidsOfNode[n] = zids
	}
	for zid := range c.nodesOfZid {
		sort.Slice(c.nodesOfZid[zid], func(i, j int) bool { return c.nodesOfZid[zid][i] < c.nodesOfZid[zid][j] })
	}

	// 3. first_mergeable_zid_of: the extensions of paths[zid] form a
	// contiguous run of zids starting at zid itself (shorter prefix always
	// sorts before its own extensions); find where that run ends.
	c.firstMergeable = make([]ZId, len(paths))
	for zid := range paths {
		prefix := paths[zid]
		end := sort.Search(len(paths)-zid, func(i int) bool {
			return !isExtension(paths[zid+i], prefix)
		})
		c.firstMergeable[zid] = ZId(zid + end)
	}

	return c
}

func pathKey(p []Step) string {
	b := make([]byte, len(p))
	for i, s := range p {
		b[i] = byte(s)
	}
	return string(b)
}

func isExtension(longer, prefix []Step) bool {
	if len(longer) < len(prefix) {
		return false
	}
	for i, s := range prefix {
		if longer[i] != s {
			return false
		}
	}
	return true
}

// NumPaths reports the number of distinct paths (the zid space size).
func (c *Catalogue) NumPaths() int { return len(c.paths) }

// Path returns the step sequence for zid.
func (c *Catalogue) Path(zid ZId) []Step { return c.paths[zid] }

// AppliedZipperAt returns the AppliedZipper for (node, zid), if any.
func (c *Catalogue) AppliedZipperAt(node term.NodeId, zid ZId) (AppliedZipper, bool) {
	z, ok := c.appZipperOf[nodeZid{node, zid}]
	return z, ok
}

// ZidsOfNode returns the sorted zids reachable at node.
func (c *Catalogue) ZidsOfNode(node term.NodeId) []ZId { return c.zidsOfNode[node] }

// NodesOfZid returns the sorted nodes reachable via zid.
func (c *Catalogue) NodesOfZid(zid ZId) []term.NodeId { return c.nodesOfZid[zid] }

// FirstMergeableZid returns the least zid' whose path is NOT an extension of
// zid's path — the partition point used to skip zids that still share a
// prefix with zid.
func (c *Catalogue) FirstMergeableZid(zid ZId) ZId { return c.firstMergeable[zid] }
