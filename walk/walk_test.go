package walk_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/walk"
)

// TestChildFirstOrdersChildrenBeforeParents checks the defining invariant:
// every node appears after all of its children.
func TestChildFirstOrdersChildrenBeforeParents(t *testing.T) {
	s := term.NewStore()
	plus := s.Prim("+")
	v0 := s.Var(0)
	app, err := s.App(plus, v0)
	require.NoError(t, err)
	lam, err := s.Lam(app)
	require.NoError(t, err)

	order, err := walk.ChildFirst(s, []term.NodeId{lam})
	require.NoError(t, err)

	pos := make(map[term.NodeId]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	require.Less(t, pos[plus], pos[app])
	require.Less(t, pos[v0], pos[app])
	require.Less(t, pos[app], pos[lam])
}

// TestChildFirstDedupsSharedSubtrees checks that a node shared by two roots
// appears exactly once.
func TestChildFirstDedupsSharedSubtrees(t *testing.T) {
	s := term.NewStore()
	shared := s.Prim("shared")
	v0 := s.Var(0)
	left, err := s.App(shared, v0)
	require.NoError(t, err)
	right, err := s.App(shared, v0)
	require.NoError(t, err)
	require.Equal(t, left, right)

	order, err := walk.ChildFirst(s, []term.NodeId{left, right})
	require.NoError(t, err)

	count := 0
	for _, id := range order {
		if id == shared {
			count++
		}
	}
	require.Equal(t, 1, count)
}
