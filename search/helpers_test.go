package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/shift"
	"github.com/lcinvent/lcinvent/term"
	"github.com/lcinvent/lcinvent/walk"
	"github.com/lcinvent/lcinvent/zipper"
)

// buildCatalogue mirrors the zipper package's own test helper: walk, bubble,
// catalogue, in one call.
func buildCatalogue(t *testing.T, s *term.Store, roots []term.NodeId) *zipper.Catalogue {
	t.Helper()
	order, err := walk.ChildFirst(s, roots)
	require.NoError(t, err)
	sh := shift.New(s, false)
	z, _, err := zipper.Bubble(s, sh, order)
	require.NoError(t, err)
	return zipper.BuildCatalogue(z)
}
