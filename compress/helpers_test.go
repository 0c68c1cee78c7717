package compress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/sexpr"
	"github.com/lcinvent/lcinvent/term"
)

func parseCorpus(t *testing.T, source string) []*term.Expr {
	t.Helper()
	progs, err := sexpr.ParseCorpus(source)
	require.NoError(t, err)
	return progs
}
