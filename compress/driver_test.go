package compress_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/compress"
	"github.com/lcinvent/lcinvent/term"
)

// TestCompressFindsAndAppliesSharedPartialApplication mirrors the
// rewrite package's own shared-partial-application scenario end to end
// through the driver: parsing, searching, naming, and rewriting.
func TestCompressFindsAndAppliesSharedPartialApplication(t *testing.T) {
	progs := parseCorpus(t, "(programs (plus one two) (plus one three))")

	results, err := compress.Compress(context.Background(), progs, nil, 3,
		compress.NewConfig(compress.WithMaxArity(2)), nil)
	require.NoError(t, err)
	require.Len(t, results, 1, "a single shared partial application should be found and then exhausted")

	step := results[0]
	require.Equal(t, "fn_0", step.InventionName)
	require.Equal(t, 1, step.Arity)
	require.Equal(t, "(app (app plus one) #0)", step.InventionBody)
	require.Len(t, step.TrainPrograms, 2)
	for _, p := range step.TrainPrograms {
		require.Less(t, p.RewrittenCost, p.OriginalCost)
		require.Equal(t, 1, p.OccurrenceCount)
	}
}

// TestCompressStopsWhenNoSharingExists checks that a corpus with no shared
// structure at all produces zero iterations rather than a spurious winner.
func TestCompressStopsWhenNoSharingExists(t *testing.T) {
	progs := parseCorpus(t, "(programs (f a) (g b))")

	results, err := compress.Compress(context.Background(), progs, nil, 3, compress.NewConfig(), nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestCompressRejectsEmptyTrainPrograms(t *testing.T) {
	_, err := compress.Compress(context.Background(), nil, nil, 1, compress.NewConfig(), nil)
	require.ErrorIs(t, err, compress.ErrNoPrograms)
}

func TestCompressRejectsTaskNameMismatch(t *testing.T) {
	progs := parseCorpus(t, "(programs (f a))")
	_, err := compress.Compress(context.Background(), progs, nil, 1, compress.NewConfig(), []string{"only-one-needed", "extra"})
	require.ErrorIs(t, err, compress.ErrTaskNameMismatch)
}

// TestCompressRejectsFreeVariableProgram checks the ingestion-violation
// guard on a root program carrying an unbound de Bruijn variable.
func TestCompressRejectsFreeVariableProgram(t *testing.T) {
	progs := []*term.Expr{{Kind: term.KindVar, Index: 0}}
	_, err := compress.Compress(context.Background(), progs, nil, 1, compress.NewConfig(), nil)
	require.ErrorIs(t, err, compress.ErrIngestionViolation)
}

// TestCompressLeavesUnmatchedTestProgramUnrewritten checks that a held-out
// test program containing none of the training occurrence nodes is reported
// with zero occurrences, so the accepted invention is not applied to it.
func TestCompressLeavesUnmatchedTestProgramUnrewritten(t *testing.T) {
	train := parseCorpus(t, "(programs (plus one two) (plus one three))")
	test := parseCorpus(t, "(programs (plus one four))")

	results, err := compress.Compress(context.Background(), train, test, 3,
		compress.NewConfig(compress.WithMaxArity(2)), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	step := results[0]
	require.Len(t, step.TestPrograms, 1)
	// "four" never appeared in training, so the shared "(plus one)" prefix is
	// the only structure the test program has in common with the winner.
	require.Equal(t, step.TestPrograms[0].OccurrenceCount, 0,
		"a distinct, never-searched literal argument does not hash-cons to a training occurrence node")
}
