package compress_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lcinvent/lcinvent/compress"
)

// TestStatsPopulatedOnlyWhenNotSuppressed checks NoStats controls Stats
// population without affecting the rest of a StepResult.
func TestStatsPopulatedOnlyWhenNotSuppressed(t *testing.T) {
	progs := parseCorpus(t, "(programs (plus one two) (plus one three))")

	withStats, err := compress.Compress(context.Background(), progs, nil, 1,
		compress.NewConfig(compress.WithMaxArity(2)), nil)
	require.NoError(t, err)
	require.NotEmpty(t, withStats)
	require.NotNil(t, withStats[0].Stats)
	require.Greater(t, withStats[0].Stats.CompressionRatio, 1.0)

	noStats, err := compress.Compress(context.Background(), progs, nil, 1,
		compress.NewConfig(compress.WithMaxArity(2), compress.WithNoStats(true)), nil)
	require.NoError(t, err)
	require.NotEmpty(t, noStats)
	require.Nil(t, noStats[0].Stats)
	require.Equal(t, withStats[0].InventionBody, noStats[0].InventionBody)
}
