package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID_Deterministic(t *testing.T) {
	require.Equal(t, ID("hilbert:8:3"), ID("hilbert:8:3"))
}

func TestID_DistinctInputsDiffer(t *testing.T) {
	require.NotEqual(t, ID("hilbert:8:3"), ID("morton:8:3"))
}

func TestID_EmptyString(t *testing.T) {
	require.Equal(t, uint64(0xef46db3751d8e999), ID(""))
}
