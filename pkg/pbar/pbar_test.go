package pbar

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	var out bytes.Buffer

	pbs := NewProgressBarState(&out, 2048)
	pbs.Add(1024)
	require.Empty(t, out.String())

	pbs.Add(1024)
	pbs.Finish()

	require.Contains(t, out.String(), "[====================] 100% (2KB/2KB)")
	require.Equal(t, int64(2048), pbs.ProcessedBytes)
}
