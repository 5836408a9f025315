package netpbm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormats(t *testing.T) {
	formats := Formats()
	require.Len(t, formats, 6)

	for _, f := range formats {
		got, ok := lookupMagic(f.Magic)
		require.True(t, ok, f.Magic)
		require.Equal(t, f, got)

		hdr, err := ParseHeader(strings.NewReader(f.Magic + " 1 1 1\n"))
		require.NoError(t, err)
		require.Equal(t, f.Kind, hdr.Kind)
		require.Equal(t, f.Encoding, hdr.Encoding)
	}

	// the returned slice is a copy
	formats[0].Magic = "XX"
	require.Equal(t, "P1", Formats()[0].Magic)
}

func TestSniff(t *testing.T) {
	require.True(t, Sniff([]byte("P6\n4 3\n255\n")))
	require.True(t, Sniff([]byte("P1 4 3")))
	require.True(t, Sniff([]byte("P5#comment\n")))
	require.True(t, Sniff([]byte("P4")))

	require.False(t, Sniff(nil))
	require.False(t, Sniff([]byte("P")))
	require.False(t, Sniff([]byte("P7\n")))
	require.False(t, Sniff([]byte("P66")))
	require.False(t, Sniff([]byte("BM")))
}

func TestKindStrings(t *testing.T) {
	require.Equal(t, "PPM", Pixmap.String())
	require.Equal(t, "pgm", Graymap.Ext())
	require.Equal(t, "UNKNOWN", Kind(0).String())
	require.Equal(t, "binary", Binary.String())
	require.Equal(t, "ascii", ASCII.String())
}
