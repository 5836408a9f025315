package netpbm

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  Header
	}

	cases := []testCase{
		{
			name:  "ppm",
			input: "P6\n4 3\n255\n",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 4, Height: 3, MaxValue: 255, Offset: 11},
		},
		{
			name:  "comment before width",
			input: "P6\n# comment\n4 3\n255\n",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 4, Height: 3, MaxValue: 255, Offset: 21},
		},
		{
			name:  "comment terminates field",
			input: "P6\n4#c\n3 255\n",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 4, Height: 3, MaxValue: 255, Offset: 13},
		},
		{
			name:  "leading comments and blanks",
			input: "# a\n#b\n  \tP6 1 1 255\n",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 1, Height: 1, MaxValue: 255, Offset: 21},
		},
		{
			name:  "consecutive comments",
			input: "P6 # one\n# two\n\n2 2 255 ",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 2, Height: 2, MaxValue: 255, Offset: 24},
		},
		{
			name:  "all whitespace kinds",
			input: "P6\f1\v1\t255\r",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 1, Height: 1, MaxValue: 255, Offset: 11},
		},
		{
			name:  "crlf stops at carriage return",
			input: "P6\r\n4 3\r\n255\r\n",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 4, Height: 3, MaxValue: 255, Offset: 13},
		},
		{
			name:  "comment runs to end of stream",
			input: "P6 4 3 255#end",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 4, Height: 3, MaxValue: 255, Offset: 14},
		},
		{
			name:  "max value at end of stream",
			input: "P6 4 3 255",
			want:  Header{Kind: Pixmap, Encoding: Binary, Width: 4, Height: 3, MaxValue: 255, Offset: 10},
		},
		{
			name:  "plain bitmap has no max value",
			input: "P1\n4 3\n1 0 1 0\n",
			want:  Header{Kind: Bitmap, Encoding: ASCII, Width: 4, Height: 3, MaxValue: 1, Offset: 7},
		},
		{
			name:  "raw bitmap",
			input: "P4\n10 2\n\xff\x00\xff\x00",
			want:  Header{Kind: Bitmap, Encoding: Binary, Width: 10, Height: 2, MaxValue: 1, Offset: 8},
		},
		{
			name:  "plain graymap",
			input: "P2 2 2 15\n0 1\n2 3\n",
			want:  Header{Kind: Graymap, Encoding: ASCII, Width: 2, Height: 2, MaxValue: 15, Offset: 10},
		},
		{
			name:  "deep graymap",
			input: "P5 2 2 65535 ",
			want:  Header{Kind: Graymap, Encoding: Binary, Width: 2, Height: 2, MaxValue: 65535, Offset: 13},
		},
		{
			name:  "plain pixmap",
			input: "P3 1 1 255\n255 0 0\n",
			want:  Header{Kind: Pixmap, Encoding: ASCII, Width: 1, Height: 1, MaxValue: 255, Offset: 11},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hdr, err := ParseHeader(bytes.NewReader([]byte(tc.input)))
			require.NoError(t, err)
			require.Equal(t, tc.want, hdr)
		})
	}
}

func TestParseHeaderBadFormat(t *testing.T) {
	inputs := map[string]string{
		"empty":             "",
		"only blanks":       " \n\t",
		"only comment":      "# P6 4 3 255",
		"short magic":       "P 4 3 255\n",
		"long magic":        "P66 4 3 255\n",
		"wrong letter":      "Q6 4 3 255\n",
		"lowercase":         "p6 4 3 255\n",
		"digit zero":        "P0 4 3 255\n",
		"digit seven":       "P7 4 3 255\n",
		"missing max value": "P6\n4 3\n",
		"missing height":    "P4 4",
		"text width":        "P6 four 3 255\n",
		"negative height":   "P6 4 -3 255\n",
		"trailing garbage":  "P6 4x 3 255\n",
		"overflow":          "P6 4 3 99999999999\n",
		"long magic run":    strings.Repeat("P", 100) + " 4 3 255\n",
		"padded width":      "P6 " + strings.Repeat("0", 40) + "4 3 255\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHeader(bytes.NewReader([]byte(input)))
			require.ErrorIs(t, err, ErrBadFormat)
		})
	}
}

func TestParseHeaderLongField(t *testing.T) {
	input := append([]byte("P6 "), bytes.Repeat([]byte{'9'}, 1<<20)...)
	r := bytes.NewReader(input)

	_, err := ParseHeader(r)
	require.ErrorIs(t, err, ErrBadFormat)

	consumed := len(input) - r.Len()
	require.LessOrEqual(t, consumed, len("P6 ")+maxFieldLen+1)
}

func TestParseHeaderReadError(t *testing.T) {
	errBroken := errors.New("broken device")

	r := bufio.NewReader(io.MultiReader(
		strings.NewReader("P6 4"),
		iotest.ErrReader(errBroken),
	))

	_, err := ParseHeader(r)
	require.ErrorIs(t, err, errBroken)
	require.NotErrorIs(t, err, ErrBadFormat)
}

func TestParseHeaderLeavesRasterUnread(t *testing.T) {
	raster := []byte{'#', ' ', '\n', 0x00, 0xff}
	input := append([]byte("P6\n# made by hand\n1 1\n255\n"), raster...)

	r := bytes.NewReader(input)
	hdr, err := ParseHeader(r)
	require.NoError(t, err)
	require.Equal(t, int64(len(input)-len(raster)), hdr.Offset)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, raster, rest)
}

func TestBytesPerLine(t *testing.T) {
	require.Equal(t, 1, Header{Kind: Bitmap, Width: 1}.BytesPerLine())
	require.Equal(t, 1, Header{Kind: Bitmap, Width: 8}.BytesPerLine())
	require.Equal(t, 2, Header{Kind: Bitmap, Width: 9}.BytesPerLine())
	require.Equal(t, 9, Header{Kind: Graymap, Width: 9}.BytesPerLine())
	require.Equal(t, 27, Header{Kind: Pixmap, Width: 9}.BytesPerLine())

	require.Equal(t, int64(36), Header{Kind: Pixmap, Width: 4, Height: 3}.DataSize())
}

func TestReadHeaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.pgm")
	require.NoError(t, os.WriteFile(path, []byte("P5\n# gray\n3 2\n200\n\x01\x02\x03\x04\x05\x06"), 0644))

	hdr, err := ReadHeaderFile(path)
	require.NoError(t, err)
	require.Equal(t, Header{Kind: Graymap, Encoding: Binary, Width: 3, Height: 2, MaxValue: 200, Offset: 18}, hdr)

	_, err = ReadHeaderFile(filepath.Join(t.TempDir(), "missing.ppm"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
