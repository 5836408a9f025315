package netpbm

import (
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	pnm "github.com/jbuchbinder/gopnm"
	"github.com/stretchr/testify/require"
)

// TestOpenEncodedPixmap opens files produced by an independent encoder.
func TestOpenEncodedPixmap(t *testing.T) {
	sizes := [][2]int{{1, 1}, {4, 3}, {17, 9}, {64, 48}}

	for _, sz := range sizes {
		w, h := sz[0], sz[1]

		src := image.NewRGBA(image.Rect(0, 0, w, h))
		want := make([]byte, 0, 3*w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.RGBA{R: uint8(rand.Intn(256)), G: uint8(rand.Intn(256)), B: uint8(rand.Intn(256)), A: 0xff}
				src.SetRGBA(x, y, c)
				want = append(want, c.R, c.G, c.B)
			}
		}

		path := filepath.Join(t.TempDir(), "encoded.ppm")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, pnm.Encode(f, src, pnm.PPM))
		require.NoError(t, f.Close())

		info, err := os.Stat(path)
		require.NoError(t, err)

		img, err := Open(path)
		require.NoError(t, err)

		hdr := img.Header()
		require.Equal(t, Pixmap, hdr.Kind)
		require.Equal(t, Binary, hdr.Encoding)
		require.Equal(t, w, img.Width())
		require.Equal(t, h, img.Height())
		require.Equal(t, 3*w, img.BytesPerLine())
		require.Equal(t, info.Size(), hdr.Offset+hdr.DataSize())

		got := make([]byte, len(want)+1)
		n, err := img.Fill(got)
		require.NoError(t, err)
		require.Equal(t, want, got[:n])

		require.NoError(t, img.Close())
	}
}
