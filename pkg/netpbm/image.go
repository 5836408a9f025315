// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package netpbm

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/ostafen/pnmhead/pkg/reader"
)

const (
	DefaultBufferSize = 8 * 1024

	// MaxSupportedValue is the largest sample value that fits in one byte.
	MaxSupportedValue = 255

	skipChunkSize = 512
)

type Options struct {
	// Kinds lists the image kinds accepted by Open. Only Pixmap is accepted when empty.
	Kinds []Kind

	// BufferSize is the size of the buffer used to read the file.
	BufferSize int
}

func (opts Options) accepts(k Kind) bool {
	if len(opts.Kinds) == 0 {
		return k == Pixmap
	}
	return slices.Contains(opts.Kinds, k)
}

// Image is an open Netpbm file whose stream is positioned on raster data.
// An Image must not be used concurrently.
type Image struct {
	hdr          Header
	bytesPerLine int

	r      *reader.Reader
	closer io.Closer
}

// Open opens a binary PPM file with at most 8 bits per sample.
func Open(path string) (*Image, error) {
	return OpenWithOptions(path, Options{})
}

func OpenWithOptions(path string, opts Options) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	adviseSequential(f)

	img, err := NewImage(f, opts)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	img.closer = f
	return img, nil
}

// NewImage reads the header from r, starting at its current position, and
// returns an Image positioned on the first byte of raster data.
// Closing the Image does not close r.
func NewImage(r io.Reader, opts Options) (*Image, error) {
	bufSize := opts.BufferSize
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	br := reader.NewReader(r, bufSize)

	hdr, err := ParseHeader(br)
	if err != nil {
		return nil, err
	}

	if err := validate(hdr, opts); err != nil {
		return nil, err
	}

	return &Image{
		hdr:          hdr,
		bytesPerLine: hdr.BytesPerLine(),
		r:            br,
	}, nil
}

func validate(hdr Header, opts Options) error {
	if !opts.accepts(hdr.Kind) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, hdr.Kind)
	}

	if hdr.Encoding != Binary {
		return fmt.Errorf("%w: %s samples", ErrUnsupportedFormat, hdr.Encoding)
	}

	if hdr.MaxValue > MaxSupportedValue {
		return fmt.Errorf("%w: max value %d", ErrUnsupportedDepth, hdr.MaxValue)
	}

	if hdr.Width == 0 || hdr.Height == 0 || hdr.MaxValue == 0 {
		return fmt.Errorf("%w: empty geometry %dx%d, max value %d", ErrBadFormat, hdr.Width, hdr.Height, hdr.MaxValue)
	}
	return nil
}

func (img *Image) Header() Header    { return img.hdr }
func (img *Image) Kind() Kind        { return img.hdr.Kind }
func (img *Image) Width() int        { return img.hdr.Width }
func (img *Image) Height() int       { return img.hdr.Height }
func (img *Image) MaxValue() int     { return img.hdr.MaxValue }
func (img *Image) BytesPerLine() int { return img.bytesPerLine }

// Offset returns the position of the stream, counted from the first byte
// of the header.
func (img *Image) Offset() int64 {
	if img.r == nil {
		return -1
	}
	return img.r.Offset()
}

// Skip discards up to count bytes. Bytes already buffered are dropped first,
// then the stream is consumed in small chunks. The returned value is lower
// than count only when the end of the stream is reached.
func (img *Image) Skip(count int64) (int64, error) {
	if img.r == nil {
		return 0, ErrClosed
	}
	if count <= 0 {
		return 0, nil
	}

	d, err := img.r.Discard(int(min(count, int64(img.r.Buffered()))))
	skipped := int64(d)
	if err != nil {
		return skipped, err
	}

	if skipped < count {
		var chunk [skipChunkSize]byte
		for skipped < count {
			n, err := img.r.Read(chunk[:min(int64(len(chunk)), count-skipped)])
			skipped += int64(n)
			if err == io.EOF {
				break
			}
			if err != nil {
				return skipped, err
			}
		}
	}
	return skipped, nil
}

// Fill reads until p is full or the end of the stream is reached, and returns
// the number of bytes read. A short count is not an error: only failures of
// the underlying stream are reported.
func (img *Image) Fill(p []byte) (int, error) {
	if img.r == nil {
		return 0, ErrClosed
	}

	count := 0
	for count < len(p) {
		n, err := img.r.Read(p[count:])
		count += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
	}
	return count, nil
}

// Read implements io.Reader over the raster data.
func (img *Image) Read(p []byte) (int, error) {
	if img.r == nil {
		return 0, ErrClosed
	}
	return img.r.Read(p)
}

// ReadLine fills p with the next scanline. p must hold at least BytesPerLine bytes.
func (img *Image) ReadLine(p []byte) (int, error) {
	if len(p) < img.bytesPerLine {
		return 0, fmt.Errorf("buffer too small for a scanline: %d < %d", len(p), img.bytesPerLine)
	}
	return img.Fill(p[:img.bytesPerLine])
}

// SeekLine positions the stream at the beginning of scanline y.
// y == Height() moves to the end of the raster.
func (img *Image) SeekLine(y int) error {
	if img.r == nil {
		return ErrClosed
	}
	if y < 0 || y > img.hdr.Height {
		return fmt.Errorf("scanline %d out of range [0, %d]", y, img.hdr.Height)
	}
	_, err := img.r.Seek(img.hdr.Offset+int64(y)*int64(img.bytesPerLine), io.SeekStart)
	return err
}

func (img *Image) Close() error {
	if img.r == nil {
		return ErrClosed
	}
	img.r = nil

	if img.closer == nil {
		return nil
	}
	return img.closer.Close()
}
