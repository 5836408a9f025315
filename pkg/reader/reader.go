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
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var ErrNotSeekable = errors.New("underlying stream is not seekable")

// Reader is a buffered reader which keeps track of the offset of the next
// byte it will return, counted from the position src had when the Reader
// was created.
type Reader struct {
	src    io.Reader
	seeker io.Seeker // nil when src cannot seek
	r      *bufio.Reader
	base   int64 // position of src when the Reader was created
	n      int64 // offset of the next unread byte, relative to base
}

func NewReader(src io.Reader, bufSize int) *Reader {
	r := &Reader{
		src: src,
		r:   bufio.NewReaderSize(src, bufSize),
	}

	if seeker, ok := src.(io.Seeker); ok {
		if base, err := seeker.Seek(0, io.SeekCurrent); err == nil {
			r.seeker = seeker
			r.base = base
		}
	}
	return r
}

func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err == nil {
		r.n++
	}
	return b, err
}

// Read performs at most one read on the underlying stream,
// so it may return fewer bytes than len(buf) even before io.EOF.
func (r *Reader) Read(buf []byte) (int, error) {
	n, err := r.r.Read(buf)
	if n > 0 {
		r.n += int64(n)
	}
	return n, err
}

// Buffered returns the number of bytes that can be consumed without
// touching the underlying stream.
func (r *Reader) Buffered() int {
	return r.r.Buffered()
}

// Discard skips the next n bytes. If fewer than n bytes are discarded,
// an error explaining why is returned as well.
func (r *Reader) Discard(n int) (int, error) {
	d, err := r.r.Discard(n)
	r.n += int64(d)
	return d, err
}

func (r *Reader) Offset() int64 {
	return r.n
}

// Seek implements io.Seeker. Offsets are relative to the position the
// source had when the Reader was created. Forward moves which land inside
// the buffered data never touch the underlying stream.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.n
	case io.SeekEnd:
		return r.seekEnd(offset)
	default:
		return -1, fmt.Errorf("Reader.Seek: invalid whence: %d", whence)
	}

	if offset < 0 {
		return -1, fmt.Errorf("Reader.Seek: negative position %d", offset)
	}

	if offset >= r.n && offset-r.n <= int64(r.r.Buffered()) {
		_, err := r.Discard(int(offset - r.n))
		return r.n, err
	}

	if r.seeker == nil {
		return -1, ErrNotSeekable
	}

	abs, err := r.seeker.Seek(r.base+offset, io.SeekStart)
	if err != nil {
		return -1, err
	}
	r.reset(abs)
	return r.n, nil
}

func (r *Reader) seekEnd(offset int64) (int64, error) {
	if r.seeker == nil {
		return -1, ErrNotSeekable
	}

	abs, err := r.seeker.Seek(offset, io.SeekEnd)
	if err != nil {
		return -1, err
	}
	if abs < r.base {
		return -1, fmt.Errorf("Reader.Seek: position %d is before the start of the stream", abs)
	}
	r.reset(abs)
	return r.n, nil
}

// reset drops any buffered data after the source moved to abs.
func (r *Reader) reset(abs int64) {
	r.r.Reset(r.src)
	r.n = abs - r.base
}
