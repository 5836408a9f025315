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
)

// maxFieldLen bounds the length of a header field. Valid fields are a
// 2 byte magic number or a 31 bit decimal number.
const maxFieldLen = 32

// tokenizer splits the header into whitespace separated fields,
// dropping '#' comments, and counts every byte it consumes.
type tokenizer struct {
	r      io.ByteReader
	offset int64
	buf    []byte
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func (t *tokenizer) readByte() (byte, error) {
	c, err := t.r.ReadByte()
	if err != nil {
		return 0, err
	}
	t.offset++
	return c, nil
}

// skipComment consumes bytes up to and including the next newline.
// Hitting the end of the stream inside a comment is not an error.
func (t *tokenizer) skipComment() error {
	for {
		c, err := t.readByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if c == '\n' {
			return nil
		}
	}
}

// nextNonBlank returns the first byte which is neither whitespace
// nor part of a comment.
func (t *tokenizer) nextNonBlank() (byte, error) {
	for {
		c, err := t.readByte()
		for err == nil && c == '#' {
			if err = t.skipComment(); err == nil {
				c, err = t.readByte()
			}
		}
		if err != nil {
			return 0, err
		}
		if !isSpace(c) {
			return c, nil
		}
	}
}

// field returns the next header field. The whitespace byte terminating the
// field is consumed. A field cut short by the end of the stream is returned
// as is, possibly empty. Fields longer than maxFieldLen are rejected
// without reading the rest of them.
func (t *tokenizer) field() (string, error) {
	t.buf = t.buf[:0]

	c, err := t.nextNonBlank()
	for err == nil {
		if len(t.buf) == maxFieldLen {
			return "", fmt.Errorf("%w: header field longer than %d bytes", ErrBadFormat, maxFieldLen)
		}
		t.buf = append(t.buf, c)

		c, err = t.readByte()
		if err != nil || isSpace(c) {
			break
		}
		if c == '#' {
			err = t.skipComment()
			break
		}
	}

	if err != nil && err != io.EOF {
		return "", err
	}
	return string(t.buf), nil
}
