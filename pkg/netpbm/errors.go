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
	"errors"
	"os"

	"github.com/ostafen/pnmhead/pkg/reader"
)

var (
	// ErrBadFormat is returned when the header is not a valid Netpbm header.
	ErrBadFormat = errors.New("netpbm: bad file format")

	// ErrUnsupportedType is returned for image kinds the caller did not accept.
	ErrUnsupportedType = errors.New("netpbm: unsupported file type")

	// ErrUnsupportedFormat is returned for files storing samples as ASCII text.
	ErrUnsupportedFormat = errors.New("netpbm: unsupported data format")

	// ErrUnsupportedDepth is returned when samples do not fit in a single byte.
	ErrUnsupportedDepth = errors.New("netpbm: unsupported color depth")

	ErrNotSeekable = reader.ErrNotSeekable
	ErrClosed      = os.ErrClosed
)
