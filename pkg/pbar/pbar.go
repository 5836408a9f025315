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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ostafen/pnmhead/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// ProgressBarState holds all the data needed to render the progress bar
type ProgressBarState struct {
	out                io.Writer
	TotalBytes         int64
	ProcessedBytes     int64
	StartTime          time.Time
	LastUpdateTime     time.Time
	LastProcessedBytes int64
}

// NewProgressBarState initializes a new ProgressBarState
func NewProgressBarState(out io.Writer, totalBytes int64) *ProgressBarState {
	now := time.Now()
	return &ProgressBarState{
		out:            out,
		TotalBytes:     totalBytes,
		StartTime:      now,
		LastUpdateTime: now,
	}
}

func (pbs *ProgressBarState) Add(n int64) {
	pbs.ProcessedBytes += n
	pbs.Render(false)
}

// Render updates and prints the progress bar line
func (pbs *ProgressBarState) Render(force bool) {
	if !force && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}

	percentage := 100.0
	if pbs.TotalBytes > 0 {
		percentage = min(float64(pbs.ProcessedBytes)/float64(pbs.TotalBytes)*100, 100)
	}

	filledLen := int(float64(barLength) * percentage / 100)
	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	var speedMBps float64
	if elapsed := time.Since(pbs.LastUpdateTime).Seconds(); elapsed > 0 {
		speedMBps = float64(pbs.ProcessedBytes-pbs.LastProcessedBytes) / elapsed / format.MB
	}

	pbs.LastUpdateTime = time.Now()
	pbs.LastProcessedBytes = pbs.ProcessedBytes

	// \r rewrites the current line; trailing spaces clear leftovers of a longer line
	fmt.Fprintf(pbs.out, "\r[INFO] Progress: [%s] %3.0f%% (%s/%s) @ %.2fMB/s    ",
		bar,
		percentage,
		format.FormatBytes(pbs.ProcessedBytes),
		format.FormatBytes(pbs.TotalBytes),
		speedMBps,
	)
}

// Finish renders the final state and moves to the next line.
func (pbs *ProgressBarState) Finish() {
	pbs.Render(true)
	fmt.Fprintln(pbs.out)
}
