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
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/pnmhead/pkg/netpbm"
	"github.com/ostafen/pnmhead/pkg/pbar"
	"github.com/ostafen/pnmhead/pkg/util/format"
	osutils "github.com/ostafen/pnmhead/pkg/util/os"
	"github.com/spf13/cobra"
)

func DefineExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image_path>",
		Short: "Extract the raw raster data of an image",
		Long: `The 'extract' command strips the header of a binary Netpbm image and writes its raster data,
unchanged, to <output-dir>/<name>.raw. A range of scanlines can be selected with --skip-lines and --lines.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunExtract,
	}

	cmd.Flags().StringP("output-dir", "o", ".", "directory where the raw data file is written")
	cmd.Flags().Int("skip-lines", 0, "number of scanlines to skip")
	cmd.Flags().Int("lines", 0, "number of scanlines to extract (0 extracts up to the last one)")
	cmd.Flags().String("buffer-size", "64KB", "size of the read buffer")
	cmd.Flags().Bool("all-kinds", false, "accept binary PBM and PGM files too")
	cmd.Flags().Bool("progress", false, "show a progress bar")
	return cmd
}

type extractOptions struct {
	OutputDir  string
	SkipLines  int
	Lines      int
	BufferSize int
	AllKinds   bool
	Progress   bool
}

func parseExtractOptions(cmd *cobra.Command) (extractOptions, error) {
	outDir, _ := cmd.Flags().GetString("output-dir")
	skipLines, _ := cmd.Flags().GetInt("skip-lines")
	lines, _ := cmd.Flags().GetInt("lines")
	allKinds, _ := cmd.Flags().GetBool("all-kinds")
	progress, _ := cmd.Flags().GetBool("progress")

	s, _ := cmd.Flags().GetString("buffer-size")
	bufSize, err := format.ParseBytes(s)
	if err != nil {
		return extractOptions{}, fmt.Errorf("invalid --buffer-size: %w", err)
	}
	if bufSize <= 0 {
		return extractOptions{}, fmt.Errorf("invalid --buffer-size: must be positive")
	}

	if skipLines < 0 || lines < 0 {
		return extractOptions{}, fmt.Errorf("--skip-lines and --lines must not be negative")
	}

	return extractOptions{
		OutputDir:  outDir,
		SkipLines:  skipLines,
		Lines:      lines,
		BufferSize: int(bufSize),
		AllKinds:   allKinds,
		Progress:   progress,
	}, nil
}

func RunExtract(cmd *cobra.Command, args []string) error {
	opts, err := parseExtractOptions(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cmd)

	img, err := netpbm.OpenWithOptions(args[0], openOptions(opts.AllKinds, opts.BufferSize))
	if err != nil {
		return err
	}
	defer img.Close()

	if opts.SkipLines > img.Height() {
		return fmt.Errorf("--skip-lines %d exceeds image height %d", opts.SkipLines, img.Height())
	}

	lines := img.Height() - opts.SkipLines
	if opts.Lines > 0 {
		lines = min(lines, opts.Lines)
	}

	if _, err := osutils.EnsureDir(opts.OutputDir, false); err != nil {
		return err
	}

	base := filepath.Base(args[0])
	outPath := filepath.Join(opts.OutputDir, strings.TrimSuffix(base, filepath.Ext(base))+".raw")

	log.Infof("source: %s (%s %dx%d, %d bytes per line)", args[0], img.Kind(), img.Width(), img.Height(), img.BytesPerLine())
	log.Infof("destination: %s", outPath)

	bpl := int64(img.BytesPerLine())
	if skip := int64(opts.SkipLines) * bpl; skip > 0 {
		skipped, err := img.Skip(skip)
		if err != nil {
			return err
		}
		if skipped < skip {
			log.Warnf("raster ends after %d of %d skipped bytes", skipped, skip)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	total := int64(lines) * bpl

	var bar *pbar.ProgressBarState
	if opts.Progress {
		bar = pbar.NewProgressBarState(cmd.ErrOrStderr(), total)
	}

	written, err := copyRaster(out, img, total, opts.BufferSize, bar)
	if bar != nil {
		bar.Finish()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if written < total {
		log.Warnf("raster is truncated: wrote %d of %d bytes", written, total)
	}
	log.Infof("wrote %s to %s", format.FormatBytes(written), outPath)
	return nil
}

func copyRaster(out io.Writer, img *netpbm.Image, total int64, bufSize int, bar *pbar.ProgressBarState) (int64, error) {
	buf := make([]byte, bufSize)

	var written int64
	for written < total {
		chunk := buf[:min(int64(len(buf)), total-written)]

		n, err := img.Fill(chunk)
		if err != nil {
			return written, err
		}

		if _, err := out.Write(chunk[:n]); err != nil {
			return written, err
		}
		written += int64(n)

		if bar != nil {
			bar.Add(int64(n))
		}

		if n < len(chunk) {
			break
		}
	}
	return written, nil
}
