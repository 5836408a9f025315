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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ostafen/pnmhead/internal/logger"
	"github.com/ostafen/pnmhead/pkg/netpbm"
	"github.com/ostafen/pnmhead/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <path>...",
		Short: "Print the geometry of Netpbm images",
		Long: `The 'info' command parses the header of each given image and prints its geometry:
kind, sample encoding, width, height, max sample value, bytes per scanline, header size and raster size.
By default only binary PPM files with at most 8 bits per sample are accepted; --all-kinds accepts binary PBM and PGM too,
while --header-only reports any Netpbm header, whatever its encoding or depth.
Directories are scanned with --recursive, keeping only files which start with a Netpbm magic number.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunInfo,
	}

	cmd.Flags().BoolP("recursive", "r", false, "scan directories recursively")
	cmd.Flags().Bool("all-kinds", false, "accept binary PBM and PGM files too")
	cmd.Flags().Bool("header-only", false, "report any Netpbm header without checking that its raster can be streamed")
	return cmd
}

func RunInfo(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	allKinds, _ := cmd.Flags().GetBool("all-kinds")
	headerOnly, _ := cmd.Flags().GetBool("header-only")

	log := newLogger(cmd)

	paths, err := listImages(log, args, recursive)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tTYPE\tENCODING\tWIDTH\tHEIGHT\tMAXVAL\tBPL\tHEADER\tDATA")

	failed := 0
	for _, path := range paths {
		hdr, err := readHeader(path, allKinds, headerOnly)
		if err != nil {
			log.Errorf("%s", err)
			failed++
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			path,
			hdr.Kind,
			hdr.Encoding,
			hdr.Width,
			hdr.Height,
			hdr.MaxValue,
			hdr.BytesPerLine(),
			format.FormatBytes(hdr.Offset),
			format.FormatBytes(hdr.DataSize()),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(paths))
	}
	return nil
}

func readHeader(path string, allKinds, headerOnly bool) (netpbm.Header, error) {
	if headerOnly {
		hdr, err := netpbm.ReadHeaderFile(path)
		if err != nil {
			return netpbm.Header{}, fmt.Errorf("%s: %w", path, err)
		}
		return hdr, nil
	}

	img, err := netpbm.OpenWithOptions(path, openOptions(allKinds, 0))
	if err != nil {
		return netpbm.Header{}, err
	}
	defer img.Close()

	return img.Header(), nil
}

// listImages expands paths: files are added directly, while directories
// are walked recursively keeping only files starting with a Netpbm magic number.
func listImages(log *logger.Logger, paths []string, recursive bool) ([]string, error) {
	var images []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			images = append(images, p)
			continue
		}

		if !recursive {
			return nil, fmt.Errorf("%s is a directory (use --recursive to scan it)", p)
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}

			ok, err := sniffFile(path)
			if err != nil {
				log.Warnf("unable to read %s: %s", path, err)
				return nil
			}

			if !ok {
				log.Debugf("skipping %s: not a Netpbm file", path)
				return nil
			}
			images = append(images, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return images, nil
}

func sniffFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var prefix [3]byte
	n, err := io.ReadFull(f, prefix[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return netpbm.Sniff(prefix[:n]), nil
}
