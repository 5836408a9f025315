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
	"text/tabwriter"

	"github.com/ostafen/pnmhead/pkg/netpbm"
	"github.com/spf13/cobra"
)

func DefineFormatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List all recognized Netpbm magic numbers",
		Long: `The 'formats' command displays a table of the Netpbm magic numbers recognized by the header parser.
Each entry shows the image kind, the sample encoding and whether raster data can be streamed by default.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFormats,
	}
	return cmd
}

func RunFormats(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MAGIC\tEXT\tENCODING\tSTREAMABLE\tDESC")

	for _, f := range netpbm.Formats() {
		streamable := "no"
		if f.Encoding == netpbm.Binary {
			streamable = "with --all-kinds"
			if f.Kind == netpbm.Pixmap {
				streamable = "yes"
			}
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.Magic,
			f.Kind.Ext(),
			f.Encoding,
			streamable,
			f.Description,
		)
	}
	return w.Flush()
}
