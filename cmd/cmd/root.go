package cmd

import (
	"github.com/ostafen/pnmhead/internal/env"
	"github.com/ostafen/pnmhead/internal/logger"
	"github.com/ostafen/pnmhead/pkg/netpbm"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - inspect Netpbm image headers and raster data",
	}
	rootCmd.PersistentFlags().String("log-level", "INFO", "log level: DEBUG, INFO, WARN or ERROR")

	rootCmd.AddCommand(
		DefineInfoCommand(),
		DefineFormatsCommand(),
		DefineExtractCommand(),
		DefineVersionCommand(),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}

func newLogger(cmd *cobra.Command) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(cmd.ErrOrStderr(), logger.ParseLevel(level)).With(cmd.Name())
}

// openOptions returns the options shared by commands which stream raster data.
func openOptions(allKinds bool, bufSize int) netpbm.Options {
	opts := netpbm.Options{BufferSize: bufSize}
	if allKinds {
		opts.Kinds = []netpbm.Kind{netpbm.Bitmap, netpbm.Graymap, netpbm.Pixmap}
	}
	return opts
}
