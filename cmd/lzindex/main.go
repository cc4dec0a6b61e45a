// Command lzindex builds and inspects block indexes for lzop-compressed
// files, so that tools splitting those files across parallel workers can
// align slice boundaries to block starts.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/splitstream/lzindex"
	"github.com/splitstream/lzindex/codec/lzop"
	"github.com/splitstream/lzindex/storage/disk"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	root := &cobra.Command{
		Use:           "lzindex",
		Short:         "Block index utilities for splittable lzop files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildCmd(), dumpCmd())
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var (
		jobs  int
		force bool
	)
	cmd := &cobra.Command{
		Use:   "build <file>...",
		Short: "Index lzop files so they can be split for parallel decompression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []lzindex.BuildOption{lzindex.BuildWithJobs(jobs)}
			if force {
				opts = append(opts, lzindex.BuildWithForce())
			}
			if err := lzindex.BuildAll(cmd.Context(), disk.New(), lzop.New(), args, opts...); err != nil {
				return err
			}
			log.Info().Int("files", len(args)).Msg("indexing complete")
			return nil
		},
	}
	cmd.Flags().IntVar(&jobs, "jobs", runtime.GOMAXPROCS(0), "maximum number of files indexed concurrently")
	cmd.Flags().BoolVar(&force, "force", false, "reindex files that already have an index")
	return cmd
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the recorded block offsets for an indexed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := lzindex.Load(cmd.Context(), disk.New(), args[0])
			if err != nil {
				return err
			}
			if idx.IsEmpty() {
				log.Warn().Str("file", args[0]).Msg("no index found")
				return nil
			}
			for pos := range idx.Positions() {
				fmt.Fprintln(cmd.OutOrStdout(), pos)
			}
			return nil
		},
	}
}
