package main

import (
	"github.com/spf13/cobra"

	"github.com/SweIsHere/previewData/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "previewdata",
	Short: "Chorus-based song preview extraction",
	Long: `previewdata locates the most chorus-like section of a song and
extracts it as a 30-second preview clip, either for a single file or
across a whole CSV dataset of tracks.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
