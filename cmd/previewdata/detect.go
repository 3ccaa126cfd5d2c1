package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SweIsHere/previewData/chorus"
)

var (
	detectOutput   string
	detectDuration float64
)

func init() {
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "", "output WAV path (default: <input>_preview.wav)")
	detectCmd.Flags().Float64VarP(&detectDuration, "duration", "d", 30, "target preview duration in seconds")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <audio file>",
	Short: "Extract the chorus preview of a single song",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]

		output := detectOutput
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + "_preview.wav"
		}

		config := chorus.DefaultConfig()
		config.TargetDuration = detectDuration

		detector := chorus.NewDetector(config, nil)
		result := detector.Detect(input, output)

		if !result.Success {
			fmt.Fprintf(os.Stderr, "detection failed: %s\n", result.Error)
			os.Exit(1)
		}

		fmt.Printf("chorus: %.2fs - %.2fs (%.2fs, score %.3f, %d repetitions)\n",
			result.StartS, result.EndS, result.DurationS, result.Score, result.Repetitions)
		fmt.Printf("preview written to %s\n", result.OutputPath)
	},
}
