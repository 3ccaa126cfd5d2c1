package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SweIsHere/previewData/dataset"
	"github.com/SweIsHere/previewData/logging"
)

var datasetConfigFile string

func init() {
	datasetCmd.Flags().StringVarP(&datasetConfigFile, "config", "c", "", "run config file (yaml)")
	rootCmd.AddCommand(datasetCmd)
}

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Extract previews for a whole CSV dataset of tracks",
	Long: `Reads a CSV of track/artist rows, downloads each song with the
configured acquisition tool, extracts its chorus preview, and keeps a
resumable checkpoint so an interrupted run continues where it left off.`,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadRunConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		driver := dataset.NewDriver(config, nil, logging.GetGlobalLogger())
		if err := driver.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "dataset run: %v\n", err)
			os.Exit(1)
		}
	},
}

// loadRunConfig merges the optional config file over the defaults
func loadRunConfig() (*dataset.RunConfig, error) {
	config := dataset.DefaultRunConfig()

	v := viper.New()
	v.SetDefault("csv_path", config.CSVPath)
	v.SetDefault("output_dir", config.OutputDir)
	v.SetDefault("work_dir", config.WorkDir)
	v.SetDefault("checkpoint_path", config.CheckpointPath)
	v.SetDefault("tool", config.Tool)
	v.SetDefault("fetch_timeout", config.FetchTimeout)
	v.SetDefault("track_column", config.TrackColumn)
	v.SetDefault("artist_column", config.ArtistColumn)

	if datasetConfigFile != "" {
		v.SetConfigFile(datasetConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}
