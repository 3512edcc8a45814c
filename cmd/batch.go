package cmd

import (
	"context"
	"fmt"
	"os"

	appbatch "audio-converter/application/batch"
	"audio-converter/application/conversion"
	"audio-converter/domain/audio"
	"audio-converter/domain/dialog"
	"audio-converter/infrastructure/ffmpeg"
	"audio-converter/infrastructure/filesystem"
	"audio-converter/infrastructure/jobfile"
	"audio-converter/infrastructure/prompt"

	"github.com/spf13/cobra"
)

var (
	batchJobsPath      string
	batchPreset        string
	batchNoDefaultTrim bool
	batchPickOutputDir bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every file listed in a job file",
	Long: `Convert a list of files one after another.

The job file is YAML with a list of items. Every item needs a title and an
artist (the title defaults to the source file name, the artist to the
file-level artist). The whole batch is rejected before anything runs if an
item is missing either, or if two items would write the same file.

Items without --start/--end markers are trimmed to the first three minutes
unless --no-default-trim is given. A failed item does not stop the batch, but
the command exits non-zero if any item failed. Failed items are listed
again after the summary.

--pick-output-dir asks for the directory that items without an explicit
output are written to, instead of using the configured one.

Example job file:
  artist: The Band
  format: mp3
  items:
    - source: /videos/set1.mp4
      title: Opening
      start: "00:00:05"
      end: "00:04:00"
    - source: /videos/set2.mp4
      title: Encore
      format: flac

Example:
  audio-converter batch --jobs jobs.yaml
  audio-converter batch --jobs jobs.yaml --preset podcast --no-default-trim
  audio-converter batch --jobs jobs.yaml --pick-output-dir`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchJobsPath, "jobs", "", "Path to the YAML job file (required)")
	batchCmd.Flags().StringVar(&batchPreset, "preset", "", "Named audio preset applied to every item")
	batchCmd.Flags().BoolVar(&batchNoDefaultTrim, "no-default-trim", false, "Convert whole files when an item has no start/end")
	batchCmd.Flags().BoolVar(&batchPickOutputDir, "pick-output-dir", false, "Prompt for the output directory")
	batchCmd.MarkFlagRequired("jobs")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	jobs, err := jobfile.Load(batchJobsPath)
	if err != nil {
		return err
	}

	enc, err := resolveEncoding(cfg, cfgFile, batchPreset, audio.AudioEncodingConfig{})
	if err != nil {
		return err
	}

	toolPath := ffmpeg.Locate(cfg.FFmpeg.Path)
	transcoder := ffmpeg.NewTranscoder(ffmpeg.WithFFmpegPath(toolPath), ffmpeg.WithLogger(logger))
	service := conversion.NewService(transcoder, filesystem.NewChecker(), toolPath, logger)

	var folder dialog.FolderPicker
	if batchPickOutputDir {
		folder = prompt.NewDialogs(DefaultPrompter, filesystem.NewChecker(), os.Stdout)
	}

	return RunBatchWithDependencies(
		cmd.Context(),
		service,
		folder,
		jobs,
		appbatch.Defaults{
			OutputDir:   cfg.Paths.OutputDirectory,
			Audio:       enc,
			DefaultTrim: !batchNoDefaultTrim,
		},
		os.Stdout,
	)
}

// RunBatchWithDependencies runs the batch command with injected dependencies (for testing).
// folder may be nil; when set it replaces defaults.OutputDir.
func RunBatchWithDependencies(
	ctx context.Context,
	converter Converter,
	folder dialog.FolderPicker,
	jobs *jobfile.File,
	defaults appbatch.Defaults,
	output OutputWriter,
) error {
	if folder != nil {
		dir, err := pickOutputDir(folder)
		if err != nil {
			return err
		}
		defaults.OutputDir = dir
	}

	entries := make([]appbatch.Entry, 0, len(jobs.Items))
	for _, item := range jobs.Items {
		entries = append(entries, appbatch.Entry{
			Source: item.Source,
			Title:  item.Title,
			Artist: item.Artist,
			Start:  item.Start,
			End:    item.End,
			Format: item.Format,
			Output: item.Output,
		})
	}

	items, err := appbatch.Plan(entries, defaults)
	if err != nil {
		return fmt.Errorf("batch rejected: %w", err)
	}

	fmt.Fprintf(output, "Converting %d file(s)...\n", len(items))

	var failed []*appbatch.Item
	service := appbatch.NewService(converter, output, logger)
	service.SetUpdateCallback(func(item *appbatch.Item) {
		if item.Status == appbatch.StatusFailed {
			failed = append(failed, item)
		}
	})
	summary := service.Run(ctx, items)

	fmt.Fprintf(output, "\nDone: %d, Failed: %d\n", summary.Done, summary.Failed)

	if len(failed) > 0 {
		fmt.Fprintln(output, "Failed items:")
		for _, item := range failed {
			fmt.Fprintf(output, "  %s: %s\n", item.Request.SourcePath, item.Message)
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", summary.Failed, len(items))
	}
	return nil
}
