package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"audio-converter/application/batch"
	"audio-converter/application/conversion"
	"audio-converter/domain/audio"
	"audio-converter/domain/dialog"
	"audio-converter/infrastructure/config"
	"audio-converter/infrastructure/ffmpeg"
	"audio-converter/infrastructure/filesystem"
	"audio-converter/infrastructure/prompt"
	"audio-converter/infrastructure/tags"

	"github.com/spf13/cobra"
)

var (
	convertSource         string
	convertOutput         string
	convertOutputFilename string
	convertTitle          string
	convertArtist         string
	convertStart          string
	convertEnd            string
	convertFormat         string
	convertBitrate        string
	convertSampleRate     string
	convertChannels       int
	convertPreset         string
	convertInteractive    bool
	convertPickOutput     bool
	convertPickOutputDir  bool
	convertVerify         bool
	convertCheck          bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Extract audio from a video or audio file",
	Long: `Extract the audio track of a source file, optionally trimmed, tagged with a
title and artist, and encoded as mp3, aac or flac. Any other format (wav
included) copies the source stream without re-encoding.

--end is a DURATION measured from --start, not an end timestamp:
"--start 00:01:00 --end 00:03:00" writes three minutes starting at 1:00.

Without --output the file is written to <output_directory>/<title>.<format>
when an output directory is configured, else next to the source.
--pick-output-dir asks for that directory instead of using the configured one.

Examples:
  audio-converter convert --source concert.mp4 --title "Encore" --artist "The Band"
  audio-converter convert --source talk.mkv --format flac --start 00:10:00 --end 00:05:00
  audio-converter convert --preset podcast --source episode.mp4 --output /music/ep1.mp3
  audio-converter convert --interactive --pick-output
  audio-converter convert --source concert.mp4 --title "Encore" --pick-output-dir
  audio-converter convert --check`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertSource, "source", "", "Path to the source video or audio file")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "Output file path (overrides --output-filename)")
	convertCmd.Flags().StringVar(&convertOutputFilename, "output-filename", "", "Fallback output filename (defaults to the source with .mp3)")
	convertCmd.Flags().StringVar(&convertTitle, "title", "", "Title tag written to the output")
	convertCmd.Flags().StringVar(&convertArtist, "artist", "", "Artist tag written to the output")
	convertCmd.Flags().StringVar(&convertStart, "start", "", "Seek offset into the source (e.g. 00:01:30)")
	convertCmd.Flags().StringVar(&convertEnd, "end", "", "Duration to keep from --start (e.g. 00:03:00), not an end timestamp")
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Output format: mp3, aac, flac, or anything else for stream copy")
	convertCmd.Flags().StringVar(&convertBitrate, "bitrate", "", "Audio bitrate (e.g. 320k)")
	convertCmd.Flags().StringVar(&convertSampleRate, "sample-rate", "", "Sample rate in Hz (e.g. 44100)")
	convertCmd.Flags().IntVar(&convertChannels, "channels", 0, "Number of audio channels")
	convertCmd.Flags().StringVar(&convertPreset, "preset", "", "Named audio preset from the config file")
	convertCmd.Flags().BoolVar(&convertInteractive, "interactive", false, "Prompt for the source file and show the result in a dialog")
	convertCmd.Flags().BoolVar(&convertPickOutput, "pick-output", false, "Prompt for the output path")
	convertCmd.Flags().BoolVar(&convertPickOutputDir, "pick-output-dir", false, "Prompt for the output directory")
	convertCmd.Flags().BoolVar(&convertVerify, "verify", false, "Read the written tags back and warn on a mismatch")
	convertCmd.Flags().BoolVar(&convertCheck, "check", false, "Print the ffmpeg version and exit unless a source is given")
}

// Converter runs a single conversion
type Converter interface {
	Convert(ctx context.Context, req audio.ConversionRequest) audio.Outcome
}

// TagReader reads tags back from a written file
type TagReader interface {
	Read(path string) (*tags.Info, error)
}

// VersionChecker reports the installed transcoder version
type VersionChecker interface {
	Version(ctx context.Context) (string, error)
}

// ConvertDialogs groups the pickers and notifier used by convert.
// Any of them may be nil when the matching flag is not set.
type ConvertDialogs struct {
	Files    dialog.FilePicker
	Folder   dialog.FolderPicker
	Save     dialog.SavePicker
	Notifier dialog.Notifier
}

// ConvertInput holds the user's choices for a single conversion
type ConvertInput struct {
	Source         string
	Output         string
	OutputFilename string
	OutputDir      string
	Title          string
	Artist         string
	Start          string
	End            string
	Audio          audio.AudioEncodingConfig
	Interactive    bool
	PickOutput     bool
	PickOutputDir  bool
	Verify         bool
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	toolPath := ffmpeg.Locate(cfg.FFmpeg.Path)
	transcoder := ffmpeg.NewTranscoder(ffmpeg.WithFFmpegPath(toolPath), ffmpeg.WithLogger(logger))

	if convertCheck {
		if err := RunCheckWithDependencies(cmd.Context(), transcoder, os.Stdout); err != nil {
			return err
		}
		if convertSource == "" && !convertInteractive {
			return nil
		}
	}

	enc, err := resolveEncoding(cfg, cfgFile, convertPreset, audio.AudioEncodingConfig{
		Format:     convertFormat,
		Bitrate:    convertBitrate,
		SampleRate: convertSampleRate,
		Channels:   convertChannels,
	})
	if err != nil {
		return err
	}

	var dialogs ConvertDialogs
	if convertInteractive || convertPickOutput || convertPickOutputDir {
		d := prompt.NewDialogs(DefaultPrompter, filesystem.NewChecker(), os.Stdout)
		dialogs = ConvertDialogs{Files: d, Folder: d, Save: d}
		if convertInteractive {
			dialogs.Notifier = d
		}
	}

	service := conversion.NewService(transcoder, filesystem.NewChecker(), toolPath, logger)

	return RunConvertWithDependencies(
		cmd.Context(),
		service,
		dialogs,
		tags.NewReader(),
		ConvertInput{
			Source:         convertSource,
			Output:         convertOutput,
			OutputFilename: convertOutputFilename,
			OutputDir:      cfg.Paths.OutputDirectory,
			Title:          convertTitle,
			Artist:         convertArtist,
			Start:          convertStart,
			End:            convertEnd,
			Audio:          enc,
			Interactive:    convertInteractive,
			PickOutput:     convertPickOutput,
			PickOutputDir:  convertPickOutputDir,
			Verify:         convertVerify,
		},
		os.Stdout,
	)
}

// resolveEncoding layers config defaults, then the named preset, then flags
func resolveEncoding(cfg *config.Config, configPath, presetName string, flags audio.AudioEncodingConfig) (audio.AudioEncodingConfig, error) {
	enc := cfg.Audio.Encoding()

	if presetName != "" {
		preset, err := config.NewConfigManager(cfg, configPath).GetPreset(presetName)
		if err != nil {
			return audio.AudioEncodingConfig{}, fmt.Errorf("%w\nCreate it with: %s", err, config.SuggestAddPresetCommand(presetName))
		}
		enc = enc.Merge(preset.Encoding())
	}

	flags.Format = strings.ToLower(strings.TrimSpace(flags.Format))
	return enc.Merge(flags).WithDefaults(), nil
}

// RunCheckWithDependencies prints the transcoder version
func RunCheckWithDependencies(ctx context.Context, checker VersionChecker, output OutputWriter) error {
	version, err := checker.Version(ctx)
	if err != nil {
		return fmt.Errorf("ffmpeg verification failed: %w", err)
	}
	fmt.Fprintln(output, version)
	return nil
}

// RunConvertWithDependencies runs the convert command with injected dependencies (for testing)
func RunConvertWithDependencies(
	ctx context.Context,
	converter Converter,
	dialogs ConvertDialogs,
	tagReader TagReader,
	input ConvertInput,
	output OutputWriter,
) error {
	if input.Source == "" {
		if !input.Interactive || dialogs.Files == nil {
			return fmt.Errorf("--source is required (or use --interactive)")
		}
		path, ok, err := dialogs.Files.PickFile(dialog.VideoFilter, dialog.AudioFilter)
		if err != nil {
			return fmt.Errorf("failed to pick source file: %w", err)
		}
		if !ok {
			return prompt.ErrCancelled
		}
		input.Source = path
	}

	if input.PickOutputDir && input.Output == "" && dialogs.Folder != nil {
		dir, err := pickOutputDir(dialogs.Folder)
		if err != nil {
			return err
		}
		input.OutputDir = dir
	}

	if input.PickOutput && input.Output == "" && dialogs.Save != nil {
		path, ok, err := dialogs.Save.PickSavePath(dialog.AudioFilter)
		if err != nil {
			return fmt.Errorf("failed to pick output path: %w", err)
		}
		if !ok {
			return prompt.ErrCancelled
		}
		input.Output = path
	}

	req := input.request()

	fmt.Fprintf(output, "Converting %s to %s (%s)...\n", req.SourcePath, req.EffectiveOutputPath(), req.Audio.Codec())

	outcome := converter.Convert(ctx, req)
	if !outcome.Success {
		notify(dialogs.Notifier, outcome.Message(), "Conversion failed", dialog.SeverityError)
		return fmt.Errorf("conversion failed: %w", outcome.Err)
	}

	fmt.Fprintf(output, "Successfully created: %s\n", outcome.OutputPath)
	notify(dialogs.Notifier, outcome.OutputPath, "Conversion complete", dialog.SeverityInfo)

	if input.Verify && tagReader != nil {
		verifyTags(tagReader, outcome.OutputPath, req.Title, req.Artist, output)
	}

	return nil
}

func pickOutputDir(picker dialog.FolderPicker) (string, error) {
	dir, ok, err := picker.PickFolder()
	if err != nil {
		return "", fmt.Errorf("failed to pick output directory: %w", err)
	}
	if !ok {
		return "", prompt.ErrCancelled
	}
	return dir, nil
}

func (in ConvertInput) request() audio.ConversionRequest {
	outputFilename := in.OutputFilename
	if outputFilename == "" {
		outputFilename = batch.FallbackFilename(in.Source)
	}

	outputPath := in.Output
	if outputPath == "" && in.OutputFilename == "" {
		outputPath = batch.OutputPathFor(in.Source, in.Title, in.Audio.Format, in.OutputDir)
	}

	return audio.ConversionRequest{
		SourcePath:     in.Source,
		OutputFilename: outputFilename,
		OutputPath:     outputPath,
		Title:          in.Title,
		Artist:         in.Artist,
		StartTime:      in.Start,
		EndTime:        in.End,
		Audio:          in.Audio,
	}
}

// notify shows a dialog when a notifier is wired; dialog errors never change the result
func notify(n dialog.Notifier, message, title string, severity dialog.Severity) {
	if n == nil {
		return
	}
	if _, err := n.Notify(message, title, severity); err != nil {
		logger.Warn("notification failed", slog.String("error", err.Error()))
	}
}

// verifyTags reports tag differences as warnings; the conversion already succeeded
func verifyTags(reader TagReader, path, title, artist string, output OutputWriter) {
	info, err := reader.Read(path)
	if err != nil {
		fmt.Fprintf(output, "Warning: could not verify tags: %v\n", err)
		return
	}

	diffs := info.Mismatch(title, artist)
	if len(diffs) == 0 {
		fmt.Fprintf(output, "Verified tags: %q by %q\n", info.Title, info.Artist)
		return
	}
	for _, d := range diffs {
		fmt.Fprintf(output, "Warning: %s\n", d)
	}
}
