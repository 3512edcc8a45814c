package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"audio-converter/infrastructure/config"

	"github.com/spf13/cobra"
)

// DefaultOutput is the default output writer for preset commands
var DefaultOutput OutputWriter = os.Stdout

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named audio presets",
	Long: `Manage the named audio presets stored in the configuration file.

A preset fixes the format, bitrate, sample rate and channel count. Use it with
"convert --preset <name>" or "batch --preset <name>"; explicit flags still win.

Examples:
  audio-converter preset list
  audio-converter preset add podcast --format mp3 --bitrate 128k --channels 1
  audio-converter preset update podcast --sample-rate 48000
  audio-converter preset remove podcast`,
}

func init() {
	rootCmd.AddCommand(presetCmd)

	presetCmd.AddCommand(presetAddCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetRemoveCmd)
	presetCmd.AddCommand(presetUpdateCmd)
}

// --- ADD command ---

var (
	presetFormat     string
	presetBitrate    string
	presetSampleRate string
	presetChannels   int
)

var presetAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new preset",
	Long: `Add a named audio preset to the configuration.

Examples:
  audio-converter preset add podcast --format mp3 --bitrate 128k --channels 1
  audio-converter preset add archive --format flac --sample-rate 48000`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetAdd,
}

func addPresetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&presetFormat, "format", "", "Output format (mp3, aac, flac, or anything else for stream copy)")
	cmd.Flags().StringVar(&presetBitrate, "bitrate", "", "Audio bitrate (e.g. 192k)")
	cmd.Flags().StringVar(&presetSampleRate, "sample-rate", "", "Sample rate in Hz (e.g. 48000)")
	cmd.Flags().IntVar(&presetChannels, "channels", 0, "Number of audio channels")
}

func init() {
	addPresetFlags(presetAddCmd)
	presetAddCmd.MarkFlagRequired("format")
}

func runPresetAdd(cmd *cobra.Command, args []string) error {
	cfg, err := requireFileConfig()
	if err != nil {
		return err
	}

	return RunPresetAddWithDependencies(cfg, cfgFile, args[0], currentPresetFlags(), DefaultOutput)
}

func currentPresetFlags() config.PresetConfig {
	return config.PresetConfig{
		Format:     presetFormat,
		Bitrate:    presetBitrate,
		SampleRate: presetSampleRate,
		Channels:   presetChannels,
	}
}

// RunPresetAddWithDependencies runs the add command with injected dependencies
func RunPresetAddWithDependencies(cfg *config.Config, configPath, name string, preset config.PresetConfig, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)
	if err := mgr.AddPreset(name, preset); err != nil {
		return err
	}

	added, err := mgr.GetPreset(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Added preset %q: %s\n", added.Name, describePreset(added.PresetConfig))
	return nil
}

// --- LIST command ---

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetList,
}

func runPresetList(cmd *cobra.Command, args []string) error {
	cfg, err := requireFileConfig()
	if err != nil {
		return err
	}

	return RunPresetListWithDependencies(cfg, cfgFile, DefaultOutput)
}

// RunPresetListWithDependencies runs the list command with injected dependencies
func RunPresetListWithDependencies(cfg *config.Config, configPath string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)

	presets := mgr.ListPresets()
	if len(presets) == 0 {
		fmt.Fprintln(out, "No presets configured.")
		return nil
	}

	// Sort by name for consistent output
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORMAT\tBITRATE\tSAMPLE RATE\tCHANNELS")
	for _, p := range presets {
		channels := ""
		if p.Channels != 0 {
			channels = fmt.Sprintf("%d", p.Channels)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Format, p.Bitrate, p.SampleRate, channels)
	}
	return w.Flush()
}

// --- REMOVE command ---

var presetRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetRemove,
}

func runPresetRemove(cmd *cobra.Command, args []string) error {
	cfg, err := requireFileConfig()
	if err != nil {
		return err
	}

	return RunPresetRemoveWithDependencies(cfg, cfgFile, args[0], DefaultOutput)
}

// RunPresetRemoveWithDependencies runs the remove command with injected dependencies
func RunPresetRemoveWithDependencies(cfg *config.Config, configPath, name string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)
	if err := mgr.RemovePreset(name); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed preset %q\n", name)
	return nil
}

// --- UPDATE command ---

var presetUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update a preset",
	Long: `Change fields of an existing preset. Fields not given keep their value.

Examples:
  audio-converter preset update podcast --bitrate 160k
  audio-converter preset update archive --format flac --channels 2`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetUpdate,
}

func init() {
	addPresetFlags(presetUpdateCmd)
}

func runPresetUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := requireFileConfig()
	if err != nil {
		return err
	}

	changes := currentPresetFlags()
	if changes == (config.PresetConfig{}) {
		return fmt.Errorf("at least one of --format, --bitrate, --sample-rate or --channels is required")
	}

	return RunPresetUpdateWithDependencies(cfg, cfgFile, args[0], changes, DefaultOutput)
}

// RunPresetUpdateWithDependencies runs the update command with injected dependencies
func RunPresetUpdateWithDependencies(cfg *config.Config, configPath, name string, changes config.PresetConfig, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)
	if err := mgr.UpdatePreset(name, changes); err != nil {
		return err
	}

	updated, err := mgr.GetPreset(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated preset %q: %s\n", updated.Name, describePreset(updated.PresetConfig))
	return nil
}

func describePreset(p config.PresetConfig) string {
	enc := p.Encoding()
	if enc.IsStreamCopy() {
		return fmt.Sprintf("%s (stream copy)", p.Format)
	}
	s := fmt.Sprintf("%s via %s", p.Format, enc.Codec())
	if p.Bitrate != "" {
		s += ", " + p.Bitrate
	}
	if p.SampleRate != "" {
		s += ", " + p.SampleRate + " Hz"
	}
	if p.Channels != 0 {
		s += fmt.Sprintf(", %d ch", p.Channels)
	}
	return s
}
