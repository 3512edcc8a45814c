package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"audio-converter/infrastructure/tags"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the tags written to an audio file",
	Long: `Read the container tags of an audio file and print them.

Example:
  audio-converter inspect /music/Encore.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	return RunInspectWithDependencies(tags.NewReader(), args[0], os.Stdout)
}

// RunInspectWithDependencies runs the inspect command with injected dependencies (for testing)
func RunInspectWithDependencies(reader TagReader, path string, out OutputWriter) error {
	info, err := reader.Read(path)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FILE\t%s\n", path)
	fmt.Fprintf(w, "FORMAT\t%s\n", info.Format)
	if info.FileType != "" {
		fmt.Fprintf(w, "TYPE\t%s\n", info.FileType)
	}
	fmt.Fprintf(w, "TITLE\t%s\n", info.Title)
	fmt.Fprintf(w, "ARTIST\t%s\n", info.Artist)
	if info.Album != "" {
		fmt.Fprintf(w, "ALBUM\t%s\n", info.Album)
	}
	if info.Genre != "" {
		fmt.Fprintf(w, "GENRE\t%s\n", info.Genre)
	}
	if info.Year != 0 {
		fmt.Fprintf(w, "YEAR\t%d\n", info.Year)
	}
	if info.Comment != "" {
		fmt.Fprintf(w, "COMMENT\t%s\n", info.Comment)
	}
	return w.Flush()
}
