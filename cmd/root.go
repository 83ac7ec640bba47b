package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "annoview",
	Short: "Annotation viewer for checkpointed document analyses",
	Long: `annoview serves checkpoint files of analysed documents and renders them
as an annotation viewer: one tab per section, highlighted statements with
their terms, verbs, classification and sources, and side-by-side comparison
of the same section across several checkpoint files.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".annoview.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
