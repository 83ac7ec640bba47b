package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/annoview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize annoview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure annoview and writes the config file (.annoview.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
