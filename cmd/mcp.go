package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/annoview/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing checkpoint files, sections and extracted elements to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Logs go to stderr or the log file; stdout carries the protocol.
		log, closeLog, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		src, _ := newSource(cfg, log)

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		log.Info().Str("version", Version).Msg("annoview MCP server started on stdio")
		return mcpserver.NewServer(src).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
