package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/annoview/internal/progress"
)

var filesStats bool

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the checkpoint files the viewer can show",
	Long: `Lists the checkpoint files available through the configured source (the
local checkpoint directory or the remote API). With --stats every file is
loaded and its section, response and element counts are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, closeLog, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx := cmd.Context()
		src, _ := newSource(cfg, log)
		files, err := src.ListFiles(ctx)
		if err != nil {
			return fmt.Errorf("listing files: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No checkpoint files found.")
			return nil
		}
		if !filesStats {
			for _, f := range files {
				fmt.Fprintln(out, f)
			}
			return nil
		}

		reporter := progress.NewReporter("Loading checkpoints", cmd.ErrOrStderr())
		reporter.Start(len(files))
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tSECTIONS\tRESPONSES\tELEMENTS")
		for i, f := range files {
			doc, err := src.SingleDocument(ctx, f)
			reporter.Update(i+1, f)
			if err != nil {
				log.Warn().Err(err).Str("file", f).Msg("skipping checkpoint")
				fmt.Fprintf(tw, "%s\t-\t-\t-\n", f)
				continue
			}
			st := doc.Stats()
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", f, st.Sections, st.Responses, st.Elements)
		}
		reporter.Finish()
		return tw.Flush()
	},
}

func init() {
	filesCmd.Flags().BoolVar(&filesStats, "stats", false, "load every file and print record counts")
	rootCmd.AddCommand(filesCmd)
}
