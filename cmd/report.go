package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gridprobe/faceoff/internal/config"
	"github.com/gridprobe/faceoff/internal/report"
	"github.com/gridprobe/faceoff/internal/result"
)

var flagFormat string

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize stored run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			store, err := result.OpenStore(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer store.Close()
			return report.Generate(store, flagFormat, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	return cmd
}
