package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridprobe/faceoff/internal/config"
	"github.com/gridprobe/faceoff/internal/export"
	"github.com/gridprobe/faceoff/internal/result"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored run history",
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
			runs, err := store.List()
			if err != nil {
				return err
			}

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "csv":
				return export.Tabular(w, runs)
			case "json":
				return export.Structured(w, runs)
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "export format (csv, json)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}
