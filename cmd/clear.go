package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridprobe/faceoff/internal/config"
	"github.com/gridprobe/faceoff/internal/result"
)

func newClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("clearing run history is irreversible; pass --yes to confirm")
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			store, err := result.OpenStore(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("Run history cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
