package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridprobe/faceoff/internal/config"
	"github.com/gridprobe/faceoff/internal/provider"
)

func newCheckCmd() *cobra.Command {
	var side string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe provider connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			sides := map[string]config.ProviderConfig{
				"baseline": cfg.Baseline,
				"target":   cfg.Target,
			}
			names := []string{"baseline", "target"}
			if side != "" {
				if _, ok := sides[side]; !ok {
					return fmt.Errorf("unknown provider %q (want baseline or target)", side)
				}
				names = []string{side}
			}
			timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
			for _, name := range names {
				pc := sides[name]
				client, err := provider.New(pc, timeout)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				if err := client.Ping(cmd.Context()); err != nil {
					fmt.Printf("%s (%s/%s): FAILED: %v\n", name, pc.Type, pc.Model, err)
					continue
				}
				fmt.Printf("%s (%s/%s): OK\n", name, pc.Type, pc.Model)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&side, "provider", "", "probe only one side (baseline or target)")
	return cmd
}
