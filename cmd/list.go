package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridprobe/faceoff/internal/catalog"
	"github.com/gridprobe/faceoff/internal/config"
)

func newListCmd() *cobra.Command {
	var showCategory string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List test categories and their cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.Catalog.Dir)
			if err != nil {
				return err
			}
			if showCategory != "" {
				c, err := catalog.ParseCategory(showCategory)
				if err != nil {
					return err
				}
				cases, err := cat.TestsFor(c)
				if err != nil {
					return err
				}
				for _, tc := range cases {
					fmt.Printf("  %s: %s\n    expected: %s\n", tc.ID, tc.Question, tc.Expected)
				}
				return nil
			}
			fmt.Println("Categories:")
			for _, c := range catalog.Categories() {
				cases, err := cat.TestsFor(c)
				if err != nil {
					return err
				}
				fmt.Printf("  - %s (%d tests)\n", c, len(cases))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&showCategory, "category", "", "show the cases of one category")
	return cmd
}
