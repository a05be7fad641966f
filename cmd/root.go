package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "faceoff",
		Short: "Evaluation harness comparing a baseline and a target LLM backend",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "faceoff.yaml", "config file path")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newClearCmd())
	return root
}
