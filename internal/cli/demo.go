//go:build unix

package cli

import (
	"github.com/spf13/cobra"

	"termkit/internal/demo"
)

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive event inspector on the current terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return demo.Run()
	},
}
