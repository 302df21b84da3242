package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"layerfill/internal/application/commands"
)

var selectCmd = &cobra.Command{
	Use:   "select <node-id|name>",
	Short: "Select the container imports fill",
	Long: `Select a node of the document by ID, or by exact name when no ID
matches. The selection is saved to the document.

Examples:
  layerfill-cli select 1:23
  layerfill-cli select "Product Card"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSelectNodeCommand(doc, doc, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		if err := doc.Save(); err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
