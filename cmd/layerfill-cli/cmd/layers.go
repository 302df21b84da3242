package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"layerfill/internal/adapters/tui"
	"layerfill/internal/application/commands"
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "List the layers an import into the selection could fill",
	Long: `List the fillable layers of the selected container by the name an image
must carry to fill them, in document order.

When several layers share a name only the first receives an image; the
others are marked as shadowed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewListLayersCommand(doc).Execute(context.Background())
		if err != nil {
			return err
		}

		if len(result.Buckets) == 0 {
			fmt.Println("No fillable layers.")
			return nil
		}
		fmt.Println(tui.RenderLayers(result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layersCmd)
}
