package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"layerfill/internal/adapters/tui"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List images in the store, most recently used first",
	Args:  cobra.NoArgs,
	Annotations: map[string]string{
		annotationNoDocument: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}

		images, err := st.ListImages(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(tui.RenderImages(images))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}
