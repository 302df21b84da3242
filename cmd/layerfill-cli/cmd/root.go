package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"layerfill/internal/adapters/document"
	"layerfill/internal/adapters/sqlite"
	"layerfill/internal/adapters/tui"
	"layerfill/internal/config"
)

var (
	documentPath string
	storePath    string
	logLevel     string

	logger *slog.Logger
	doc    *document.Document
	store  *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "layerfill-cli",
	Short: "Fill design layers with images by filename",
	Long: `layerfill-cli imports images into a design document, filling each layer
whose name matches an image's filename (case-insensitive, extension ignored).

Imports target the selected frame, group, component or section. Use
"select" to change the selection and "layers" to see which names an
import would match.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		level, err := config.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger = config.NewLogger(os.Stderr, level)
		slog.SetDefault(logger)

		if cmd.Annotations[annotationNoDocument] == "" {
			doc, err = document.Open(documentPath)
			if err != nil {
				return err
			}
			logger.Debug("document loaded", "path", doc.Path(), "name", doc.Name())
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Commands carrying this annotation do not load the design document
const annotationNoDocument = "no-document"

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.RenderError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&documentPath, "document", "d", config.DocumentPath(), "path to the design document")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", config.StorePath(), "path to the image store database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.LogLevel(), "log level (debug, info, warn, error)")
}

// openStore opens the image store on first use
func openStore() (*sqlite.Store, error) {
	if store != nil {
		return store, nil
	}

	s := sqlite.NewStore()
	if err := s.Open(storePath); err != nil {
		return nil, err
	}
	store = s
	return store, nil
}
