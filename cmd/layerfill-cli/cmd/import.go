package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"layerfill/internal/adapters/filesystem"
	"layerfill/internal/adapters/tui"
	"layerfill/internal/application"
	"layerfill/internal/application/commands"
)

var (
	importQuiet     bool
	importDryRun    bool
	importRecursive bool
	importFocus     string
	importCopy      bool
)

var importCmd = &cobra.Command{
	Use:   "import <path>...",
	Short: "Fill layers of the selection with matching images",
	Long: `Import images into the selected container. Each image fills the first
layer (in document order) whose name matches the image's filename without
its extension, ignoring case and surrounding whitespace.

Paths may be files or directories. Directories contribute their png, jpg,
jpeg and gif files.

Examples:
  layerfill-cli import ./assets
  layerfill-cli import hero.png avatar.jpg --focus hero
  layerfill-cli import ./assets --dry-run --quiet`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if importCopy && importFocus == "" {
			return fmt.Errorf("--copy requires --focus")
		}
		ctx := context.Background()

		images, err := filesystem.NewImageLoader(importRecursive).Load(args...)
		if err != nil {
			return err
		}
		if len(images) == 0 {
			return fmt.Errorf("no images found in %v", args)
		}

		st, err := openStore()
		if err != nil {
			return err
		}

		session := application.NewSession()
		importImages := commands.NewImportImagesCommand(doc, st, session, logger, images)

		var result *commands.ImportImagesResult
		if importQuiet {
			result, err = importImages.Execute(ctx)
		} else {
			result, err = runWithProgress(ctx, importImages, len(images))
		}
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		fmt.Println(tui.RenderSummary(result.Result))

		if importFocus != "" {
			if err := focusLayer(ctx, session, importFocus); err != nil {
				return err
			}
		}

		if importDryRun {
			fmt.Println("Dry run: document not saved")
			return nil
		}
		if err := doc.Save(); err != nil {
			return err
		}
		logger.Info("document saved", "path", doc.Path())
		return nil
	},
}

// runWithProgress executes the import while a progress bar reads from the
// command's progress callback
func runWithProgress(ctx context.Context, c *commands.ImportImagesCommand, total int) (*commands.ImportImagesResult, error) {
	updates := make(chan int, total)
	model := tui.NewProgressModel("Importing into "+doc.Name(), total, updates)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	uiDone := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(uiDone)
	}()

	c.OnProgress = func(percent int) {
		updates <- percent
	}
	result, err := c.Execute(ctx)

	close(updates)
	<-uiDone
	return result, err
}

func focusLayer(ctx context.Context, session *application.Session, name string) error {
	scheduler := &waitScheduler{}
	focus := commands.NewFocusLayerCommand(doc, session, logger, name, commands.WithScheduler(scheduler))

	result, err := focus.Execute(ctx)
	if err != nil {
		return err
	}
	// Let the verification passes finish before the process exits
	scheduler.Wait()

	fmt.Println(result.Message)

	if importCopy {
		if err := clipboard.WriteAll(result.Layer.Path); err != nil {
			logger.Warn("failed to copy layer path", "error", err)
		} else {
			fmt.Println("Copied layer path to clipboard")
		}
	}
	return nil
}

// waitScheduler runs tasks on timers and can wait for all of them
type waitScheduler struct {
	wg sync.WaitGroup
}

func (s *waitScheduler) AfterFunc(d time.Duration, f func()) {
	s.wg.Add(1)
	time.AfterFunc(d, func() {
		defer s.wg.Done()
		f()
	})
}

func (s *waitScheduler) Wait() {
	s.wg.Wait()
}

func init() {
	importCmd.Flags().BoolVarP(&importQuiet, "quiet", "q", false, "no progress bar")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "do not save the document")
	importCmd.Flags().BoolVarP(&importRecursive, "recursive", "r", false, "include images in subdirectories")
	importCmd.Flags().StringVar(&importFocus, "focus", "", "select and scroll to this layer after importing")
	importCmd.Flags().BoolVar(&importCopy, "copy", false, "copy the focused layer's path to the clipboard")

	rootCmd.AddCommand(importCmd)
}
