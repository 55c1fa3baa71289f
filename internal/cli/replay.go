package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"termkit/internal/config"
	"termkit/internal/demo"
	"termkit/internal/system"
	"termkit/script"
)

var (
	replayCols    int
	replayRows    int
	replayVerbose bool
	replayWatch   bool
)

func init() {
	replayCmd.Flags().IntVar(&replayCols, "cols", 80, "viewport width in cells")
	replayCmd.Flags().IntVar(&replayRows, "rows", 24, "viewport height in cells")
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "log each step and decoded event")
	replayCmd.Flags().BoolVarP(&replayWatch, "watch", "w", false, "re-run when the script file changes")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Run an input script against the demo app and print the final viewport",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ResolveScript(args[0])
		if err != nil {
			return err
		}
		if !replayWatch {
			return replayOnce(cmd, path)
		}
		if err := replayOnce(cmd, path); err != nil {
			system.Logger.Error("replay failed", "err", err)
		}
		changes, closeWatch, err := watchFile(path)
		if err != nil {
			return err
		}
		defer closeWatch()
		system.Logger.Info("watching for changes", "file", path)
		for range changes {
			if err := replayOnce(cmd, path); err != nil {
				system.Logger.Error("replay failed", "err", err)
			}
		}
		return nil
	},
}

func replayOnce(cmd *cobra.Command, path string) error {
	steps, err := script.Load(path)
	if err != nil {
		return err
	}
	r, err := script.NewRunner(demo.NewApp(), replayCols, replayRows)
	if err != nil {
		return err
	}
	defer r.Close()

	if replayVerbose {
		for i, s := range steps {
			system.Logger.Info("step", "n", i+1, "event", script.Describe(s))
		}
	}
	if err := r.Run(steps); err != nil {
		return err
	}
	if replayVerbose {
		for _, ev := range r.Events() {
			system.Logger.Info("decoded", "event", fmt.Sprintf("%+v", ev))
		}
		for i, w := range r.Writes() {
			system.Logger.Info("write", "n", i+1, "data", fmt.Sprintf("%q", w))
		}
		system.Logger.Info("run complete", "steps", len(steps), "writes", len(r.Writes()))
	}
	for _, row := range r.Viewport() {
		fmt.Fprintln(cmd.OutOrStdout(), row)
	}
	return nil
}

// watchFile watches the script's directory and coalesces events for it
// into a single change signal, so editors that replace the file on save
// are still picked up.
func watchFile(path string) (<-chan struct{}, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, nil, err
	}
	abs, _ := filepath.Abs(path)
	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				evAbs, _ := filepath.Abs(ev.Name)
				if evAbs != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return ch, func() { _ = w.Close() }, nil
}
