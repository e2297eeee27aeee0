package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"autospeed/report"
)

const debounceDelay = 300 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check a program file again every time it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.resolve(cmd, a.cfg)
			if err != nil {
				return err
			}
			return a.watch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), format, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) watch(ctx context.Context, out, errOut io.Writer, format report.Format, opts *checkOptions) error {
	target, err := filepath.Abs(opts.file)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", opts.file, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// editors replace files on save, so the directory is watched
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	a.logger.Info("watching for changes", "file", target)

	if err := a.recheck(out, errOut, format, opts); err != nil {
		return err
	}

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("stopping file watcher", "file", target)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if time.Since(last) < debounceDelay {
				continue
			}
			last = time.Now()

			a.logger.Debug("file changed", "file", target, "op", event.Op.String())
			if err := a.recheck(out, errOut, format, opts); err != nil {
				a.logger.Error("check failed", "file", target, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("watcher error", "error", err)
		}
	}
}

// recheck treats a failing program as a result, only host errors are returned
func (a *app) recheck(out, errOut io.Writer, format report.Format, opts *checkOptions) error {
	err := a.check(out, errOut, format, opts)
	if errors.Is(err, ErrCheckFailed) {
		return nil
	}
	return err
}
