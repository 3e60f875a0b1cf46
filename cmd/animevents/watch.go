package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/milk9111/animevents/prefabs"
	"github.com/spf13/cobra"
)

var (
	watchBindings string

	watchCmd = &cobra.Command{
		Use:   "watch [DIR...]",
		Short: "Re-lint clip specs whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				dirs = []string{prefabs.Dir}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd.OutOrStdout(), watchBindings, dirs)
		},
	}
)

func init() {
	watchCmd.Flags().StringVarP(&watchBindings, "bindings", "b", "", "binding spec to check against")
}

func runWatch(ctx context.Context, out io.Writer, bindings string, dirs []string) error {
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	fmt.Fprintf(out, "watching %v\n", dirs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !prefabs.IsSpecFile(path) || path == bindings {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				// removed or renamed away
				continue
			}
			report, err := lintFiles(bindings, []string{path})
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(out, "%s:\n", path)
			printReport(out, report)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			state.log.Errorf("watch: %v", err)
		}
	}
}
