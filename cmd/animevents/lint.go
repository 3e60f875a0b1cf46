package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/milk9111/animevents/prefabs"
	"github.com/spf13/cobra"
)

var (
	lintBindings string
	lintStrict   bool

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	lintCmd = &cobra.Command{
		Use:   "lint CLIP...",
		Short: "Report frame events without bindings and bindings no clip fires",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := lintFiles(lintBindings, args)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			if lintStrict && !report.OK() {
				return fmt.Errorf("lint found problems")
			}
			return nil
		},
	}
)

func init() {
	lintCmd.Flags().StringVarP(&lintBindings, "bindings", "b", "", "binding spec to check against")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "exit non-zero when there are findings")
}

func lintFiles(bindingsName string, clipNames []string) (prefabs.LintReport, error) {
	bindings, err := loadBindingSpec(bindingsName)
	if err != nil {
		return prefabs.LintReport{}, err
	}
	clips := make([]*prefabs.AnimationSpec, 0, len(clipNames))
	for _, name := range clipNames {
		spec, err := loadAnimationSpec(name)
		if err != nil {
			return prefabs.LintReport{}, err
		}
		clips = append(clips, spec)
	}
	return prefabs.Lint(bindings, clips...), nil
}

func printReport(w io.Writer, report prefabs.LintReport) {
	if report.OK() {
		fmt.Fprintln(w, okStyle.Render("ok"))
		return
	}
	for _, u := range report.Unbound {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("unbound: %s frame %d fires %q", u.Clip, u.Frame, u.Name)))
	}
	for _, name := range report.Unused {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("unused binding: %q", name)))
	}
	for _, name := range report.Duplicates {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("duplicate binding: %q (first one wins)", name)))
	}
}
