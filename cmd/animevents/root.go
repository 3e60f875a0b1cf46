package main

import (
	"os"

	"github.com/milk9111/animevents/config"
	"github.com/milk9111/animevents/diag"
	"github.com/milk9111/animevents/prefabs"
	"github.com/spf13/cobra"
)

type app struct {
	cfg *config.Config
	log diag.Logger
}

var (
	dev         bool
	prefabsDir  string
	metricsAddr string

	state = &app{log: diag.Nop{}}

	rootCmd = &cobra.Command{
		Use:   "animevents",
		Short: "Inspect and run animation event bindings",
		Long: `animevents checks clip specs against their event bindings and plays
clips headlessly, routing each frame event through the event registry to its
scripted callback.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dev, "dev", false, "enable development diagnostics (overrides ANIMEVENTS_DEV)")
	rootCmd.PersistentFlags().StringVar(&prefabsDir, "prefabs", "", "directory checked before the embedded prefabs")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dev") {
		cfg.Diagnostics.Dev = dev
	}
	if flags.Changed("prefabs") {
		cfg.PrefabsDir = prefabsDir
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}

	l, err := diag.New(cfg.Diagnostics, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	prefabs.Dir = cfg.PrefabsDir
	a.cfg = cfg
	a.log = l
	return nil
}

// loadAnimationSpec reads a clip spec from disk when the path exists and from
// the prefabs otherwise.
func loadAnimationSpec(name string) (*prefabs.AnimationSpec, error) {
	if _, err := os.Stat(name); err == nil {
		spec, err := prefabs.LoadFile[prefabs.AnimationSpec](name)
		if err != nil {
			return nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		return &spec, nil
	}
	return prefabs.LoadAnimationSpec(name)
}

func loadBindingSpec(name string) (*prefabs.BindingSpec, error) {
	if name == "" {
		return nil, nil
	}
	if _, err := os.Stat(name); err == nil {
		spec, err := prefabs.LoadFile[prefabs.BindingSpec](name)
		if err != nil {
			return nil, err
		}
		return &spec, nil
	}
	return prefabs.LoadBindingSpec(name)
}
