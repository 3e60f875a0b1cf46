package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/milk9111/animevents/animevent"
	"github.com/milk9111/animevents/metrics"
	"github.com/milk9111/animevents/script"
	"github.com/milk9111/animevents/system"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const ticksPerSecond = 60

var (
	playClip     string
	playAnim     string
	playBindings string
	playTicks    int

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a clip headlessly and print every fired event",
		Long: `play drives a clip's frame clock and routes its frame events through the
registry to the bound scripts. With --ticks 0 it runs in real time at 60 ticks
per second until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runPlay(ctx, cmd.OutOrStdout(), playOptions{
				Clip:     playClip,
				Anim:     playAnim,
				Bindings: playBindings,
				Ticks:    playTicks,
			})
		},
	}
)

func init() {
	playCmd.Flags().StringVarP(&playClip, "clip", "c", "knight.yaml", "clip spec file or prefab name")
	playCmd.Flags().StringVarP(&playAnim, "anim", "a", "", "clip to play (defaults to the spec's current clip)")
	playCmd.Flags().StringVarP(&playBindings, "bindings", "b", "knight_bindings.yaml", "binding spec file or prefab name")
	playCmd.Flags().IntVarP(&playTicks, "ticks", "t", 120, "updates to run; 0 runs in real time until interrupted")
}

type playOptions struct {
	Clip     string
	Anim     string
	Bindings string
	Ticks    int
}

func runPlay(ctx context.Context, out io.Writer, opts playOptions) error {
	spec, err := loadAnimationSpec(opts.Clip)
	if err != nil {
		return err
	}
	bindings, err := loadBindingSpec(opts.Bindings)
	if err != nil {
		return err
	}

	regOpts := []animevent.Option{animevent.WithLogger(state.log)}
	if state.cfg != nil && state.cfg.MetricsAddr != "" {
		promReg := prometheus.NewRegistry()
		collector, err := metrics.NewCollector(promReg)
		if err != nil {
			return err
		}
		regOpts = append(regOpts, animevent.WithObserver(collector))
		defer serveMetrics(state.cfg.MetricsAddr, promReg)()
	}

	reg := animevent.New(regOpts...)
	if _, err := script.Bind(reg, bindings, nil, script.WithLogger(state.log), script.WithTimeout(50*time.Millisecond)); err != nil {
		return err
	}

	animator, err := system.NewAnimator(spec, reg)
	if err != nil {
		return err
	}
	tick := 0
	animator.Trace = func(clip string, frame int, name string) {
		fmt.Fprintf(out, "tick %4d  %-10s frame %2d  %s\n", tick, clip, frame, name)
	}
	if opts.Anim != "" {
		if err := animator.Play(opts.Anim); err != nil {
			return err
		}
	}
	if name, _ := animator.Current(); name == "" {
		return fmt.Errorf("no clip to play: set --anim or the spec's current clip")
	}

	if opts.Ticks > 0 {
		for ; tick < opts.Ticks; tick++ {
			animator.Update()
		}
		return nil
	}

	ticker := time.NewTicker(time.Second / ticksPerSecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			animator.Update()
			tick++
		}
	}
}

func serveMetrics(addr string, g prometheus.Gatherer) func() {
	srv := &http.Server{Addr: addr, Handler: metrics.Router(g)}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			state.log.Errorf("metrics server: %v", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
