package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cropper/config"
	"github.com/sarchlab/cropper/datarecording"
	"github.com/sarchlab/cropper/monitoring"
	"github.com/sarchlab/cropper/persistence"
	"github.com/sarchlab/cropper/sim"
	"github.com/sarchlab/cropper/tracing"
	"github.com/sarchlab/cropper/world"
)

type runOptions struct {
	*rootOptions

	ticks   uint64
	record  string
	save    string
	load    string
	monitor bool
	port    int
	open    bool
}

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and report the final state",
		Long: `Run a scenario and report the final state of every node,
container and loose item.

Example:
  cropper run farm.yaml
  cropper run farm.yaml --ticks 200 --record farm_trace --save farm.sqlite3
  cropper run farm.yaml --monitor --open`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.applyEnv(cmd); err != nil {
				return err
			}

			return runScenario(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.Uint64Var(&opts.ticks, "ticks", 0,
		"number of ticks to run, overriding the scenario")
	f.StringVar(&opts.record, "record", "",
		"record every transfer into <name>.sqlite3 (env "+
			config.EnvRecordDB+")")
	f.StringVar(&opts.save, "save", "",
		"save node snapshots into this database after the run (env "+
			config.EnvSaveDB+")")
	f.StringVar(&opts.load, "load", "",
		"restore node snapshots from this database before the run")
	f.BoolVar(&opts.monitor, "monitor", false,
		"serve the monitor while running")
	f.IntVar(&opts.port, "port", 0,
		"monitor port, random if 0 (env "+config.EnvMonitorPort+")")
	f.BoolVar(&opts.open, "open", false,
		"open the monitor in a browser")

	return cmd
}

func (o *runOptions) applyEnv(cmd *cobra.Command) error {
	env, err := config.FromEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if !flags.Changed("record") {
		o.record = env.RecordDB
	}

	if !flags.Changed("save") {
		o.save = env.SaveDB
	}

	if !flags.Changed("port") {
		o.port = env.MonitorPort
	}

	return nil
}

func runScenario(cmd *cobra.Command, opts *runOptions, filename string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := config.Load(filename)
	if err != nil {
		return err
	}

	if opts.ticks > 0 {
		s.Ticks = opts.ticks
	}

	level, err := s.Build(sim.NewSerialEngine())
	if err != nil {
		return err
	}

	slog.Info("scenario loaded", "name", s.Name,
		"nodes", len(level.Nodes()), "items", len(level.Entities()))

	if opts.load != "" {
		if err := restoreNodes(ctx, opts.load, level); err != nil {
			return err
		}
	}

	counter := tracing.NewCountTracer()
	for _, n := range level.Nodes() {
		tracing.CollectMoves(n, counter)
	}

	if opts.record != "" {
		recorder := datarecording.New(opts.record)
		defer recorder.Close()

		dbTracer := tracing.NewDBTracer(recorder)
		for _, n := range level.Nodes() {
			tracing.CollectMoves(n, dbTracer)
		}
	}

	level.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		if ctx.Pos == world.HookPosTickDone {
			slog.Debug("tick", "now", ctx.Now, "changed", ctx.Item)
		}
	}))

	if opts.monitor {
		startMonitor(opts, level, s.Ticks)
	}

	if err := level.Run(); err != nil {
		return fmt.Errorf("running %s: %w", s.Name, err)
	}

	if opts.save != "" {
		if err := saveNodes(ctx, opts.save, level); err != nil {
			return err
		}
	}

	writeReport(cmd.OutOrStdout(), s, level, counter)

	return nil
}

func startMonitor(opts *runOptions, level *world.Level, ticks uint64) {
	m := monitoring.NewMonitor().WithPortNumber(opts.port)
	m.RegisterLevel(level)

	if ticks == 0 {
		ticks = world.DefaultTickLimit
	}

	m.TrackTicks(ticks)

	url := m.StartServer()
	if !opts.open {
		return
	}

	if err := browser.OpenURL(url); err != nil {
		slog.Warn("cannot open browser", "url", url, "err", err)
	}
}

func restoreNodes(ctx context.Context, filename string, level *world.Level) error {
	store, err := persistence.Open(filename)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.RestoreNodes(ctx, level.Nodes())
	if err != nil {
		return err
	}

	slog.Info("nodes restored", "db", filename, "count", n)

	return nil
}

func saveNodes(ctx context.Context, filename string, level *world.Level) error {
	store, err := persistence.Open(filename)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveNodes(ctx, level.Nodes()); err != nil {
		return err
	}

	slog.Info("nodes saved", "db", filename, "count", len(level.Nodes()))

	return nil
}
