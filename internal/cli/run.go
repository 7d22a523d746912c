package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/internal/validator"
	"github.com/aretw0/waypoint/pkg/automata"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/aretw0/waypoint/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	MachinePath  string
	InputPath    string
	JSON         bool
	Stats        bool
	Debug        bool
	Strict       bool
	StopWhenDone bool
	Validate     bool
	Logger       *slog.Logger
}

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// machineFiles are the names looked up when MachinePath is a directory.
var machineFiles = []string{"machine.yaml", "machine.yml", "machine.json"}

// ResolveMachinePath returns path, or the automaton file inside it when path
// is a directory. Inside a directory "machine.yaml", "machine.yml" and
// "machine.json" are tried, then a file named after the directory.
func ResolveMachinePath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("machine file not found: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	base := filepath.Base(abs)
	candidates := append(append([]string(nil), machineFiles...), base+".yaml", base+".json")
	for _, name := range candidates {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no machine file in %s", path)
}

// LoadGraph resolves and loads an automaton file. Conditions may refer to
// the defaults of registry.NewDefault.
func LoadGraph(path string) (*automata.Graph[string], error) {
	resolved, err := ResolveMachinePath(path)
	if err != nil {
		return nil, err
	}
	file, err := config.LoadMachine(resolved)
	if err != nil {
		return nil, err
	}
	g, err := file.GraphWith(registry.NewDefault())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resolved, err)
	}
	return g, nil
}

// Execute loads the machine and feeds it the input lines, printing every
// returned path.
func Execute(ctx context.Context, opts RunOptions, streams Streams) (runner.Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	g, err := LoadGraph(opts.MachinePath)
	if err != nil {
		return runner.Stats{}, err
	}
	if opts.Validate {
		if err := validator.ValidateGraph(g); err != nil {
			return runner.Stats{}, err
		}
	}

	metrics, err := observability.NewMetrics(nil)
	if err != nil {
		return runner.Stats{}, err
	}
	hooks := observability.MachineHooks[string](metrics)
	if opts.Debug {
		hooks = mergeHooks(hooks, createDebugHooks(logger))
	}
	machine := automata.New(g,
		automata.WithLogger[string](logger),
		automata.WithHooks(hooks),
	)

	in := streams.In
	if opts.InputPath != "" {
		f, err := os.Open(opts.InputPath)
		if err != nil {
			return runner.Stats{}, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	r := runner.New(machine,
		runner.WithLogger(logger),
		runner.WithReporter(createReporter(opts, streams.Out)),
		runner.WithStopWhenDone(opts.StopWhenDone),
		runner.WithStrictInput(opts.Strict),
	)

	stats, err := r.Run(ctx, NewInterruptibleReader(in, ctx.Done()))
	logger.Info("run finished", "lines", stats.Lines, "messages", stats.Messages, "returned", stats.Returned)

	if opts.Stats {
		summary := streams.Out
		if opts.JSON {
			summary = streams.Err
		}
		var sig os.Signal
		if sc, ok := ctx.(*SignalContext); ok {
			sig = sc.Signal()
		}
		logCompletion(summary, stats.Rounds, err, sig)
		if err := printStats(summary, stats, metrics); err != nil {
			return stats, err
		}
	}
	return stats, handleExecutionError(err)
}

func createReporter(opts RunOptions, w io.Writer) runner.Reporter {
	if opts.JSON {
		return runner.NewJSONReporter(w)
	}
	rep := runner.NewTextReporter(w)
	styles := tui.NewStyles(w)
	rep.Renderer = func(line string) (string, error) {
		return styles.Accent(line), nil
	}
	return rep
}

func printStats(w io.Writer, stats runner.Stats, metrics *observability.Metrics) error {
	fmt.Fprintf(w, "lines=%d messages=%d skipped=%d returned=%d rounds=%d\n",
		stats.Lines, stats.Messages, stats.Skipped, stats.Returned, stats.Rounds)

	samples, err := metrics.Snapshot()
	if err != nil {
		return err
	}
	for _, s := range samples {
		if s.Labels != "" {
			fmt.Fprintf(w, "%s{%s} %g\n", s.Name, s.Labels, s.Value)
			continue
		}
		fmt.Fprintf(w, "%s %g\n", s.Name, s.Value)
	}
	return nil
}
