package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/waypoint/pkg/automata"
	"golang.org/x/term"
)

var errInterrupted = errors.New("interrupted")

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) automata.Hooks[string] {
	return automata.Hooks[string]{
		OnEnter: func(ctx context.Context, r automata.Running[string]) {
			logger.Debug("Enter State", "state", r.Definition().Name().String(), "id", r.StateID())
		},
		OnReturn: func(ctx context.Context, r automata.Running[string]) {
			logger.Debug("Return", "state", r.Definition().Name().String(), "messages", len(automata.Messages(r)))
		},
		OnRound: func(ctx context.Context, e automata.RoundEvent) {
			logger.Debug("Round", "round", e.Round, "active", e.Active, "entered", e.Entered, "returned", e.Returned)
		},
	}
}

// mergeHooks calls the callbacks of a, then those of b.
func mergeHooks(a, b automata.Hooks[string]) automata.Hooks[string] {
	return automata.Hooks[string]{
		OnEnter: func(ctx context.Context, r automata.Running[string]) {
			if a.OnEnter != nil {
				a.OnEnter(ctx, r)
			}
			if b.OnEnter != nil {
				b.OnEnter(ctx, r)
			}
		},
		OnReturn: func(ctx context.Context, r automata.Running[string]) {
			if a.OnReturn != nil {
				a.OnReturn(ctx, r)
			}
			if b.OnReturn != nil {
				b.OnReturn(ctx, r)
			}
		},
		OnRound: func(ctx context.Context, e automata.RoundEvent) {
			if a.OnRound != nil {
				a.OnRound(ctx, e)
			}
			if b.OnRound != nil {
				b.OnRound(ctx, e)
			}
		},
	}
}

// InterruptibleReader wraps an io.Reader (like os.Stdin) and checks for a cancellation signal.
type InterruptibleReader struct {
	base   io.Reader
	cancel <-chan struct{}
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{
		base:   base,
		cancel: cancel,
	}
}

func (r *InterruptibleReader) Read(p []byte) (n int, err error) {
	// Check before blocking
	select {
	case <-r.cancel:
		return 0, errInterrupted
	default:
	}

	// Read (This blocks!)
	n, err = r.base.Read(p)

	// Check after returning
	select {
	case <-r.cancel:
		return 0, errInterrupted
	default:
	}
	return n, err
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, errInterrupted)
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

func logCompletion(w io.Writer, round int, err error, sig os.Signal) {
	if err == nil {
		printSystemMessage(w, "Finished after %d rounds.", round)
		return
	}

	if isInterrupted(err) {
		if sig == os.Interrupt {
			fmt.Fprintf(w, "[CTRL+C]\n")
			printSystemMessage(w, "Interrupted after %d rounds.", round)
		} else if sig != nil {
			// SIGTERM or others
			fmt.Fprintf(w, "\n")
			printSystemMessage(w, "Terminated after %d rounds.", round)
		} else {
			fmt.Fprintf(w, "\n")
			printSystemMessage(w, "Interrupted after %d rounds.", round)
		}
	}
}
