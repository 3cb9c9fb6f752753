package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/peterh/liner"

	"github.com/kernelcore/actorrt"
	"github.com/kernelcore/actorrt/internal/config"
	"github.com/kernelcore/actorrt/osal"
)

// repl is the interactive command loop, modeled directly on cmd/sloty's
// REPL: a liner.State for history/completion, a prompt loop dispatching on
// the first whitespace-separated word, and a saved history file in the
// user's home directory.
type repl struct {
	scenario scenario
	cfg      config.Config
	ex       *actorrt.Executor
	dump     func() string
	liner    *liner.State
	tty      ttyState

	mu      sync.Mutex
	cancel  context.CancelFunc
	errCh   chan error
	running bool
}

func newREPL(sc scenario, cfg config.Config, ex *actorrt.Executor, dump func() string) *repl {
	return &repl{scenario: sc, cfg: cfg, ex: ex, dump: dump}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".actorsh_history")
}

func (r *repl) run() int {
	r.liner = liner.NewLiner()
	defer r.liner.Close()
	defer r.ex.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		f.Close()
	}

	// Captured once so a background 'run' that is stopped mid Ctrl-C can be
	// guaranteed to hand the terminal back in the mode it started in,
	// regardless of what liner's own raw-mode toggling left it in.
	r.tty = captureTTYState(int(os.Stdin.Fd()))

	fmt.Printf("actorsh - actorrt inspector (scenario=%s)\n", r.scenario.name)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("actorsh> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				if r.stopBackground() {
					fmt.Println("\nstopped")
					continue
				}

				fmt.Println("\nBye!")

				break
			}

			if errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")
				break
			}

			fmt.Fprintln(os.Stderr, "actorsh: reading input:", err)
			r.saveHistory()

			return 1
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" || cmd == "q" {
			r.stopBackground()
			fmt.Println("Bye!")

			break
		}

		r.dispatch(cmd, args)
		r.tty.restore()
	}

	r.saveHistory()

	return 0
}

func (r *repl) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil {
		_, _ = r.liner.WriteHistory(f)
		f.Close()
	}
}

func (r *repl) completer(line string) []string {
	cmds := []string{"help", "state", "step", "run", "stop", "gen", "scenario", "exit", "quit"}

	var out []string

	for _, c := range cmds {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}

	return out
}

func (r *repl) dispatch(cmd string, args []string) {
	switch cmd {
	case "help", "?":
		r.printHelp()
	case "state":
		fmt.Println(r.dump())
	case "gen":
		fmt.Println(r.ex.Generation())
	case "scenario":
		fmt.Printf("%s - %s\n", r.scenario.name, r.scenario.short)
	case "step":
		r.cmdStep(args)
	case "run":
		r.cmdRun()
	case "stop":
		if !r.stopBackground() {
			fmt.Println("nothing running")
		}
	default:
		fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}
}

func (r *repl) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  help              Show this help")
	fmt.Println("  scenario          Show the running scenario's name and description")
	fmt.Println("  state             Print what the scenario's actors have observed so far")
	fmt.Println("  gen               Print the store's current generation counter")
	fmt.Println("  step [n]          Run n scheduling rounds (default 1), then print state")
	fmt.Println("  run               Run continuously in the background until 'stop' or Ctrl-C")
	fmt.Println("  stop              Stop a background 'run'")
	fmt.Println("  exit / quit / q   Exit")
}

func (r *repl) cmdStep(args []string) {
	n := 1

	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			fmt.Println("usage: step [n]  (n must be a positive integer)")
			return
		}

		n = parsed
	}

	r.mu.Lock()
	busy := r.running
	r.mu.Unlock()

	if busy {
		fmt.Println("a background run is active; 'stop' it first")
		return
	}

	if err := runHeadless(r.ex, n); err != nil {
		fmt.Fprintln(os.Stderr, "actorsh: actor error:", err)
		return
	}

	fmt.Println(r.dump())
}

// cmdRun launches a paced round loop on a goroutine and returns
// immediately, so the REPL keeps accepting "stop" or further commands while
// it's active — actors never return on their own, so blocking the prompt
// loop here would make 'stop' unreachable without Ctrl-C.
func (r *repl) cmdRun() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		fmt.Println("already running; use 'stop' first")

		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.errCh = make(chan error, 1)
	r.running = true
	errCh := r.errCh
	r.mu.Unlock()

	go func() { errCh <- r.runPaced(ctx) }()

	fmt.Println("running in the background; type 'stop' or press Ctrl-C to pause")
}

// runPaced drives one scheduling round per tick_interval_ms tick instead of
// handing the executor to its free-running Run loop: an inspector wants
// rounds slow enough to watch, and the tick keeps a scenario whose actors
// are all parked from burning CPU between observations. RunOnce gets a
// background context so a round's turn handoff always completes; the
// cancellable ctx is observed between rounds, which leaves every actor
// cleanly parked and the executor resumable by a later 'run' or 'step'.
func (r *repl) runPaced(ctx context.Context) error {
	var clock osal.Clock = osal.RealClock{}

	interval := time.Duration(r.cfg.TickIntervalMS) * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(ctx, interval):
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err := r.ex.RunOnce(context.Background()); err != nil {
			return err
		}
	}
}

// stopBackground cancels an active background run and waits for it to
// return, reporting whether one was actually active.
func (r *repl) stopBackground() bool {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return false
	}

	cancel, errCh := r.cancel, r.errCh
	r.mu.Unlock()

	cancel()
	err := <-errCh

	r.mu.Lock()
	r.running = false
	r.cancel = nil
	r.errCh = nil
	r.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "actorsh: actor error:", err)
	}

	fmt.Println(r.dump())

	return true
}
