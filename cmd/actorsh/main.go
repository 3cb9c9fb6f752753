// actorsh is an interactive inspector for actorrt: it builds one of the
// worked demo actor sets from internal/demo, steps its scheduling rounds on
// command, and prints what each scenario's actors observed — a
// manually-driven way to watch the end-to-end scenarios run.
//
// Usage:
//
//	actorsh [--config=run.hujson] [--scenario=pingpong] [--rounds=N]
//
// With --rounds set, actorsh runs that many rounds non-interactively, prints
// the scenario's final state, and exits — for scripting. Without it, it
// drops into an interactive REPL modeled on cmd/sloty's liner-backed loop.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kernelcore/actorrt"
	"github.com/kernelcore/actorrt/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("actorsh", flag.ContinueOnError)

	configPath := fs.StringP("config", "c", "", "path to a hujson run manifest")
	scenarioName := fs.StringP("scenario", "s", "", "scenario to run (overrides the manifest)")
	rounds := fs.IntP("rounds", "n", 0, "run this many rounds non-interactively and exit (0 = interactive REPL)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: actorsh [--config=run.hujson] [--scenario=name] [--rounds=N]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Scenarios:")

		for _, s := range scenarios() {
			fmt.Fprintf(os.Stderr, "  %-10s %s\n", s.name, s.short)
		}

		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "actorsh:", err)
		return 1
	}

	if *scenarioName != "" {
		cfg.Scenario = *scenarioName
	}

	sc, ok := findScenario(cfg.Scenario)
	if !ok {
		fmt.Fprintf(os.Stderr, "actorsh: unknown scenario %q\n", cfg.Scenario)
		return 1
	}

	ex, dump, err := sc.build(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "actorsh: build failed:", err)
		return 1
	}

	if *rounds > 0 {
		if err := runHeadless(ex, *rounds); err != nil {
			fmt.Fprintln(os.Stderr, "actorsh:", err)
			return 1
		}

		fmt.Println(dump())

		return 0
	}

	r := newREPL(sc, cfg, ex, dump)

	return r.run()
}

// runHeadless drives rounds scheduling rounds with RunOnce directly, the
// same primitive the REPL's "step" command uses, so --rounds=N and manually
// typing "step N" produce identical traces.
func runHeadless(ex *actorrt.Executor, rounds int) error {
	ctx := context.Background()

	for i := 0; i < rounds; i++ {
		if _, err := ex.RunOnce(ctx); err != nil {
			return err
		}
	}

	return nil
}
