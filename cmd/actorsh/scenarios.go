// Scenario registry binding internal/config's scenario names to the worked
// actor sets in internal/demo, each paired with a dump function the REPL
// calls for "state": one struct per scenario rather than a switch in main,
// so main.go and repl.go share a single source of truth for what exists.
package main

import (
	"fmt"

	"github.com/kernelcore/actorrt"
	"github.com/kernelcore/actorrt/internal/config"
	"github.com/kernelcore/actorrt/internal/demo"
	"github.com/kernelcore/actorrt/memorypool"
)

// scenario binds a name to a constructor for its actor set and a way to
// describe what it last observed.
type scenario struct {
	name  string
	short string
	build func(cfg config.Config) (*actorrt.Executor, func() string, error)
}

func scenarios() []scenario {
	return []scenario{
		{
			name:  "pingpong",
			short: "A writes Ping, B replies Pong, forever",
			build: func(config.Config) (*actorrt.Executor, func() string, error) {
				obs := &demo.Observer{}

				ex, err := actorrt.Build(demo.NewPingPong(obs)...)
				if err != nil {
					return nil, nil, err
				}

				dump := func() string {
					return fmt.Sprintf("last Ping=%d  last Pong=%d", obs.LastPing().Seq, obs.LastPong().Seq)
				}

				return ex, dump, nil
			},
		},
		{
			name:  "drain",
			short: "exclusive reader drains a tight-loop writer one value per round",
			build: func(config.Config) (*actorrt.Executor, func() string, error) {
				obs := &demo.Observer{}

				ex, err := actorrt.Build(demo.NewDrain(obs)...)
				if err != nil {
					return nil, nil, err
				}

				dump := func() string {
					return fmt.Sprintf("drained=%v", obs.Drained())
				}

				return ex, dump, nil
			},
		},
		{
			name:  "anyupdate",
			short: "reader waits on the union of two slots",
			build: func(config.Config) (*actorrt.Executor, func() string, error) {
				obs := &demo.Observer{}

				ex, err := actorrt.Build(demo.NewAnyUpdate(obs)...)
				if err != nil {
					return nil, nil, err
				}

				dump := func() string {
					x, y, yPresent := obs.AnyUpdate()
					return fmt.Sprintf("X=%d  Y=%d (present=%v)", x, y, yPresent)
				}

				return ex, dump, nil
			},
		},
		{
			name:  "initread",
			short: "InitializedReader never misses the first write",
			build: func(config.Config) (*actorrt.Executor, func() string, error) {
				obs := &demo.Observer{}

				ex, err := actorrt.Build(demo.NewInitRead(obs)...)
				if err != nil {
					return nil, nil, err
				}

				dump := func() string {
					v, seen := obs.InitValue()
					if !seen {
						return "(not yet observed)"
					}

					return fmt.Sprintf("X=%d", v)
				}

				return ex, dump, nil
			},
		},
		{
			name:  "chunklife",
			short: "a pool chunk is produced, taken, and returned",
			build: func(cfg config.Config) (*actorrt.Executor, func() string, error) {
				obs := &demo.Observer{}
				pool := memorypool.New[demo.ChunkPayload](cfg.PoolCapacity)

				ex, err := actorrt.Build(demo.NewChunkLifecycle(obs, pool)...)
				if err != nil {
					return nil, nil, err
				}

				dump := func() string {
					return fmt.Sprintf("last chunk id=%s value=%s  pool available=%d/%d",
						obs.ChunkID(), obs.ChunkValue(), pool.Available(), pool.Capacity())
				}

				return ex, dump, nil
			},
		},
	}
}

func findScenario(name string) (scenario, bool) {
	for _, s := range scenarios() {
		if s.name == name {
			return s, true
		}
	}

	return scenario{}, false
}
