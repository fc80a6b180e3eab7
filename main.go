package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/sim"
	"github.com/sheikhrachel/gol-engine/utils"
)

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig("config.json")
	if err != nil {
		fmt.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	headless := flag.Bool("headless", false, "run a random board in the terminal without interaction")
	maxGenerations := flag.Int("max-generations", 1000, "headless: stop after this many generations (0 runs forever)")
	config.Bind(flag.CommandLine)
	flag.Parse()

	if err = config.Validate(); err != nil {
		log.Fatalf("invalid configuration: %+v", err)
	}

	if *headless {
		err = runHeadless(config, *maxGenerations)
	} else {
		err = runInteractive(config)
	}
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

// runInteractive drives the controller from a tcell screen
func runInteractive(config utils.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runInteractive] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runInteractive] failed to initialize screen")
	}
	defer screen.Fini()

	// Snapshots may arrive from timer goroutines; hand them to the event loop.
	ctrl, err := sim.NewController(config, sim.WithObserver(func(snap sim.Snapshot) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(snap))
	}))
	if err != nil {
		return err
	}

	s := &session{screen: screen, ctrl: ctrl, cfg: config}
	s.draw(ctrl.Snapshot())

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			s.draw(ctrl.Snapshot())
		case *tcell.EventInterrupt:
			if snap, ok := ev.Data().(sim.Snapshot); ok {
				s.draw(snap)
			}
		case *tcell.EventKey:
			if s.handleKey(ev) {
				ctrl.Clear()
				return nil
			}
			s.draw(ctrl.Snapshot())
		}
	}
}

// runHeadless fills the board randomly and prints every generation
func runHeadless(config utils.Config, maxGenerations int) error {
	snaps := make(chan sim.Snapshot, 1)
	ctrl, err := sim.NewController(config, sim.WithObserver(func(snap sim.Snapshot) {
		// Drop the stale snapshot so the printer always sees the newest one.
		select {
		case <-snaps:
		default:
		}
		select {
		case snaps <- snap:
		default:
		}
	}))
	if err != nil {
		return err
	}
	defer ctrl.Clear()

	displayGameInfo(config)
	if err = ctrl.Randomize(); err != nil {
		return err
	}
	if err = ctrl.Start(); err != nil {
		return errors.Wrap(err, "[runHeadless] failed to start")
	}

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	renderer := &model.TerminalRenderer{Out: os.Stdout}

	for {
		select {
		case <-sigChan:
			stats := ctrl.Stats()
			fmt.Println("\n🛑 Shutting down gracefully...")
			fmt.Printf("Final stats: %d generations, %.1f avg population\n",
				stats.TotalGenerations, stats.AveragePopulation)
			return nil
		case snap := <-snaps:
			if err = renderer.Clear(); err != nil {
				return err
			}
			displayGameStatus(snap, config, ctrl.Stats())
			if err = renderer.Display(snap.Grid); err != nil {
				return err
			}

			if done, reason := checkFinishConditions(snap, maxGenerations); done {
				fmt.Printf("\n🏁 Finished: %s\n", reason)
				return nil
			}
		}
	}
}
