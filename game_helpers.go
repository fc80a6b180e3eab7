package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-engine/model"
	"github.com/sheikhrachel/gol-engine/sim"
	"github.com/sheikhrachel/gol-engine/utils"
)

const (
	helpLine = "arrows/hjkl move  space toggle  s start/stop  n step  r random  c clear  g glider  b blinker  q quit"

	msgStarted    = "Simulation is started!"
	msgStopped    = "Simulation is stopped!"
	msgEmptyField = "Game field is empty! Please, fill it with cells."
	msgRandom     = "Game field initialized with random cells!"
	msgCleared    = "Game field is cleared!"
)

var (
	styleDead    = tcell.StyleDefault.Background(tcell.ColorReset)
	styleAlive   = tcell.StyleDefault.Background(tcell.ColorWhite)
	styleCursor  = tcell.StyleDefault.Background(tcell.ColorGray)
	styleText    = tcell.StyleDefault
	styleSuccess = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFailure = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// session is the interactive terminal front-end. It only issues commands to
// the controller and renders the snapshots the controller publishes.
type session struct {
	screen tcell.Screen
	ctrl   *sim.Controller
	cfg    utils.Config

	cursorRow, cursorCol int

	message      string
	messageStyle tcell.Style
}

// handleKey applies a key press and reports whether the user asked to quit
func (s *session) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		s.moveCursor(-1, 0)
	case tcell.KeyDown:
		s.moveCursor(1, 0)
	case tcell.KeyLeft:
		s.moveCursor(0, -1)
	case tcell.KeyRight:
		s.moveCursor(0, 1)
	case tcell.KeyEnter:
		s.toggleRunning()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			s.moveCursor(-1, 0)
		case 'j':
			s.moveCursor(1, 0)
		case 'h':
			s.moveCursor(0, -1)
		case 'l':
			s.moveCursor(0, 1)
		case ' ':
			s.report(s.ctrl.ToggleCell(s.cursorRow, s.cursorCol), "")
		case 's':
			s.toggleRunning()
		case 'n':
			s.report(s.ctrl.StepOnce(), "")
		case 'r':
			s.report(s.ctrl.Randomize(), msgRandom)
		case 'c':
			s.ctrl.Clear()
			s.setMessage(msgCleared, styleFailure)
		case 'g':
			s.report(s.ctrl.Place(model.Glider, s.cursorRow, s.cursorCol), "")
		case 'b':
			s.report(s.ctrl.Place(model.Blinker, s.cursorRow, s.cursorCol), "")
		}
	}
	return false
}

func (s *session) toggleRunning() {
	if s.ctrl.IsRunning() {
		s.report(s.ctrl.Stop(), msgStopped)
		return
	}
	s.report(s.ctrl.Start(), msgStarted)
}

func (s *session) moveCursor(dr, dc int) {
	s.cursorRow = min(max(s.cursorRow+dr, 0), s.cfg.Rows-1)
	s.cursorCol = min(max(s.cursorCol+dc, 0), s.cfg.Cols-1)
}

// report turns a command outcome into the status message shown under the board
func (s *session) report(err error, success string) {
	switch {
	case err == nil:
		if success != "" {
			s.setMessage(success, styleSuccess)
		}
	case errors.Is(err, sim.ErrEmptyField):
		s.setMessage(msgEmptyField, styleFailure)
	default:
		s.setMessage(errors.Cause(err).Error(), styleFailure)
	}
}

func (s *session) setMessage(msg string, style tcell.Style) {
	s.message = msg
	s.messageStyle = style
}

// draw renders the board, two terminal columns per cell, followed by the status lines
func (s *session) draw(snap sim.Snapshot) {
	s.screen.Clear()

	g := snap.Grid
	for r := range g.Rows() {
		for c := range g.Cols() {
			style := styleDead
			if g.Get(r, c) {
				style = styleAlive
			}
			if !snap.Running && r == s.cursorRow && c == s.cursorCol {
				style = styleCursor
			}
			s.screen.SetContent(c*2, r, ' ', nil, style)
			s.screen.SetContent(c*2+1, r, ' ', nil, style)
		}
	}

	y := g.Rows() + 1
	drawText(s.screen, 0, y, styleText, statusLine(snap, s.cfg))
	drawText(s.screen, 0, y+1, s.messageStyle, s.message)
	drawText(s.screen, 0, y+2, styleText, helpLine)
	s.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// statusLine describes the simulation state the way the web version's chips did
func statusLine(snap sim.Snapshot, cfg utils.Config) string {
	state := "Simulation isn't running"
	if snap.Running {
		state = "Simulation is running"
	}
	line := fmt.Sprintf("%s | Living: %d", state, snap.Population)
	if cfg.TrackGeneration {
		line = fmt.Sprintf("Generation: %d | %s", snap.Generation, line)
	}
	if snap.Stagnant {
		line += " | Stagnant"
	}
	return line
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config) {
	fmt.Printf("Grid: %dx%d | Tick: %v | Parallel: %v\n",
		config.Rows, config.Cols, config.TickInterval, config.UseParallel)
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// displayGameStatus shows the current game status in headless mode
func displayGameStatus(snap sim.Snapshot, config utils.Config, stats utils.Stats) {
	density := float64(snap.Population) / float64(config.Rows*config.Cols) * 100

	fmt.Printf("%s | Density: %.1f%%\n", statusLine(snap, config), density)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, time.Since(stats.StartTime).Seconds())
	fmt.Println()
}

// checkFinishConditions determines if a headless run should end
func checkFinishConditions(snap sim.Snapshot, maxGenerations int) (bool, string) {
	if snap.Population == 0 {
		return true, "extinction"
	}
	if maxGenerations > 0 && snap.Generation >= maxGenerations {
		return true, fmt.Sprintf("maximum generations limit (%d)", maxGenerations)
	}
	return false, ""
}
