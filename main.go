// matchsim: interactive matchmaking simulator dashboard.
//
// Runs the engine on a scaled virtual clock and renders its read views in a
// terminal UI: lifecycle histogram, queue statistics, ongoing matches, and
// leaderboards. The simulation itself lives under engine/; this binary is a
// thin host driving clock.Update and System.Tick once per frame.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/matchsim/clock"
	"github.com/lixenwraith/matchsim/engine"
	"github.com/lixenwraith/matchsim/rng"
)

const (
	frameInterval = 33 * time.Millisecond
	toneFrequency = 880
	toneLength    = 50 * time.Millisecond
)

type Dashboard struct {
	screen tcell.Screen
	sys    *engine.System
	clk    *clock.VirtualClock

	width, height int

	boardKey  engine.SortKey
	boardAsc  bool
	completed int64

	audioInit bool
	muted     bool
}

func NewDashboard(seed uint64, algorithm engine.Algorithm, log *logrus.Logger) (*Dashboard, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	clk := clock.New(clock.NewMonotonicTimeProvider())
	sys := engine.New(algorithm, clk, rng.New(seed), log)

	d := &Dashboard{
		screen:   screen,
		sys:      sys,
		clk:      clk,
		boardKey: engine.SortTotalScore,
	}
	d.width, d.height = screen.Size()

	if err := d.initAudio(); err != nil {
		// Non-fatal, the dashboard runs without sound
		log.WithError(err).Warn("audio initialization failed")
	}

	return d, nil
}

func (d *Dashboard) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		d.audioInit = true
	}
	return err
}

// playMatchTone pings once per completed-match batch.
func (d *Dashboard) playMatchTone() {
	if !d.audioInit || d.muted {
		return
	}

	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, toneFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneLength), sine))
}

func (d *Dashboard) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyTab {
			d.boardKey = (d.boardKey + 1) % engine.SortKey(len(engine.SortKeys()))
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if d.clk.IsPaused() {
				d.clk.Resume()
			} else {
				d.clk.Pause()
			}
		case '+', '=':
			d.clk.SetScale(d.clk.Scale() * 2)
		case '-', '_':
			d.clk.SetScale(d.clk.Scale() / 2)
		case 'c':
			d.sys.AddToCreationQueue(100)
		case 'C':
			d.sys.AddToCreationQueue(1000)
		case 'r':
			d.boardAsc = !d.boardAsc
		case 'm':
			d.muted = !d.muted
		}

	case *tcell.EventResize:
		d.width, d.height = d.screen.Size()
		d.screen.Sync()
	}

	return true
}

func (d *Dashboard) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		if x+i >= d.width {
			break
		}
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (d *Dashboard) drawBar(x, y, width, value, max int, style tcell.Style) {
	if max <= 0 {
		max = 1
	}
	filled := value * width / max
	for i := 0; i < width && i < filled; i++ {
		d.screen.SetContent(x+i, y, '█', nil, style)
	}
}

func (d *Dashboard) draw() {
	d.screen.Clear()

	header := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	label := tcell.StyleDefault.Foreground(tcell.ColorGray)
	value := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	paused := ""
	if d.clk.IsPaused() {
		paused = "  [PAUSED]"
	}
	d.drawText(0, 0, header, fmt.Sprintf("matchsim  %s  Y%d M%02d D%02d %02d:%02d  x%.2g%s",
		d.sys.AlgorithmKind(), d.clk.Year(), d.clk.Month(), d.clk.Day(),
		d.clk.Hour(), d.clk.Minute(), d.clk.Scale(), paused))
	d.drawText(0, 1, label, "space pause  +/- speed  c/C add players  tab board  r reverse  m mute  q quit")

	// Population panel
	row := 3
	d.drawText(0, row, header, fmt.Sprintf("Players %d  (backlog %d)", d.sys.PlayerCount(), d.sys.PlayersToCreate()))
	row++

	states := []engine.PlayerState{
		engine.StateOffline, engine.StateOnline, engine.StateInQueue,
		engine.StateInGame, engine.StateDisconnected, engine.StateRejoining,
	}
	colors := map[engine.PlayerState]tcell.Color{
		engine.StateOffline:      tcell.ColorGray,
		engine.StateOnline:       tcell.ColorGreen,
		engine.StateInQueue:      tcell.ColorYellow,
		engine.StateInGame:       tcell.ColorAqua,
		engine.StateDisconnected: tcell.ColorRed,
		engine.StateRejoining:    tcell.ColorPurple,
	}
	total := d.sys.PlayerCount()
	for _, st := range states {
		n := d.sys.NumPlayersInState(st)
		d.drawText(2, row, value, fmt.Sprintf("%-12s %6d", st, n))
		d.drawBar(24, row, 30, n, total, tcell.StyleDefault.Foreground(colors[st]))
		row++
	}

	// Matchmaking panel
	row++
	d.drawText(0, row, header, fmt.Sprintf("Matches %d started, %d ongoing", d.sys.MatchCount(), len(d.sys.OngoingMatchIDs())))
	row++
	d.drawText(2, row, value, fmt.Sprintf("queue %d  pools %d", d.sys.QueueLen(), len(d.sys.DraftedPools())))
	row++
	d.drawText(2, row, value, fmt.Sprintf("avg queue %.0f ms  avg game %.0f ms", d.sys.AvgQueueTime(), d.sys.AvgGameTime()))
	row++

	// Leaderboard panel
	row++
	display := engine.DisplayFor(d.boardKey)
	direction := "top"
	if d.boardAsc {
		direction = "bottom"
	}
	d.drawText(0, row, header, fmt.Sprintf("Leaderboard: %s (%s)", display.Name, direction))
	row++
	for i, snap := range d.sys.SortedPlayers(d.boardKey, d.boardAsc) {
		if row >= d.height {
			break
		}
		stat := fmt.Sprintf(display.Format, snap.StatFor(d.boardKey))
		d.drawText(2, row, value, fmt.Sprintf("%2d. player %-6d %s %s", i+1, snap.ID, display.Abbrev, stat))
		row++
	}

	d.screen.Show()
}

func (d *Dashboard) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- d.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !d.handleInput(ev) {
				return
			}
		case <-ticker.C:
			d.clk.Update()
			d.sys.Tick()

			if n := d.sys.Status().Ints.Get("engine.matches_completed").Load(); n > d.completed {
				d.completed = n
				d.playMatchTone()
			}

			d.draw()
		}
	}
}

func main() {
	seed := flag.Uint64("seed", 42, "PRNG seed")
	algoName := flag.String("algorithm", "FIFO", "draft algorithm: LIFO, FIFO, SkillBased, TraitGrouping")
	population := flag.Int("players", 500, "initial player creation backlog")
	scale := flag.Float64("scale", 10.0, "initial virtual time scale")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	algorithm, ok := engine.ParseAlgorithm(*algoName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown algorithm %q\n", *algoName)
		os.Exit(1)
	}

	d, err := NewDashboard(*seed, algorithm, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer d.screen.Fini()

	d.clk.SetScale(*scale)
	d.sys.AddToCreationQueue(*population)

	d.run()
}
