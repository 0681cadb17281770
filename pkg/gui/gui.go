package gui

import (
	"os"
	"time"

	throttle "github.com/boz/go-throttle"
	"github.com/jesseduffield/gocui"
	lcUtils "github.com/jesseduffield/lazycore/pkg/utils"
	"github.com/s-hammon/lazyrng/pkg/bus"
	"github.com/s-hammon/lazyrng/pkg/config"
	"github.com/s-hammon/lazyrng/pkg/i18n"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// OverlappingEdges determines if panel edges overlap
var OverlappingEdges = false

// Gui wraps the gocui Gui object which handles rendering and events. It is
// the UI worker: it owns the UiState exclusively and is the only consumer of
// the bus.
type Gui struct {
	g      *gocui.Gui
	Log    *logrus.Entry
	Config *config.AppConfig
	Tr     *i18n.TranslationSet
	Bus    *bus.Bus
	State  guiState
	Views  Views

	// stop is the shared shutdown flag: the memory worker watches it too
	stop     chan struct{}
	stopOnce func()

	Mutexes
}

type Mutexes struct {
	StateMutex deadlock.Mutex
}

// guiState is the rendered model. Only the UI worker mutates it; the memory
// worker talks to us exclusively through the bus.
type guiState struct {
	// whether we are reading a live process and have found the rng
	Online bool

	// the current index into the MT
	Mti int

	// upcoming percentage values; the current one is element 0
	NextPercentages []int

	// the committed search query matches run against
	Query string

	// an editing buffer for the query that can be committed or discarded
	QueryBuffer string

	// index runs where the query matches NextPercentages
	SearchMatches [][]int

	// total count of messages actually processed
	MsgCount int

	// whether to show the message count in the status panel
	DisplayCount bool

	// whether the query is being edited right now
	EditingQuery bool

	// whether the data panel shows the history graph instead of the list
	ShowGraph bool

	// recorded per-tick samples feeding the graph
	Samples *SampleHistory
}

// NewGui builds a new gui handler
func NewGui(log *logrus.Entry, tr *i18n.TranslationSet, config *config.AppConfig, b *bus.Bus, stop chan struct{}, stopOnce func()) (*Gui, error) {
	gui := &Gui{
		Log:    log.WithField("worker", "ui"),
		Config: config,
		Tr:     tr,
		Bus:    b,
		State: guiState{
			Mti:     -1,
			Samples: NewSampleHistory(config.UserConfig.Stats.MaxSamples),
		},
		stop:     stop,
		stopOnce: stopOnce,
	}

	deadlock.Opts.Disable = !gui.Config.Debug
	deadlock.Opts.DeadlockTimeout = 10 * time.Second

	return gui, nil
}

// Run sets up the gui with keybindings and starts the main loop. It returns
// on quit or on a broken terminal contract; either way the stop flag is set
// on the way out so the memory worker winds down too.
func (gui *Gui) Run() error {
	defer gui.stopOnce()

	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode:       gocui.OutputTrue,
		SupportOverlaps:  OverlappingEdges,
		PlayRecording:    false,
		RuneReplacements: map[rune]string{},
	})
	if err != nil {
		return err
	}
	defer g.Close()

	if !gui.Config.UserConfig.Gui.IgnoreMouseEvents {
		g.Mouse = true
	}

	gui.g = g

	// if the deadlock package wants to report a deadlock, we first need to
	// close the gui so that we can actually read what it prints.
	deadlock.Opts.LogBuf = lcUtils.NewOnceWriter(os.Stderr, func() {
		gui.g.Close()
	})

	if err := gui.SetColorScheme(); err != nil {
		return err
	}

	g.SetManager(gocui.ManagerFunc(gui.layout))

	if err := gui.createAllViews(); err != nil {
		return err
	}

	if err := gui.keybindings(g); err != nil {
		return err
	}

	throttledRefresh := throttle.ThrottleFunc(time.Millisecond*50, true, gui.renderPanels)
	defer throttledRefresh.Stop()

	go gui.consumeBus(throttledRefresh.Trigger)

	throttledRefresh.Trigger()

	err = g.MainLoop()
	if err == gocui.ErrQuit {
		return nil
	}
	return err
}

// consumeBus drains message batches off the bus on the UI cadence. Matching
// only re-runs when a batch actually changed the state.
func (gui *Gui) consumeBus(refresh func()) {
	ticker := time.NewTicker(gui.Config.UserConfig.Gui.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-gui.stop:
			gui.Log.Debug("ui worker: bus consumer exiting")
			return
		case <-ticker.C:
			if gui.processMessages() > 0 {
				gui.runSearch()
				refresh()
			}
		}
	}
}

// processMessages folds one batch of bus messages into the state, returning
// how many were consumed. The batch bound keeps a burst of messages from
// starving input handling.
func (gui *Gui) processMessages() int {
	batch := gui.Bus.DrainBatch(gui.Config.UserConfig.Gui.MessageBatchSize)
	if len(batch) == 0 {
		return 0
	}

	gui.Mutexes.StateMutex.Lock()
	defer gui.Mutexes.StateMutex.Unlock()

	for _, msg := range batch {
		switch msg := msg.(type) {
		case bus.OnlineStatus:
			gui.State.Online = msg.Online
		case bus.MtiValue:
			gui.State.Mti = msg.Mti
		case bus.NextPercentages:
			gui.State.NextPercentages = msg.Percentages
			gui.recordSample()
		default:
			gui.Log.Warnf("unknown message: %T", msg)
		}
		gui.State.MsgCount++
	}

	return len(batch)
}

func (gui *Gui) quit() error {
	gui.Log.Info("user pressed exit key, exiting")
	return gocui.ErrQuit
}

// Update wraps a state-touching closure for the gocui event loop
func (gui *Gui) Update(f func() error) {
	gui.g.Update(func(*gocui.Gui) error { return f() })
}
