package app

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/s-hammon/lazyrng/pkg/bus"
	"github.com/s-hammon/lazyrng/pkg/config"
	"github.com/s-hammon/lazyrng/pkg/ffxii"
	"github.com/s-hammon/lazyrng/pkg/gui"
	"github.com/s-hammon/lazyrng/pkg/i18n"
	"github.com/s-hammon/lazyrng/pkg/log"
	"github.com/sirupsen/logrus"
)

// App struct
type App struct {
	closers []io.Closer

	Config *config.AppConfig
	Log    *logrus.Entry
	Tr     *i18n.TranslationSet
	Bus    *bus.Bus
	Worker *ffxii.Worker
	Gui    *gui.Gui

	// stop is the single cancellation flag both workers watch
	stop     chan struct{}
	stopOnce sync.Once
}

// NewApp bootstrap a new application
func NewApp(config *config.AppConfig) (*App, error) {
	app := &App{
		closers: []io.Closer{},
		Config:  config,
		stop:    make(chan struct{}),
	}
	app.Log = log.NewLogger(config)
	app.Tr = i18n.NewTranslationSet(app.Log)
	app.Bus = bus.New(app.Log)
	app.Worker = ffxii.NewWorker(config.UserConfig.Observer, app.Bus, app.Log)

	var err error
	app.Gui, err = gui.NewGui(app.Log, app.Tr, config, app.Bus, app.stop, app.SignalStop)
	if err != nil {
		return app, err
	}
	return app, nil
}

// Run starts the memory worker in the background and hands the foreground to
// the UI. When the UI returns, the stop flag is flipped and the worker winds
// down with it; the worker itself only returns once the flag is set.
func (app *App) Run() error {
	if err := checkTerminalSpace(); err != nil {
		return err
	}

	workerDone := make(chan struct{})
	go func() {
		app.Worker.Run(app.stop)
		close(workerDone)
	}()

	err := app.Gui.Run()

	app.SignalStop()
	select {
	case <-workerDone:
	case <-time.After(2 * app.Config.UserConfig.Observer.ObserveInterval):
		app.Log.Warn("memory worker did not stop in time")
	}

	return err
}

// SignalStop flips the shared stop flag. Safe to call more than once.
func (app *App) SignalStop() {
	app.stopOnce.Do(func() {
		close(app.stop)
	})
}

// checkTerminalSpace makes sure the layout has room before we take over the
// screen. Waiting briefly on a resize covers terminals that report zero size
// while starting up.
func checkTerminalSpace() error {
	width, height, err := terminal.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	if width == 0 || height == 0 {
		winch := make(chan os.Signal, 1)
		signal.Notify(winch, syscall.SIGWINCH)
		defer signal.Stop(winch)
		select {
		case <-winch:
			width, height, err = terminal.GetSize(int(os.Stdin.Fd()))
			if err != nil {
				return err
			}
		case <-time.After(time.Second):
			return fmt.Errorf("there is no available terminal space")
		}
	}

	if width < 60 || height < 20 {
		return fmt.Errorf("need a terminal at least 60x20 big, got %dx%d", width, height)
	}
	return nil
}

// Close closes any resources
func (app *App) Close() error {
	for _, closer := range app.closers {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return nil
}
