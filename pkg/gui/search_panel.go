package gui

import (
	"github.com/fatih/color"
	"github.com/jesseduffield/gocui"
	"github.com/s-hammon/lazyrng/pkg/search"
	"github.com/s-hammon/lazyrng/pkg/utils"
)

// runSearch re-runs the pattern matcher against the committed query
func (gui *Gui) runSearch() {
	gui.Mutexes.StateMutex.Lock()
	defer gui.Mutexes.StateMutex.Unlock()

	if gui.State.Query == "" {
		gui.State.SearchMatches = nil
		return
	}

	matches, err := search.Scan(gui.State.Query, gui.State.NextPercentages)
	if err != nil {
		gui.Log.Warnf("can't scan for pattern %q: %v", gui.State.Query, err)
		gui.State.SearchMatches = nil
		return
	}
	gui.State.SearchMatches = matches
}

func (gui *Gui) renderSearchPanel() {
	gui.Mutexes.StateMutex.Lock()

	// while editing, the query editor owns the view's content
	if gui.State.EditingQuery {
		gui.Mutexes.StateMutex.Unlock()
		return
	}

	queryColor := color.FgWhite
	switch {
	case gui.State.Query != "" && len(gui.State.SearchMatches) > 0:
		queryColor = gui.queryThemeColor(gui.Config.UserConfig.Gui.Theme.MatchColor)
	case gui.State.Query != "":
		queryColor = gui.queryThemeColor(gui.Config.UserConfig.Gui.Theme.OfflineColor)
	}

	text := gui.Tr.CurrentSearch + utils.ColoredString(gui.State.Query, queryColor)
	gui.Mutexes.StateMutex.Unlock()

	width, _ := gui.Views.Search.Size()
	_ = gui.renderString(gui.g, "search", "\n"+utils.Centered(text, width))
}

// queryThemeColor reduces a theme attribute list to one fatih color for
// inline text
func (gui *Gui) queryThemeColor(keys []string) color.Attribute {
	if len(keys) == 0 {
		return color.FgWhite
	}
	return utils.GetColorAttribute(keys[0])
}

func (gui *Gui) beginQueryEdit() error {
	gui.Mutexes.StateMutex.Lock()

	gui.Log.Debug("entering query update state")
	if gui.State.EditingQuery {
		gui.Log.Warn("entering query update state more than once")
	}

	gui.State.EditingQuery = true
	gui.State.QueryBuffer = gui.State.Query

	gui.Views.Search.Title = gui.Tr.SearchTitle + " (" + gui.Tr.CommitSearchHint + ", " + gui.Tr.DiscardSearchHint + ")"
	gui.Views.Search.FgColor = gui.GetColor(gui.Config.UserConfig.Gui.Theme.EditingColor)
	gui.Views.Search.TextArea.Clear()
	gui.Views.Search.TextArea.TypeString(gui.State.QueryBuffer)
	gui.Views.Search.RenderTextArea()
	gui.Mutexes.StateMutex.Unlock()

	gui.g.Cursor = true
	if _, err := gui.g.SetCurrentView("search"); err != nil {
		return err
	}
	gui.renderPanels()
	return nil
}

// endQueryEdit leaves editing mode; when confirm is set the buffer becomes
// the committed query
func (gui *Gui) endQueryEdit(confirm bool) error {
	gui.Mutexes.StateMutex.Lock()

	gui.Log.Debug("exiting query update state")
	if !gui.State.EditingQuery {
		gui.Log.Warn("exiting query update state more than once")
	}

	gui.State.EditingQuery = false
	gui.g.Cursor = false
	gui.Views.Search.Title = gui.Tr.SearchTitle
	gui.Views.Search.FgColor = gocui.ColorDefault

	if confirm {
		gui.State.Query = gui.State.QueryBuffer
		gui.Log.Infof("setting query to: %q", gui.State.Query)
	}
	gui.State.QueryBuffer = ""
	gui.Views.Search.TextArea.Clear()
	gui.Views.Search.RenderTextArea()
	gui.Mutexes.StateMutex.Unlock()

	if _, err := gui.g.SetCurrentView("data"); err != nil {
		return err
	}

	gui.runSearch()
	gui.renderPanels()
	return nil
}
