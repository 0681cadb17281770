package gui

import (
	"github.com/jesseduffield/gocui"
)

const UNKNOWN_VIEW_ERROR_MSG = "unknown view"

type Views struct {
	// the query editor strip at the top
	Search *gocui.View

	// the upcoming-percentages grid (or the history graph)
	Data *gocui.View

	// online/offline plus the message counter at the bottom
	Status *gocui.View

	// will cover everything when the terminal gets too small
	Limit *gocui.View
}

type viewNameMapping struct {
	viewPtr **gocui.View
	name    string
}

func (gui *Gui) orderedViewNameMappings() []viewNameMapping {
	return []viewNameMapping{
		{viewPtr: &gui.Views.Search, name: "search"},
		{viewPtr: &gui.Views.Data, name: "data"},
		{viewPtr: &gui.Views.Status, name: "status"},

		// this guy will cover everything else when it appears
		{viewPtr: &gui.Views.Limit, name: "limit"},
	}
}

func (gui *Gui) createAllViews() error {
	var err error
	for _, mapping := range gui.orderedViewNameMappings() {
		*mapping.viewPtr, err = gui.prepareView(mapping.name)
		if err != nil && err.Error() != UNKNOWN_VIEW_ERROR_MSG {
			return err
		}
		(*mapping.viewPtr).FgColor = gocui.ColorDefault
	}

	gui.Views.Search.Title = gui.Tr.SearchTitle
	gui.Views.Search.Editable = true
	gui.Views.Search.Editor = gocui.EditorFunc(gui.queryEditor)

	gui.Views.Data.Title = gui.Tr.UpcomingTitle

	gui.Views.Status.Title = gui.Tr.StatusTitle

	gui.Views.Limit.Visible = false
	gui.Views.Limit.Title = gui.Tr.NotEnoughSpace
	gui.Views.Limit.Wrap = true

	if _, err := gui.g.SetCurrentView("data"); err != nil {
		return err
	}

	return nil
}

// prepareView creates a view with arbitrary bounds; the layout function
// positions it properly afterwards
func (gui *Gui) prepareView(viewName string) (*gocui.View, error) {
	return gui.g.SetView(viewName, 0, 0, 10, 10, 0)
}
