package gui

import (
	"fmt"

	"github.com/jesseduffield/gocui"
)

func (gui *Gui) setViewContent(v *gocui.View, s string) error {
	v.Clear()
	fmt.Fprint(v, s)
	return nil
}

// renderString resets the origin of a view and sets its content
func (gui *Gui) renderString(g *gocui.Gui, viewName, s string) error {
	g.Update(func(*gocui.Gui) error {
		v, err := g.View(viewName)
		if err != nil {
			return nil // return gracefully if view has been deleted
		}
		if err := v.SetOrigin(0, 0); err != nil {
			return err
		}
		if err := v.SetCursor(0, 0); err != nil {
			return err
		}
		return gui.setViewContent(v, s)
	})
	return nil
}

// renderPanels redraws every panel's content from the current state
func (gui *Gui) renderPanels() {
	gui.renderSearchPanel()
	gui.renderDataPanel()
	gui.renderStatusPanel()
}
