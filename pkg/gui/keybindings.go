package gui

import (
	"github.com/jesseduffield/gocui"
)

// Binding - a keybinding mapping a key and modifier to a handler. The
// keypress is only handled if the given view has focus, or handled globally
// if the view is ""
type Binding struct {
	ViewName    string
	Handler     func(*gocui.Gui, *gocui.View) error
	Key         interface{} // FIXME: find out how to get `gocui.Key | rune`
	Modifier    gocui.Modifier
	Description string
}

func wrappedHandler(f func() error) func(g *gocui.Gui, v *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		return f()
	}
}

// GetInitialKeybindings is a function.
func (gui *Gui) GetInitialKeybindings() []*Binding {
	bindings := []*Binding{
		{
			ViewName:    "",
			Key:         'q',
			Modifier:    gocui.ModNone,
			Handler:     wrappedHandler(gui.handleQuit),
			Description: gui.Tr.Quit,
		},
		{
			ViewName: "",
			Key:      gocui.KeyCtrlC,
			Modifier: gocui.ModNone,
			Handler:  wrappedHandler(gui.quit),
		},
		{
			ViewName:    "",
			Key:         'm',
			Modifier:    gocui.ModNone,
			Handler:     wrappedHandler(gui.ignoreWhileEditing(gui.toggleMessageCount)),
			Description: gui.Tr.ToggleCount,
		},
		{
			ViewName:    "",
			Key:         'g',
			Modifier:    gocui.ModNone,
			Handler:     wrappedHandler(gui.ignoreWhileEditing(gui.toggleGraph)),
			Description: gui.Tr.ToggleGraph,
		},
		{
			ViewName:    "",
			Key:         '/',
			Modifier:    gocui.ModNone,
			Handler:     wrappedHandler(gui.ignoreWhileEditing(gui.beginQueryEdit)),
			Description: gui.Tr.EditSearch,
		},
		{
			ViewName: "",
			Key:      's',
			Modifier: gocui.ModNone,
			Handler:  wrappedHandler(gui.ignoreWhileEditing(gui.beginQueryEdit)),
		},
		{
			ViewName: "search",
			Key:      gocui.KeyEnter,
			Modifier: gocui.ModNone,
			Handler:  wrappedHandler(gui.commitQueryEdit),
		},
		{
			ViewName: "search",
			Key:      gocui.KeyEsc,
			Modifier: gocui.ModNone,
			Handler:  wrappedHandler(gui.discardQueryEdit),
		},
	}

	return bindings
}

func (gui *Gui) keybindings(g *gocui.Gui) error {
	for _, binding := range gui.GetInitialKeybindings() {
		if err := g.SetKeybinding(binding.ViewName, binding.Key, binding.Modifier, binding.Handler); err != nil {
			return err
		}
	}
	return nil
}

func (gui *Gui) commitQueryEdit() error {
	return gui.endQueryEdit(true)
}

func (gui *Gui) discardQueryEdit() error {
	return gui.endQueryEdit(false)
}

// handleQuit discards an in-flight query edit instead of quitting
func (gui *Gui) handleQuit() error {
	if gui.isEditingQuery() {
		return gui.discardQueryEdit()
	}
	return gui.quit()
}

// ignoreWhileEditing swallows a keypress while the query editor is open, so
// editing keys never trigger panel actions
func (gui *Gui) ignoreWhileEditing(f func() error) func() error {
	return func() error {
		if gui.isEditingQuery() {
			return nil
		}
		return f()
	}
}

func (gui *Gui) isEditingQuery() bool {
	gui.Mutexes.StateMutex.Lock()
	defer gui.Mutexes.StateMutex.Unlock()
	return gui.State.EditingQuery
}
