package gui

import (
	"github.com/jesseduffield/gocui"
)

// queryEditor is the editor attached to the search view while a query is
// being edited. It only lets through keystrokes that keep the buffer a
// well-formed pattern, so a committed query always parses.
func (gui *Gui) queryEditor(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	// rune keybindings don't fire while an editable view is focused, so the
	// discard key lands here rather than in a binding
	if ch == 'q' && mod == gocui.ModNone {
		if err := gui.discardQueryEdit(); err != nil {
			gui.Log.Error(err)
		}
		return true
	}

	gui.Mutexes.StateMutex.Lock()
	defer gui.Mutexes.StateMutex.Unlock()

	if !gui.State.EditingQuery {
		return false
	}

	switch {
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		if gui.State.QueryBuffer == "" {
			return false
		}
		gui.State.QueryBuffer = gui.State.QueryBuffer[:len(gui.State.QueryBuffer)-1]
		v.TextArea.BackSpaceChar()
	case key == gocui.KeySpace:
		if !canAppendToQuery(gui.State.QueryBuffer, ' ') {
			return false
		}
		gui.State.QueryBuffer += " "
		v.TextArea.TypeRune(' ')
	case ch != 0 && mod == gocui.ModNone:
		if !canAppendToQuery(gui.State.QueryBuffer, ch) {
			return false
		}
		gui.State.QueryBuffer += string(ch)
		v.TextArea.TypeRune(ch)
	default:
		return false
	}

	v.RenderTextArea()
	return true
}

// canAppendToQuery enforces the query grammar one keystroke at a time: a
// buffer is a sequence of one-or-two digit tokens separated by single
// spaces, each token optionally closed by a + or - modifier.
func canAppendToQuery(buffer string, ch rune) bool {
	isDigit := ch >= '0' && ch <= '9'
	isModifier := ch == '+' || ch == '-'

	if buffer == "" {
		// if the query is empty, only numbers are allowed
		return isDigit
	}

	lastChar := rune(buffer[len(buffer)-1])
	switch {
	case lastChar == ' ':
		// right after a space, only a digit may follow
		return isDigit
	case lastChar >= '0' && lastChar <= '9':
		if len(buffer) > 1 {
			ntlChar := rune(buffer[len(buffer)-2])
			if ntlChar >= '0' && ntlChar <= '9' {
				// percentages have at most two digits, don't allow a third
				return isModifier || ch == ' '
			}
		}
		return isDigit || isModifier || ch == ' '
	case lastChar == '+' || lastChar == '-':
		// after a modifier, only a space may follow
		return ch == ' '
	}

	return false
}
