package gui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/s-hammon/lazyrng/pkg/utils"
)

func (gui *Gui) renderStatusPanel() {
	gui.Mutexes.StateMutex.Lock()

	online := gui.Tr.Offline
	onlineColor := gui.queryThemeColor(gui.Config.UserConfig.Gui.Theme.OfflineColor)
	if gui.State.Online {
		online = gui.Tr.Online
		onlineColor = gui.queryThemeColor(gui.Config.UserConfig.Gui.Theme.OnlineColor)
	}

	text := utils.MultiColoredString(online, onlineColor, color.Bold)
	if gui.State.Mti >= 0 {
		text += fmt.Sprintf("  mti: %d", gui.State.Mti)
	}
	if gui.State.DisplayCount {
		text += fmt.Sprintf(" (%d)", gui.State.MsgCount)
	}
	gui.Mutexes.StateMutex.Unlock()

	width, _ := gui.Views.Status.Size()
	_ = gui.renderString(gui.g, "status", "\n"+utils.Centered(text, width))
}

func (gui *Gui) toggleMessageCount() error {
	gui.Mutexes.StateMutex.Lock()
	gui.State.DisplayCount = !gui.State.DisplayCount
	gui.Mutexes.StateMutex.Unlock()

	gui.renderStatusPanel()
	return nil
}
