package gui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/s-hammon/lazyrng/pkg/utils"
)

// each list cell is "nnn: pp" plus blank space to the next column
const dataColumnWidth = 12

func (gui *Gui) renderDataPanel() {
	gui.Mutexes.StateMutex.Lock()
	showGraph := gui.State.ShowGraph
	gui.Mutexes.StateMutex.Unlock()

	if showGraph {
		gui.renderGraphPanel()
		return
	}

	gui.Mutexes.StateMutex.Lock()
	content := gui.dataPanelContent()
	gui.Mutexes.StateMutex.Unlock()

	_ = gui.renderString(gui.g, "data", content)
}

// dataPanelContent lays the upcoming percentages out in columns, walking
// down each column before moving right, and highlights the positions where
// the committed query matches. The position starting a match stands out
// more than the rest of its run. Callers hold the state mutex.
func (gui *Gui) dataPanelContent() string {
	pcs := gui.State.NextPercentages
	if len(pcs) == 0 {
		return ""
	}

	width, height := gui.Views.Data.Size()
	// leave one char of padding inside the borders
	width, height = width-2, utils.Max(height-2, 1)

	positions := map[int]bool{}
	positionHeaders := map[int]bool{}
	for _, run := range gui.State.SearchMatches {
		positionHeaders[run[0]] = true
		for _, idx := range run {
			positions[idx] = true
		}
	}

	matchColor := gui.queryThemeColor(gui.Config.UserConfig.Gui.Theme.MatchColor)

	numCols := utils.Max(width/dataColumnWidth, 1)
	maxElements := height * numCols

	numShown := utils.Min(len(pcs), maxElements)
	rows := make([]string, height)

	for i := 0; i < numShown; i++ {
		cell := fmt.Sprintf("%3d: %2d", i, pcs[i])
		switch {
		case positionHeaders[i]:
			cell = utils.MultiColoredString(cell, matchColor, color.ReverseVideo)
		case positions[i]:
			cell = utils.ColoredString(cell, matchColor)
		}

		row := i % height
		rows[row] += " " + utils.WithPadding(cell, dataColumnWidth-1)
	}

	return strings.Join(rows, "\n")
}
