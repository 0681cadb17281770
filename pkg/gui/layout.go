package gui

import (
	"github.com/jesseduffield/gocui"
)

// the layout needs at least this much terminal to make sense
const (
	minimumWidth  = 60
	minimumHeight = 20
)

// heights of the fixed strips at the top and bottom of the screen
const (
	searchPanelHeight = 5
	statusPanelHeight = 5
)

// layout is called for every screen re-render e.g. when the screen is
// resized. The arrangement is fixed:
//
//	[    SEARCH    ]
//	[   LIST  OF   ]
//	[  PERCENTAGES ]
//	[    STATUS    ]
func (gui *Gui) layout(g *gocui.Gui) error {
	g.Highlight = true
	width, height := g.Size()

	if height < minimumHeight || width < minimumWidth {
		v, err := g.SetView("limit", 0, 0, width-1, height-1, 0)
		if err != nil && err.Error() != UNKNOWN_VIEW_ERROR_MSG {
			return err
		}
		v.Title = gui.Tr.NotEnoughSpace
		v.Visible = true
		v.Wrap = true
		_, _ = g.SetViewOnTop("limit")
		return nil
	}
	if gui.Views.Limit != nil {
		gui.Views.Limit.Visible = false
	}

	viewDimensions := map[string][4]int{
		"search": {0, 0, width - 1, searchPanelHeight - 1},
		"data":   {0, searchPanelHeight, width - 1, height - statusPanelHeight - 1},
		"status": {0, height - statusPanelHeight, width - 1, height - 1},
	}

	for viewName, dims := range viewDimensions {
		_, err := g.SetView(viewName, dims[0], dims[1], dims[2], dims[3], 0)
		if err != nil && err.Error() != UNKNOWN_VIEW_ERROR_MSG {
			return err
		}
	}

	return nil
}
