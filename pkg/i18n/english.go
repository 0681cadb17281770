package i18n

func englishSet() TranslationSet {
	return TranslationSet{
		ErrorOccurred:     "An error occurred! Please create an issue at https://github.com/s-hammon/lazyrng/issues",
		NotEnoughSpace:    "Not enough space to render panels (need at least 60x20)",
		SearchTitle:       "Search",
		UpcomingTitle:     "Upcoming",
		HistoryTitle:      "History",
		StatusTitle:       "Status",
		CurrentSearch:     "CURRENT SEARCH: ",
		Online:            "ONLINE",
		Offline:           "OFFLINE",
		EditSearch:        "edit search",
		ToggleCount:       "message count",
		ToggleGraph:       "graph",
		Quit:              "quit",
		CommitSearchHint:  "enter: commit",
		DiscardSearchHint: "esc: discard",
	}
}
