package i18n

// TranslationSet is a set of localised strings for a given language
type TranslationSet struct {
	ErrorOccurred     string
	NotEnoughSpace    string
	SearchTitle       string
	UpcomingTitle     string
	HistoryTitle      string
	StatusTitle       string
	CurrentSearch     string
	Online            string
	Offline           string
	EditSearch        string
	ToggleCount       string
	ToggleGraph       string
	Quit              string
	CommitSearchHint  string
	DiscardSearchHint string
}
