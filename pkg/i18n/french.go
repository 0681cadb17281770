package i18n

func frenchSet() TranslationSet {
	return TranslationSet{
		NotEnoughSpace: "Pas assez de place pour afficher les panneaux (60x20 minimum)",
		SearchTitle:    "Recherche",
		UpcomingTitle:  "À venir",
		HistoryTitle:   "Historique",
		StatusTitle:    "État",
		CurrentSearch:  "RECHERCHE ACTUELLE : ",
		Online:         "EN LIGNE",
		Offline:        "HORS LIGNE",
		Quit:           "quitter",
	}
}
