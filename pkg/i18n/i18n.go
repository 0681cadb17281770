package i18n

import (
	"strings"

	"github.com/cloudfoundry/jibber_jabber"
	"github.com/imdario/mergo"
	"github.com/sirupsen/logrus"
)

// NewTranslationSet detects the user's language and returns the matching
// set. Partial sets are merged over the English base so untranslated
// strings still render.
func NewTranslationSet(log *logrus.Entry) *TranslationSet {
	language := detectLanguage(jibber_jabber.DetectLanguage)
	log.Info("language: " + language)

	baseSet := englishSet()

	for languageCode, translationSet := range translationSets() {
		if strings.HasPrefix(language, languageCode) {
			_ = mergo.Merge(&baseSet, translationSet, mergo.WithOverride)
			return &baseSet
		}
	}

	return &baseSet
}

// translationSets returns all the partial non-English translation sets
func translationSets() map[string]TranslationSet {
	return map[string]TranslationSet{
		"fr": frenchSet(),
	}
}

// detectLanguage extracts user language from environment
func detectLanguage(langDetector func() (string, error)) string {
	if userLang, err := langDetector(); err == nil {
		return userLang
	}

	return "C"
}
