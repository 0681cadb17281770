package i18n

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "C", detectLanguage(func() (string, error) {
		return "", assert.AnError
	}))
	assert.Equal(t, "fr-FR", detectLanguage(func() (string, error) {
		return "fr-FR", nil
	}))
}

func TestNewTranslationSetFallsBackToEnglish(t *testing.T) {
	log := logrus.New()
	log.Out = io.Discard

	tr := NewTranslationSet(logrus.NewEntry(log))
	assert.NotEmpty(t, tr.Online)
	assert.NotEmpty(t, tr.NotEnoughSpace)
	// partial sets leave untranslated strings populated from the base
	assert.NotEmpty(t, tr.CommitSearchHint)
	assert.NotEmpty(t, tr.EditSearch)
}
