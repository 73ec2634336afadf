package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestCatalogForLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.French},
		{"fr", language.French},
		{"fr-MA", language.French},
		{"en-US,en;q=0.9", language.English},
		{"de-DE", language.French},
		{"not a locale!!", language.French},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, CatalogForLocale(tt.locale).Tag)
		})
	}
}

func TestCatalogStatuses(t *testing.T) {
	assert.Equal(t, Status{Kind: StatusSuccess, Text: French.Success}, French.SuccessStatus())
	assert.Equal(t, "✗ Erreur: Invalid email", French.ServerErrorStatus("Invalid email").Text)
	assert.Equal(t, "✗ Erreur: Une erreur est survenue. Veuillez réessayer.", French.ServerErrorStatus("").Text)
	assert.NotEqual(t, French.ServerErrorStatus("").Text, French.NetworkErrorStatus().Text)
	assert.Equal(t, StatusError, English.NetworkErrorStatus().Kind)
}
