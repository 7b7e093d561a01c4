package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		pref string
		want language.Tag
	}{
		{name: "empty falls back to english", pref: "", want: language.English},
		{name: "plain tag", pref: "ru", want: language.Russian},
		{name: "accept-language header", pref: "ru-RU,ru;q=0.9,en;q=0.8", want: language.Russian},
		{name: "english region", pref: "en-GB", want: language.English},
		{name: "unsupported language", pref: "ja", want: language.English},
		{name: "garbage", pref: "!!!", want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pref).Tag)
		})
	}
}

func TestCatalogsAreComplete(t *testing.T) {
	for _, c := range catalogs {
		assert.NotEmpty(t, c.Save, c.Tag.String())
		assert.NotEmpty(t, c.Saving, c.Tag.String())
		assert.NotEmpty(t, c.Create, c.Tag.String())
		assert.NotEmpty(t, c.Creating, c.Tag.String())
		assert.NotEqual(t, c.Save, c.Saving, c.Tag.String())
	}
}
