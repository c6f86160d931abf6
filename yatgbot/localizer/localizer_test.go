package localizer_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/localizer"
)

func locales() fstest.MapFS {
	return fstest.MapFS{
		"locales/en.json": &fstest.MapFile{
			Data: []byte(`{"menu": {"start": "Hello, {name}!", "help": "Help"}, "count": 3}`),
		},
		"locales/pt-BR.yaml": &fstest.MapFile{
			Data: []byte("menu:\n  start: \"Olá, {name}!\"\n"),
		},
		"locales/README.md": &fstest.MapFile{Data: []byte("ignored")},
	}
}

func TestLocalizer_Lookup(t *testing.T) {
	t.Parallel()

	loc, err := localizer.NewLocalizer(locales(), "en")
	require.Nil(t, err)

	assert.Equal(t, "en", loc.DefaultLang())
	assert.Equal(t, "Help", loc.T("en", "menu.help"))
	assert.Equal(t, "3", loc.T("en", "count"))
	assert.Equal(t, "Help", loc.T("pt-BR", "menu.help"))
	assert.Equal(t, "missing.key", loc.T("pt-BR", "missing.key"))
	assert.Equal(t, "Olá, Ana!", loc.Format("pt-BR", "menu.start", map[string]any{"name": "Ana"}))
	assert.Equal(t, "Hello, {name}!", loc.Lang("en")("menu.start"))
}

func TestLocalizer_Match(t *testing.T) {
	t.Parallel()

	loc, err := localizer.NewLocalizer(locales(), "en")
	require.Nil(t, err)

	assert.Equal(t, "pt-BR", loc.Match("pt-br"))
	assert.Equal(t, "en", loc.Match("en"))
	assert.Equal(t, "en", loc.Match(""))
	assert.Equal(t, "en", loc.Match("ja"))
}

func TestLocalizer_Errors(t *testing.T) {
	t.Parallel()

	_, err := localizer.NewLocalizer(locales(), "de")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, localizer.ErrNoDefaultLocale)

	_, err = localizer.NewLocalizer(fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{`)},
	}, "en")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, localizer.ErrFailedToDecodeLocale)

	_, err = localizer.NewLocalizer(fstest.MapFS{
		"not a tag!.json": &fstest.MapFile{Data: []byte(`{}`)},
	}, "en")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, localizer.ErrInvalidLanguage)
}
