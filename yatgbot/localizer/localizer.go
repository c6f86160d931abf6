// Package localizer loads bot texts per language and picks the closest
// language for a user's language_code.
//
// Every file in the tree is one language named after its file: en.json,
// pt-BR.yaml. Nested objects are flattened into dotted keys, so
//
//	{"menu": {"start": "Hello, {name}!"}}
//
// is looked up as "menu.start".
//
// Example usage:
//
//	//go:embed locales
//	var locales embed.FS
//
//	loc, err := localizer.NewLocalizer(locales, "en")
//	text := loc.Format(loc.Match("pt-br"), "menu.start", map[string]any{"name": user.FirstName})
package localizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

type Localizer struct {
	strings     map[string]map[string]string
	defaultLang string
	tags        []language.Tag
	matcher     language.Matcher
}

// NewLocalizer walks fsys for .json, .yaml and .yml files. defaultLang
// must be one of them.
func NewLocalizer(fsys fs.FS, defaultLang string) (*Localizer, yaerrors.Error) {
	loc := &Localizer{
		strings: make(map[string]map[string]string),
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}

		ext := path.Ext(name)
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			return nil
		}

		return loc.load(fsys, name, ext)
	})
	if err != nil {
		if yaErr, ok := yaerrors.As(err); ok {
			return nil, yaErr.Wrap("[LOCALIZER] failed to load locales")
		}

		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToReadLocale),
			"[LOCALIZER] failed to walk locales",
		)
	}

	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(err, ErrInvalidLanguage),
			"[LOCALIZER] default language "+defaultLang,
		)
	}

	loc.defaultLang = tag.String()

	if _, ok := loc.strings[loc.defaultLang]; !ok {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrNoDefaultLocale,
			"[LOCALIZER] default language "+defaultLang,
		)
	}

	loc.buildMatcher()

	return loc, nil
}

func (l *Localizer) load(fsys fs.FS, name, ext string) error {
	base := strings.TrimSuffix(path.Base(name), ext)

	tag, err := language.Parse(base)
	if err != nil {
		return yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(err, ErrInvalidLanguage),
			"[LOCALIZER] file "+name,
		)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToReadLocale),
			"[LOCALIZER] file "+name,
		)
	}

	var tree map[string]any

	if ext == ".json" {
		err = json.Unmarshal(data, &tree)
	} else {
		err = yaml.Unmarshal(data, &tree)
	}

	if err != nil {
		return yaerrors.FromError(
			http.StatusBadRequest,
			errors.Join(err, ErrFailedToDecodeLocale),
			"[LOCALIZER] file "+name,
		)
	}

	lang := tag.String()

	if l.strings[lang] == nil {
		l.strings[lang] = make(map[string]string)
	}

	flatten(l.strings[lang], "", tree)

	return nil
}

func flatten(out map[string]string, prefix string, tree map[string]any) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(out, key, v)
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

// buildMatcher puts the default language first, it is the fallback of
// language.Matcher.
func (l *Localizer) buildMatcher() {
	l.tags = []language.Tag{language.MustParse(l.defaultLang)}

	for lang := range l.strings {
		if lang != l.defaultLang {
			l.tags = append(l.tags, language.MustParse(lang))
		}
	}

	l.matcher = language.NewMatcher(l.tags)
}

// DefaultLang is the canonical form of the language given to NewLocalizer.
func (l *Localizer) DefaultLang() string {
	return l.defaultLang
}

// Match returns the loaded language closest to a Telegram language_code.
// Unknown or empty codes fall back to the default language.
func (l *Localizer) Match(languageCode string) string {
	if languageCode == "" {
		return l.defaultLang
	}

	_, index, confidence := l.matcher.Match(language.Make(languageCode))
	if confidence == language.No {
		return l.defaultLang
	}

	return l.tags[index].String()
}

// T returns the text of key in lang, then in the default language, then
// the key itself.
func (l *Localizer) T(lang, key string) string {
	if val, ok := l.strings[lang][key]; ok {
		return val
	}

	if val, ok := l.strings[l.defaultLang][key]; ok {
		return val
	}

	return key
}

// Format is T with {name} placeholders replaced from params.
func (l *Localizer) Format(lang, key string, params map[string]any) string {
	text := l.T(lang, key)

	if len(params) == 0 {
		return text
	}

	pairs := make([]string, 0, len(params)*2)

	for name, value := range params {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}

	return strings.NewReplacer(pairs...).Replace(text)
}

// Lang binds T to one language.
func (l *Localizer) Lang(lang string) func(key string) string {
	return func(key string) string {
		return l.T(lang, key)
	}
}
