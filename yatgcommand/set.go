package yatgcommand

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// RenameRule converts registered names into the names users type.
type RenameRule string

const (
	RenameNone       RenameRule = ""
	RenameSnakeCase  RenameRule = "snake_case"
	RenameLowercase  RenameRule = "lowercase"
	RenamePascalCase RenameRule = "PascalCase"
	RenameCamelCase  RenameRule = "camelCase"
)

// UnmarshalText accepts the rule names, so a rule can come from config.
func (r *RenameRule) UnmarshalText(text []byte) error {
	switch rule := RenameRule(text); rule {
	case RenameNone, RenameSnakeCase, RenameLowercase, RenamePascalCase, RenameCamelCase:
		*r = rule

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRenameRule, string(text))
	}
}

// Apply renames name according to the rule.
//
// Example:
//
//	yatgcommand.RenameSnakeCase.Apply("StartGame") // "start_game"
//	yatgcommand.RenameCamelCase.Apply("StartGame") // "startGame"
func (r RenameRule) Apply(name string) string {
	switch r {
	case RenameSnakeCase:
		return strings.Join(splitWords(name, cases.Lower(language.Und)), "_")
	case RenameLowercase:
		return cases.Lower(language.Und).String(name)
	case RenamePascalCase:
		return strings.Join(splitWords(name, cases.Title(language.Und)), "")
	case RenameCamelCase:
		words := splitWords(name, cases.Title(language.Und))
		if len(words) > 0 {
			words[0] = cases.Lower(language.Und).String(words[0])
		}

		return strings.Join(words, "")
	default:
		return name
	}
}

// splitWords breaks an identifier on separators and case changes, so
// "HTTPStatusCode" and "http_status_code" both become http, status, code.
func splitWords(name string, caser cases.Caser) []string {
	var (
		words []string
		word  []rune
	)

	flush := func() {
		if len(word) > 0 {
			words = append(words, caser.String(string(word)))

			word = word[:0]
		}
	}

	runes := []rune(name)

	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()

			continue
		}

		if unicode.IsUpper(r) && len(word) > 0 {
			prev := word[len(word)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if !unicode.IsUpper(prev) || nextLower {
				flush()
			}
		}

		word = append(word, r)
	}

	flush()

	return words
}

type entry struct {
	name        string
	description string
}

// Set is the list of commands a bot understands.
//
// Example:
//
//	commands := yatgcommand.NewSet("my_bot", yatgcommand.RenameSnakeCase).
//		Add("Start", "start the bot").
//		Add("SetLanguage", "choose the interface language")
//
//	name, err := commands.Match(cmd) // "/set_language@my_bot ru" → "SetLanguage"
type Set struct {
	botName string
	rule    RenameRule
	entries []entry
	byName  map[string]int
}

func NewSet(botName string, rule RenameRule) *Set {
	return &Set{
		botName: botName,
		rule:    rule,
		byName:  make(map[string]int),
	}
}

// Add registers a command. Registering a second command that renames to the
// same text replaces the first one.
func (s *Set) Add(name, description string) *Set {
	renamed := s.rule.Apply(name)

	if i, ok := s.byName[renamed]; ok {
		s.entries[i] = entry{name: name, description: description}

		return s
	}

	s.byName[renamed] = len(s.entries)
	s.entries = append(s.entries, entry{name: name, description: description})

	return s
}

// Match returns the registered name of cmd.
func (s *Set) Match(cmd Command) (string, yaerrors.Error) {
	if cmd.BotName != "" && cmd.BotName != s.botName {
		return "", yaerrors.FromError(
			http.StatusBadRequest,
			ErrWrongBotName,
			fmt.Sprintf("[COMMAND] /%s@%s, expected @%s", cmd.Name, cmd.BotName, s.botName),
		)
	}

	i, ok := s.byName[cmd.Name]
	if !ok {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrUnknownCommand,
			"[COMMAND] /"+cmd.Name,
		)
	}

	return s.entries[i].name, nil
}

// Parse is Parse followed by Match.
func (s *Set) Parse(text string) (string, Command, yaerrors.Error) {
	cmd, err := Parse(text)
	if err != nil {
		return "", Command{}, err
	}

	name, err := s.Match(cmd)
	if err != nil {
		return "", cmd, err
	}

	return name, cmd, nil
}

// BotName is the username commands may be addressed to.
func (s *Set) BotName() string {
	return s.botName
}

// Commands lists the set for setMyCommands in registration order.
func (s *Set) Commands() []yatgtypes.BotCommand {
	commands := make([]yatgtypes.BotCommand, 0, len(s.entries))

	for _, entry := range s.entries {
		commands = append(commands, yatgtypes.BotCommand{
			Command:     s.rule.Apply(entry.name),
			Description: entry.description,
		})
	}

	return commands
}
