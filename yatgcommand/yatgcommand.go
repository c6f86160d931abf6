// Package yatgcommand parses bot commands such as "/ban@my_bot 42 spam".
//
// A command is the first word of a message when it starts with a slash. The
// optional @suffix names the bot the command is addressed to, the remaining
// words are arguments. Arguments can be bound to the fields of a struct:
//
//	type Ban struct {
//		UserID int64
//		Reason *string
//	}
//
//	cmd, err := yatgcommand.FromMessage(msg)
//	if err != nil {
//		return err
//	}
//
//	var ban Ban
//	if err := cmd.Bind(&ban); err != nil {
//		return err // ErrTooFewArgs, ErrTooManyArgs or ErrInvalidArgument
//	}
package yatgcommand

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgentities"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

const (
	prefix        = "/"
	botNamePrefix = "@"
)

type Command struct {
	Name    string
	BotName string
	Args    []string

	// RawArgs is the text after the command word with surrounding
	// whitespace trimmed.
	RawArgs string
}

// Parse splits text on ASCII whitespace and reads the first word as
// /name or /name@bot.
//
// Example:
//
//	cmd, _ := yatgcommand.Parse("/start@my_bot ref_42")
//	fmt.Println(cmd.Name, cmd.BotName, cmd.Args) // start my_bot [ref_42]
func Parse(text string) (Command, yaerrors.Error) {
	text = strings.TrimLeftFunc(text, isASCIISpace)

	end := strings.IndexFunc(text, isASCIISpace)
	if end < 0 {
		end = len(text)
	}

	return parseWord(text[:end], text[end:])
}

// FromMessage parses the command of msg. The first entity of the text must
// be a bot_command starting at offset zero.
func FromMessage(msg *yatgtypes.Message) (Command, yaerrors.Error) {
	if msg == nil || len(msg.Entities) == 0 {
		return Command{}, notACommand("message has no entities")
	}

	first := msg.Entities[0]
	if first.Type != yatgtypes.EntityTypeBotCommand || first.Offset != 0 {
		return Command{}, notACommand("first entity is not a leading bot_command")
	}

	ref, ok := yatgentities.ResolveOne(msg.Text, first)
	if !ok || ref.IsEmpty() {
		return Command{}, notACommand("bot_command entity is out of text bounds")
	}

	return parseWord(ref.Text(), msg.Text[ref.End:])
}

func parseWord(word, rest string) (Command, yaerrors.Error) {
	if !strings.HasPrefix(word, prefix) || len(word) == len(prefix) {
		return Command{}, notACommand(fmt.Sprintf("`%s` does not start with %s", word, prefix))
	}

	name, botName, _ := strings.Cut(word[len(prefix):], botNamePrefix)
	if name == "" {
		return Command{}, notACommand(fmt.Sprintf("`%s` has an empty name", word))
	}

	cmd := Command{
		Name:    name,
		BotName: botName,
		RawArgs: strings.TrimFunc(rest, isASCIISpace),
	}

	if cmd.RawArgs != "" {
		cmd.Args = strings.FieldsFunc(cmd.RawArgs, isASCIISpace)
	}

	return cmd, nil
}

// String renders the command the way it would be typed.
func (c Command) String() string {
	var builder strings.Builder

	builder.WriteString(prefix)
	builder.WriteString(c.Name)

	if c.BotName != "" {
		builder.WriteString(botNamePrefix)
		builder.WriteString(c.BotName)
	}

	for _, arg := range c.Args {
		builder.WriteByte(' ')
		builder.WriteString(arg)
	}

	return builder.String()
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}

func notACommand(msg string) yaerrors.Error {
	return yaerrors.FromError(http.StatusBadRequest, ErrNotACommand, "[COMMAND] "+msg)
}
