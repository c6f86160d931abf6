package yatgbot

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yafsm"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// Filter is a function that determines whether a given update should be processed
type Filter func(ctx context.Context, handlerData *HandlerData) (bool, yaerrors.Error)

// StateIs creates a filter that checks if the conversation state matches
// any of the provided states. Use yafsm.EmptyState{} to match
// conversations without a state.
//
// Example usage:
//
//	router.OnMessage(saveCity, yatgbot.StateIs(AwaitingCity{}))
func StateIs(want ...yafsm.State) Filter {
	wanted := make(map[string]struct{}, len(want))

	for _, s := range want {
		wanted[s.StateName()] = struct{}{}
	}

	return func(ctx context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		if hd.State == nil {
			return false, nil
		}

		state, _, err := hd.State.GetState(ctx)
		if err != nil {
			return false, yaerrors.FromError(
				err.Code(),
				errors.Join(err, ErrFailedToGetState),
				"[ROUTER] state of "+hd.State.Key(),
			)
		}

		_, ok := wanted[state]

		return ok, nil
	}
}

// TextEq creates a filter that checks if the message text equals the specified string.
//
// Example usage:
//
//	router.OnMessage(YourMessageHandler, yatgbot.TextEq("Hello"))
func TextEq(want string) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		msg := hd.Update.AnyMessage()

		return msg != nil && msg.Text == want, nil
	}
}

// TextPrefix matches messages whose text starts with prefix.
func TextPrefix(prefix string) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		msg := hd.Update.AnyMessage()

		return msg != nil && strings.HasPrefix(msg.Text, prefix), nil
	}
}

// TextRegex creates a filter that checks if the message text matches the specified regex.
//
// Example usage:
//
//	router.OnMessage(YourMessageHandler, yatgbot.TextRegex(regexp.MustCompile(`^Hello.*`)))
func TextRegex(re *regexp.Regexp) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		msg := hd.Update.AnyMessage()

		return msg != nil && re.MatchString(msg.Text), nil
	}
}

// HasText matches messages with a non-empty text or caption.
func HasText() Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		msg := hd.Update.AnyMessage()
		if msg == nil {
			return false, nil
		}

		text, _ := msg.Content()

		return text != "", nil
	}
}

// HasEntity matches messages carrying an entity of any of the kinds, in the
// text or in the caption.
//
// Example usage:
//
//	router.OnMessage(collectLinks, yatgbot.HasEntity(yatgtypes.EntityTypeURL, yatgtypes.EntityTypeTextLink))
func HasEntity(kinds ...yatgtypes.EntityType) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		msg := hd.Update.AnyMessage()
		if msg == nil {
			return false, nil
		}

		for _, entities := range [][]yatgtypes.MessageEntity{msg.Entities, msg.CaptionEntities} {
			for _, entity := range entities {
				if slices.Contains(kinds, entity.Type) {
					return true, nil
				}
			}
		}

		return false, nil
	}
}

// Command matches bot commands by name, case-insensitive. A command
// addressed to another bot with /name@other_bot never matches.
func Command(names ...string) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		cmd := hd.Command
		if cmd == nil {
			return false, nil
		}

		if cmd.BotName != "" && hd.BotUsername != "" && !strings.EqualFold(cmd.BotName, hd.BotUsername) {
			return false, nil
		}

		return slices.ContainsFunc(names, func(name string) bool {
			return strings.EqualFold(name, cmd.Name)
		}), nil
	}
}

// ChatType matches updates that happened in chats of the given types.
func ChatType(types ...yatgtypes.ChatType) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		chat := hd.Update.Chat()

		return chat != nil && slices.Contains(types, chat.Type), nil
	}
}

// FromUser matches updates caused by one of the users.
//
// Example usage:
//
//	admin := yatgbot.NewRouterGroup(yatgbot.FromUser(cfg.AdminIDs...))
func FromUser(ids ...int64) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		return hd.UserID != 0 && slices.Contains(ids, hd.UserID), nil
	}
}

// CallbackEq creates a filter that checks if the callback query data equals the specified string.
//
// Example usage:
//
//	router.OnCallback(YourCallbackHandler, yatgbot.CallbackEq("some_data"))
func CallbackEq(data string) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		q := hd.Update.CallbackQuery

		return q != nil && q.Data == data, nil
	}
}

// CallbackPrefix creates a filter that checks if the callback query data starts with the specified prefix.
//
// Example usage:
//
//	router.OnCallback(YourCallbackHandler, yatgbot.CallbackPrefix("prefix_"))
func CallbackPrefix(prefix string) Filter {
	return func(_ context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		q := hd.Update.CallbackQuery

		return q != nil && strings.HasPrefix(q.Data, prefix), nil
	}
}

// OneOfFilter creates a filter that passes if any of the provided filters pass.
//
// Example usage:
//
//	router.OnMessage(greet, yatgbot.OneOfFilter(yatgbot.TextEq("hi"), yatgbot.TextEq("hello")))
func OneOfFilter(filters ...Filter) Filter {
	return func(ctx context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		for _, f := range filters {
			ok, err := f(ctx, hd)
			if err != nil {
				return false, err.Wrap("one-of filter failed")
			}

			if ok {
				return true, nil
			}
		}

		return false, nil
	}
}

// AllOfFilter creates a filter that passes if all the provided filters pass.
func AllOfFilter(filters ...Filter) Filter {
	return func(ctx context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		return checkFilters(ctx, hd, filters)
	}
}

// Not inverts a filter.
func Not(filter Filter) Filter {
	return func(ctx context.Context, hd *HandlerData) (bool, yaerrors.Error) {
		ok, err := filter(ctx, hd)
		if err != nil {
			return false, err.Wrap("not filter failed")
		}

		return !ok, nil
	}
}

func checkFilters(ctx context.Context, hd *HandlerData, filters []Filter) (bool, yaerrors.Error) {
	for _, f := range filters {
		ok, err := f(ctx, hd)
		if err != nil {
			return false, err.Wrap("filter check failed")
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}
