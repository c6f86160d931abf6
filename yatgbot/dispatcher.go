package yatgbot

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yafsm"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/localizer"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/messagequeue"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgcommand"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// HandlerData holds the dependencies and context for a handler execution.
type HandlerData struct {
	Client *yatgclient.Client
	Update *yatgtypes.Update

	// ChatID and UserID are zero when the update kind has no chat or no
	// sender.
	ChatID int64
	UserID int64

	// Command is the parsed leading bot command of a message, or nil.
	Command     *yatgcommand.Command
	BotUsername string

	// Lang is the locale matched to the sender's language_code.
	Lang      string
	Localizer *localizer.Localizer

	// State is nil without an FSM or outside a conversation.
	State *yafsm.Scope
	Queue *messagequeue.Dispatcher
	Log   yalogger.Logger
}

// T translates key into the language of the sender.
func (hd *HandlerData) T(key string) string {
	if hd.Localizer == nil {
		return key
	}

	return hd.Localizer.T(hd.Lang, key)
}

// Reply sends text to the chat of the update.
//
// Example usage:
//
//	_, err := hd.Reply(ctx, yatgmethods.NewSendMessage(yatgmethods.ChatID{}, "pong"))
func (hd *HandlerData) Reply(
	ctx context.Context,
	req *yatgmethods.SendMessage,
) (*yatgtypes.Message, yaerrors.Error) {
	if req.ChatID.IsZero() {
		req.ChatID = yatgmethods.ChatIDFromInt(hd.ChatID)
	}

	return hd.Client.SendMessage(ctx, req)
}

// Dispatcher routes updates through the router tree.
type Dispatcher struct {
	Router      *RouterGroup
	Client      *yatgclient.Client
	FSM         yafsm.FSM
	Localizer   *localizer.Localizer
	Queue       *messagequeue.Dispatcher
	BotUsername string
	Log         yalogger.Logger
}

// Handle runs the first route accepting upd. An update no route accepts is
// ignored.
//
// Example usage:
//
//	err := poller.Run(ctx, dispatcher.Handle)
func (d *Dispatcher) Handle(ctx context.Context, upd *yatgtypes.Update) yaerrors.Error {
	hd := d.handlerData(upd)

	hd.Log.Debugf("Processing %s update", upd.Type())

	handled, err := d.dispatch(ctx, d.Router, hd)
	if err != nil {
		return err.WrapWithLog("[ROUTER] failed to handle update", hd.Log)
	}

	if !handled {
		hd.Log.Debugf("No route accepted %s update", upd.Type())
	}

	return nil
}

func (d *Dispatcher) handlerData(upd *yatgtypes.Update) *HandlerData {
	log := d.Log
	if log == nil {
		log = yalogger.NewDefaultLogger()
	}

	hd := &HandlerData{
		Client:      d.Client,
		Update:      upd,
		BotUsername: d.BotUsername,
		Localizer:   d.Localizer,
		Queue:       d.Queue,
	}

	fields := map[string]any{
		yalogger.KeyRequestID: uuid.NewString(),
		yalogger.KeyUpdateID:  upd.UpdateID,
	}

	if chat := upd.Chat(); chat != nil {
		hd.ChatID = chat.ID
		fields[yalogger.KeyChatID] = chat.ID
	}

	if from := upd.From(); from != nil {
		hd.UserID = from.ID
		fields[yalogger.KeyUserID] = from.ID

		if d.Localizer != nil {
			hd.Lang = d.Localizer.Match(from.LanguageCode)
		}
	} else if d.Localizer != nil {
		hd.Lang = d.Localizer.DefaultLang()
	}

	if upd.CallbackQuery == nil {
		if msg := upd.AnyMessage(); msg != nil {
			if cmd, err := yatgcommand.FromMessage(msg); err == nil {
				hd.Command = &cmd
			}
		}
	}

	if d.FSM != nil && (hd.ChatID != 0 || hd.UserID != 0) {
		hd.State = yafsm.NewScope(d.FSM, yafsm.ChatUserKey(hd.ChatID, hd.UserID))
	}

	hd.Log = log.WithFields(fields)

	return hd
}

// dispatch reports whether a route of group or of its sub-routers ran.
func (d *Dispatcher) dispatch(ctx context.Context, group *RouterGroup, hd *HandlerData) (bool, yaerrors.Error) {
	ok, err := checkFilters(ctx, hd, group.base)
	if err != nil {
		return false, err.Wrap("base filter check failed")
	}

	if !ok {
		return false, nil
	}

	kind := hd.Update.Type()

	for _, rt := range group.routes {
		if rt.kind != yatgtypes.UpdateTypeUnknown && rt.kind != kind {
			continue
		}

		ok, err := checkFilters(ctx, hd, rt.filters)
		if err != nil {
			return false, err.Wrap("local filter check failed")
		}

		if !ok {
			continue
		}

		err = chainMiddleware(rt.handler, group.collectMiddlewares()...)(ctx, hd)
		if errors.Is(err, ErrRouteMismatch) {
			continue
		}

		if err != nil {
			return true, err.Wrap("handler execution failed")
		}

		return true, nil
	}

	for _, sub := range group.sub {
		handled, err := d.dispatch(ctx, sub, hd)
		if err != nil {
			return handled, err.Wrap("sub-router dispatch failed")
		}

		if handled {
			return true, nil
		}
	}

	return false, nil
}
