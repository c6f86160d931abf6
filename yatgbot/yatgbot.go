// Package yatgbot routes Bot API updates to handlers.
//
// A RouterGroup holds routes, each an update kind with filters and a
// handler. Groups nest: a group's filters and middlewares apply to every
// route below it, routes of a group are tried before its sub-routers, and
// the first route whose filters pass handles the update.
//
// Example usage:
//
//	router := yatgbot.NewRouterGroup()
//	router.AddMiddleware(yatgbot.Recover())
//
//	router.OnCommand(func(ctx context.Context, hd *yatgbot.HandlerData, msg *yatgtypes.Message) yaerrors.Error {
//		_, err := hd.Reply(ctx, yatgmethods.NewSendMessage(yatgmethods.ChatID{}, hd.T("start")))
//
//		return err
//	}, "start")
//
//	bot, err := yatgbot.New(ctx, yatgbot.Options{Client: client, Router: router, Log: log})
//	if err != nil {
//		return err
//	}
//
//	return bot.Run(ctx)
package yatgbot

import (
	"context"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yafsm"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/localizer"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/messagequeue"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgpoller"
)

// Options wire a Bot. Client and Router are required.
type Options struct {
	Client    *yatgclient.Client
	Router    *RouterGroup
	FSM       yafsm.FSM
	Localizer *localizer.Localizer
	Queue     *messagequeue.Dispatcher

	// Poller defaults to allowed updates taken from the router.
	Poller *yatgpoller.Options
	Log    yalogger.Logger
}

// Bot is a poller bound to a dispatcher.
type Bot struct {
	dispatcher *Dispatcher
	poller     *yatgpoller.Poller
	log        yalogger.Logger
}

// New calls getMe to learn the bot username used by the Command filter.
func New(ctx context.Context, options Options) (*Bot, yaerrors.Error) {
	log := options.Log
	if log == nil {
		log = yalogger.NewDefaultLogger()
	}

	me, err := options.Client.GetMe(ctx)
	if err != nil {
		return nil, err.WrapWithLog("[BOT] failed to get bot user", log)
	}

	pollerOptions := yatgpoller.Options{}
	if options.Poller != nil {
		pollerOptions = *options.Poller
	}

	if pollerOptions.AllowedUpdates == nil {
		pollerOptions.AllowedUpdates = options.Router.AllowedUpdates()
	}

	if pollerOptions.Log == nil {
		pollerOptions.Log = log
	}

	log.Infof("Bot @%s is ready", me.Username)

	return &Bot{
		dispatcher: &Dispatcher{
			Router:      options.Router,
			Client:      options.Client,
			FSM:         options.FSM,
			Localizer:   options.Localizer,
			Queue:       options.Queue,
			BotUsername: me.Username,
			Log:         log,
		},
		poller: yatgpoller.New(options.Client, &pollerOptions),
		log:    log,
	}, nil
}

func (b *Bot) Dispatcher() *Dispatcher {
	return b.dispatcher
}

// Run polls and dispatches until ctx is done.
func (b *Bot) Run(ctx context.Context) yaerrors.Error {
	return b.poller.Run(ctx, b.dispatcher.Handle)
}
