package commands

import (
	"context"
	"embed"
	"net/http"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yafsm"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgcommand"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgentities"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmessageencoding"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

//go:embed locales
var embeddedLocales embed.FS

// AwaitingFeedback follows /feedback until the next text message.
type AwaitingFeedback struct {
	yafsm.BaseState[AwaitingFeedback]
}

func botCommands() *yatgcommand.Set {
	return yatgcommand.NewSet("", yatgcommand.RenameLowercase).
		Add("start", "say hello").
		Add("format", "turn Markdown into a formatted message").
		Add("html", "show the HTML of the replied message").
		Add("markdown", "show the MarkdownV2 of the replied message").
		Add("feedback", "send feedback to the authors")
}

// newRouter builds the handler tree. /format is limited per user by limiter.
func newRouter(limiter yatgbot.Limiter) *yatgbot.RouterGroup {
	router := yatgbot.NewRouterGroup()
	router.AddMiddleware(yatgbot.Recover(), logFailures)

	router.OnCommand(start, "start")
	router.OnCommand(unparse(yatgmessageencoding.NewHTMLEncoding()), "html")
	router.OnCommand(unparse(yatgmessageencoding.NewMarkdownV2Encoding()), "markdown")
	router.OnCommand(askFeedback, "feedback")

	conversation := yatgbot.NewRouterGroup(yatgbot.StateIs(AwaitingFeedback{}))
	conversation.OnMessage(saveFeedback, yatgbot.HasText())

	formatting := yatgbot.NewRouterGroup()
	formatting.AddMiddleware(yatgbot.Throttle(limiter, "format"))
	formatting.OnCommand(format, "format")

	echoes := yatgbot.NewRouterGroup(yatgbot.Not(yatgbot.StateIs(AwaitingFeedback{})))
	echoes.OnMessage(echo, yatgbot.HasText())

	router.IncludeRouter(formatting, conversation, echoes)

	return router
}

func logFailures(ctx context.Context, hd *yatgbot.HandlerData, next yatgbot.HandlerNext) yaerrors.Error {
	err := next(ctx, hd)
	if err != nil {
		hd.Log.Warnf("Handler failed: %v", err)
	}

	return err
}

// send goes through the queue when there is one.
func send(ctx context.Context, hd *yatgbot.HandlerData, text string, entities []yatgtypes.MessageEntity) yaerrors.Error {
	req := yatgmethods.NewSendMessage(yatgmethods.ChatIDFromInt(hd.ChatID), text).WithEntities(entities...)

	if hd.Queue == nil {
		_, err := hd.Reply(ctx, req)

		return err
	}

	_, resultCh := hd.Queue.Enqueue(req, 0)

	select {
	case result := <-resultCh:
		return result.Err
	case <-ctx.Done():
		return yaerrors.FromError(http.StatusRequestTimeout, ctx.Err(), "queued reply")
	}
}

// sendHTML parses the localized markup so it can be sent without a parse
// mode.
func sendHTML(ctx context.Context, hd *yatgbot.HandlerData, markup string) yaerrors.Error {
	text, entities, err := yatgmessageencoding.NewHTMLEncoding().Parse(markup)
	if err != nil {
		return err.Wrap("bad markup in locale")
	}

	return send(ctx, hd, text, entities)
}

func start(ctx context.Context, hd *yatgbot.HandlerData, _ *yatgtypes.Message) yaerrors.Error {
	return sendHTML(ctx, hd, hd.T("start"))
}

func format(ctx context.Context, hd *yatgbot.HandlerData, _ *yatgtypes.Message) yaerrors.Error {
	if hd.Command.RawArgs == "" {
		return sendHTML(ctx, hd, hd.T("usage.format"))
	}

	text, entities, err := yatgmessageencoding.NewMarkdownEncoding().Parse(hd.Command.RawArgs)
	if err != nil {
		return send(ctx, hd, hd.Localizer.Format(hd.Lang, "error", map[string]any{"reason": err.Error()}), nil)
	}

	return send(ctx, hd, text, entities)
}

func unparse(encoding yatgmessageencoding.Unparser) yatgbot.MessageHandler {
	return func(ctx context.Context, hd *yatgbot.HandlerData, msg *yatgtypes.Message) yaerrors.Error {
		if msg.ReplyToMessage == nil {
			return sendHTML(ctx, hd, hd.T("usage.unparse"))
		}

		text, entities := msg.ReplyToMessage.Content()
		markup := encoding.Unparse(text, entities)

		return send(ctx, hd, markup, []yatgtypes.MessageEntity{{
			Type:   yatgtypes.EntityTypePre,
			Offset: 0,
			Length: yatgentities.UTF16Len(markup),
		}})
	}
}

func askFeedback(ctx context.Context, hd *yatgbot.HandlerData, _ *yatgtypes.Message) yaerrors.Error {
	if err := hd.State.SetState(ctx, AwaitingFeedback{}); err != nil {
		return err
	}

	return send(ctx, hd, hd.T("feedback.ask"), nil)
}

func saveFeedback(ctx context.Context, hd *yatgbot.HandlerData, msg *yatgtypes.Message) yaerrors.Error {
	hd.Log.Infof("Feedback: %s", msg.Text)

	if err := hd.State.Reset(ctx); err != nil {
		return err
	}

	name := "friend"
	if msg.From != nil {
		name = msg.From.FirstName
	}

	return send(ctx, hd, hd.Localizer.Format(hd.Lang, "feedback.thanks", map[string]any{"name": name}), nil)
}

func echo(ctx context.Context, hd *yatgbot.HandlerData, msg *yatgtypes.Message) yaerrors.Error {
	text, entities := msg.Content()

	return send(ctx, hd, text, entities)
}
