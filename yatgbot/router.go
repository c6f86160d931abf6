package yatgbot

import (
	"context"
	"slices"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

type (
	// MessageHandler processes messages, channel posts and their edits.
	MessageHandler func(ctx context.Context, handlerData *HandlerData, msg *yatgtypes.Message) yaerrors.Error

	// CallbackHandler processes callback queries of inline keyboards.
	CallbackHandler func(ctx context.Context, handlerData *HandlerData, cb *yatgtypes.CallbackQuery) yaerrors.Error

	InlineQueryHandler func(ctx context.Context, handlerData *HandlerData, query *yatgtypes.InlineQuery) yaerrors.Error

	ChosenInlineResultHandler func(
		ctx context.Context,
		handlerData *HandlerData,
		result *yatgtypes.ChosenInlineResult,
	) yaerrors.Error

	PreCheckoutQueryHandler func(
		ctx context.Context,
		handlerData *HandlerData,
		query *yatgtypes.PreCheckoutQuery,
	) yaerrors.Error

	PollAnswerHandler func(ctx context.Context, handlerData *HandlerData, answer *yatgtypes.PollAnswer) yaerrors.Error

	ChatMemberHandler func(
		ctx context.Context,
		handlerData *HandlerData,
		updated *yatgtypes.ChatMemberUpdated,
	) yaerrors.Error

	ChatJoinRequestHandler func(
		ctx context.Context,
		handlerData *HandlerData,
		request *yatgtypes.ChatJoinRequest,
	) yaerrors.Error

	// UpdateHandler receives the whole update, whatever its kind.
	UpdateHandler func(ctx context.Context, handlerData *HandlerData, upd *yatgtypes.Update) yaerrors.Error
)

// RouterGroup is the main struct that holds routes, sub-routers, and middlewares.
type RouterGroup struct {
	parent      *RouterGroup
	base        []Filter
	sub         []*RouterGroup
	routes      []route
	middlewares []HandlerMiddleware
}

// route is one handler bound to an update kind. An empty kind accepts any
// update.
type route struct {
	kind    yatgtypes.UpdateType
	filters []Filter
	handler HandlerNext
}

// NewRouterGroup creates a router. Its filters guard every route of the
// group and of its sub-routers.
//
// Example usage:
//
//	admin := yatgbot.NewRouterGroup(yatgbot.ChatType(yatgtypes.ChatTypePrivate))
func NewRouterGroup(filters ...Filter) *RouterGroup {
	return &RouterGroup{base: filters}
}

// IncludeRouter includes sub-routers into the current router. They are
// tried in order after the routes of the current router.
//
// Example usage:
//
//	mainRouter.IncludeRouter(adminRouter, userRouter)
func (r *RouterGroup) IncludeRouter(subs ...*RouterGroup) {
	for _, s := range subs {
		s.parent = r

		r.sub = append(r.sub, s)
	}
}

func (r *RouterGroup) addRoute(kind yatgtypes.UpdateType, handler HandlerNext, filters []Filter) {
	r.routes = append(r.routes, route{
		kind:    kind,
		handler: handler,
		filters: filters,
	})
}

// OnMessage registers a message handler with optional filters.
//
// Example usage:
//
//	router.OnMessage(echo, yatgbot.HasText())
func (r *RouterGroup) OnMessage(h MessageHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeMessage, wrapHandler(messageOf, h), filters)
}

// OnCommand registers a handler for /name, /name@bot_username and any of
// the aliases.
//
// Example usage:
//
//	router.OnCommand(start, "start")
//	router.OnCommand(help, "help", "h")
func (r *RouterGroup) OnCommand(h MessageHandler, name string, aliases ...string) {
	r.OnMessage(h, Command(append([]string{name}, aliases...)...))
}

func (r *RouterGroup) OnEditedMessage(h MessageHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeEditedMessage, wrapHandler(editedMessageOf, h), filters)
}

func (r *RouterGroup) OnChannelPost(h MessageHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeChannelPost, wrapHandler(channelPostOf, h), filters)
}

func (r *RouterGroup) OnEditedChannelPost(h MessageHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeEditedChannelPost, wrapHandler(editedChannelPostOf, h), filters)
}

// OnCallback registers a callback handler with optional filters.
//
// Example usage:
//
//	router.OnCallback(vote, yatgbot.CallbackPrefix("vote:"))
func (r *RouterGroup) OnCallback(h CallbackHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeCallbackQuery, wrapHandler(callbackOf, h), filters)
}

func (r *RouterGroup) OnInlineQuery(h InlineQueryHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeInlineQuery, wrapHandler(inlineQueryOf, h), filters)
}

func (r *RouterGroup) OnChosenInlineResult(h ChosenInlineResultHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeChosenInlineResult, wrapHandler(chosenInlineResultOf, h), filters)
}

func (r *RouterGroup) OnPreCheckoutQuery(h PreCheckoutQueryHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypePreCheckoutQuery, wrapHandler(preCheckoutQueryOf, h), filters)
}

func (r *RouterGroup) OnPollAnswer(h PollAnswerHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypePollAnswer, wrapHandler(pollAnswerOf, h), filters)
}

// OnMyChatMember is called when the bot itself is added, promoted, blocked
// or removed.
func (r *RouterGroup) OnMyChatMember(h ChatMemberHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeMyChatMember, wrapHandler(myChatMemberOf, h), filters)
}

// OnChatMember needs the bot to be an administrator and chat_member in the
// allowed updates, AllowedUpdates takes care of the latter.
func (r *RouterGroup) OnChatMember(h ChatMemberHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeChatMember, wrapHandler(chatMemberOf, h), filters)
}

func (r *RouterGroup) OnChatJoinRequest(h ChatJoinRequestHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeChatJoinRequest, wrapHandler(chatJoinRequestOf, h), filters)
}

// OnUpdate registers a handler for every update kind. Put it last, the
// first matching route wins.
func (r *RouterGroup) OnUpdate(h UpdateHandler, filters ...Filter) {
	r.addRoute(yatgtypes.UpdateTypeUnknown, wrapHandler(func(u *yatgtypes.Update) *yatgtypes.Update { return u }, h), filters)
}

// AllowedUpdates lists the update kinds the router tree handles, for the
// allowed_updates parameter of getUpdates. It is nil when some route
// accepts any kind.
func (r *RouterGroup) AllowedUpdates() []yatgtypes.UpdateType {
	kinds, wildcard := r.collectKinds(nil)
	if wildcard {
		return nil
	}

	slices.Sort(kinds)

	return slices.Compact(kinds)
}

func (r *RouterGroup) collectKinds(kinds []yatgtypes.UpdateType) ([]yatgtypes.UpdateType, bool) {
	for _, rt := range r.routes {
		if rt.kind == yatgtypes.UpdateTypeUnknown {
			return nil, true
		}

		kinds = append(kinds, rt.kind)
	}

	for _, sub := range r.sub {
		var wildcard bool

		if kinds, wildcard = sub.collectKinds(kinds); wildcard {
			return nil, true
		}
	}

	return kinds, false
}

func messageOf(u *yatgtypes.Update) *yatgtypes.Message           { return u.Message }
func editedMessageOf(u *yatgtypes.Update) *yatgtypes.Message     { return u.EditedMessage }
func channelPostOf(u *yatgtypes.Update) *yatgtypes.Message       { return u.ChannelPost }
func editedChannelPostOf(u *yatgtypes.Update) *yatgtypes.Message { return u.EditedChannelPost }
func callbackOf(u *yatgtypes.Update) *yatgtypes.CallbackQuery    { return u.CallbackQuery }
func inlineQueryOf(u *yatgtypes.Update) *yatgtypes.InlineQuery   { return u.InlineQuery }
func pollAnswerOf(u *yatgtypes.Update) *yatgtypes.PollAnswer     { return u.PollAnswer }

func chosenInlineResultOf(u *yatgtypes.Update) *yatgtypes.ChosenInlineResult {
	return u.ChosenInlineResult
}

func preCheckoutQueryOf(u *yatgtypes.Update) *yatgtypes.PreCheckoutQuery {
	return u.PreCheckoutQuery
}

func myChatMemberOf(u *yatgtypes.Update) *yatgtypes.ChatMemberUpdated { return u.MyChatMember }
func chatMemberOf(u *yatgtypes.Update) *yatgtypes.ChatMemberUpdated   { return u.ChatMember }

func chatJoinRequestOf(u *yatgtypes.Update) *yatgtypes.ChatJoinRequest {
	return u.ChatJoinRequest
}
