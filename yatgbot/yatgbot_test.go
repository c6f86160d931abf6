package yatgbot_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yafsm"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/localizer"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgpoller"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaratelimit"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

const (
	chatID = int64(-100500)
	userID = int64(42)
)

var lastUpdateID atomic.Int64

func textUpdate(text string) *yatgtypes.Update {
	updateID := lastUpdateID.Add(1)

	msg := &yatgtypes.Message{
		MessageID: int(updateID),
		From:      &yatgtypes.User{ID: userID, FirstName: "Ana", LanguageCode: "pt-br"},
		Chat:      yatgtypes.Chat{ID: chatID, Type: yatgtypes.ChatTypeSupergroup},
		Text:      text,
	}

	if strings.HasPrefix(text, "/") {
		word, _, _ := strings.Cut(text, " ")
		msg.Entities = []yatgtypes.MessageEntity{{
			Type:   yatgtypes.EntityTypeBotCommand,
			Offset: 0,
			Length: len(word),
		}}
	}

	return &yatgtypes.Update{UpdateID: updateID, Message: msg}
}

func callbackUpdate(data string) *yatgtypes.Update {
	return &yatgtypes.Update{
		UpdateID: 900,
		CallbackQuery: &yatgtypes.CallbackQuery{
			ID:   "cb",
			From: yatgtypes.User{ID: userID},
			Data: data,
		},
	}
}

// recorder collects the names of the handlers and middlewares that ran.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, name)
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	calls := r.calls
	r.calls = nil

	return calls
}

func (r *recorder) message(name string) yatgbot.MessageHandler {
	return func(context.Context, *yatgbot.HandlerData, *yatgtypes.Message) yaerrors.Error {
		r.add(name)

		return nil
	}
}

func (r *recorder) middleware(name string) yatgbot.HandlerMiddleware {
	return func(ctx context.Context, hd *yatgbot.HandlerData, next yatgbot.HandlerNext) yaerrors.Error {
		r.add(name)

		return next(ctx, hd)
	}
}

func newDispatcher(router *yatgbot.RouterGroup) *yatgbot.Dispatcher {
	cache := yacache.NewCache(yacache.NewMemoryContainer())

	return &yatgbot.Dispatcher{
		Router:      router,
		FSM:         yafsm.NewStorage(cache, 0),
		BotUsername: "my_bot",
		Log:         yalogger.NewDefaultLogger(),
	}
}

func TestDispatcher_Commands(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	router := yatgbot.NewRouterGroup()
	router.OnCommand(rec.message("start"), "start")
	router.OnCommand(rec.message("help"), "help", "h")
	router.OnMessage(rec.message("fallback"))

	dispatcher := newDispatcher(router)
	ctx := context.Background()

	for _, text := range []string{
		"/start",
		"/START@My_Bot ref",
		"/start@other_bot",
		"/h",
		"start",
	} {
		require.Nil(t, dispatcher.Handle(ctx, textUpdate(text)))
	}

	assert.Equal(t, []string{"start", "start", "fallback", "help", "fallback"}, rec.take())
}

func TestDispatcher_FirstMatchAndSubRouters(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	root := yatgbot.NewRouterGroup()
	root.OnMessage(rec.message("root-hi"), yatgbot.TextEq("hi"))

	private := yatgbot.NewRouterGroup(yatgbot.ChatType(yatgtypes.ChatTypePrivate))
	private.OnMessage(rec.message("private"))

	group := yatgbot.NewRouterGroup(yatgbot.ChatType(yatgtypes.ChatTypeSupergroup))
	group.OnMessage(rec.message("group-regex"), yatgbot.TextRegex(regexp.MustCompile(`^\d+$`)))
	group.OnMessage(rec.message("group"))
	group.OnMessage(rec.message("never"))

	root.IncludeRouter(private, group)

	dispatcher := newDispatcher(root)
	ctx := context.Background()

	for _, text := range []string{"hi", "123", "anything"} {
		require.Nil(t, dispatcher.Handle(ctx, textUpdate(text)))
	}

	assert.Equal(t, []string{"root-hi", "group-regex", "group"}, rec.take())

	require.Nil(t, dispatcher.Handle(ctx, callbackUpdate("x")))
	assert.Empty(t, rec.take())
}

func TestDispatcher_MiddlewareOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	root := yatgbot.NewRouterGroup()
	root.AddMiddleware(rec.middleware("root-1"), rec.middleware("root-2"))

	sub := yatgbot.NewRouterGroup()
	sub.AddMiddleware(rec.middleware("sub"))
	sub.OnMessage(rec.message("handler"))

	root.IncludeRouter(sub)

	require.Nil(t, newDispatcher(root).Handle(context.Background(), textUpdate("x")))

	assert.Equal(t, []string{"root-1", "root-2", "sub", "handler"}, rec.take())
}

func TestDispatcher_Throttle(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	limiter := yaratelimit.NewRateLimit(yacache.NewCache(yacache.NewMemoryContainer()), 2, time.Hour)

	root := yatgbot.NewRouterGroup()

	heavy := yatgbot.NewRouterGroup()
	heavy.AddMiddleware(yatgbot.Throttle(limiter, "format"))
	heavy.OnCommand(rec.message("format"), "format")

	rest := yatgbot.NewRouterGroup()
	rest.OnMessage(rec.message("fallback"))

	root.IncludeRouter(heavy, rest)

	dispatcher := newDispatcher(root)
	ctx := context.Background()

	for range 3 {
		require.Nil(t, dispatcher.Handle(ctx, textUpdate("/format")))
	}

	require.Nil(t, dispatcher.Handle(ctx, textUpdate("plain")))

	assert.Equal(t, []string{"format", "format", "fallback"}, rec.take())
}

func TestDispatcher_Callbacks(t *testing.T) {
	t.Parallel()

	var got []string

	router := yatgbot.NewRouterGroup()
	router.OnCallback(func(_ context.Context, hd *yatgbot.HandlerData, cb *yatgtypes.CallbackQuery) yaerrors.Error {
		assert.Equal(t, userID, hd.UserID)
		assert.Zero(t, hd.ChatID)
		assert.Nil(t, hd.Command)

		got = append(got, strings.TrimPrefix(cb.Data, "vote:"))

		return nil
	}, yatgbot.CallbackPrefix("vote:"))
	router.OnCallback(func(context.Context, *yatgbot.HandlerData, *yatgtypes.CallbackQuery) yaerrors.Error {
		got = append(got, "menu")

		return nil
	}, yatgbot.CallbackEq("menu"))

	dispatcher := newDispatcher(router)

	for _, data := range []string{"vote:up", "menu", "vote:down", "other"} {
		require.Nil(t, dispatcher.Handle(context.Background(), callbackUpdate(data)))
	}

	assert.Equal(t, []string{"up", "menu", "down"}, got)
}

type AwaitingCity struct {
	yafsm.BaseState[AwaitingCity]

	Attempts int `msgpack:"attempts"`
}

func TestDispatcher_Conversation(t *testing.T) {
	t.Parallel()

	var cities []string

	router := yatgbot.NewRouterGroup()
	router.OnCommand(func(ctx context.Context, hd *yatgbot.HandlerData, _ *yatgtypes.Message) yaerrors.Error {
		return hd.State.SetState(ctx, AwaitingCity{Attempts: 1})
	}, "city")
	router.OnMessage(func(ctx context.Context, hd *yatgbot.HandlerData, msg *yatgtypes.Message) yaerrors.Error {
		_, snapshot, err := hd.State.GetState(ctx)
		if err != nil {
			return err
		}

		state, err := yafsm.Data[AwaitingCity](snapshot)
		if err != nil {
			return err
		}

		assert.Equal(t, 1, state.Attempts)

		cities = append(cities, msg.Text)

		return hd.State.Reset(ctx)
	}, yatgbot.StateIs(AwaitingCity{}))
	router.OnMessage(func(context.Context, *yatgbot.HandlerData, *yatgtypes.Message) yaerrors.Error {
		cities = append(cities, "-")

		return nil
	}, yatgbot.StateIs(yafsm.EmptyState{}))

	dispatcher := newDispatcher(router)
	ctx := context.Background()

	for _, text := range []string{"Lisbon", "/city", "Porto", "Braga"} {
		require.Nil(t, dispatcher.Handle(ctx, textUpdate(text)))
	}

	assert.Equal(t, []string{"-", "Porto", "-"}, cities)
}

func TestDispatcher_Filters(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	router := yatgbot.NewRouterGroup()
	router.OnMessage(rec.message("link"), yatgbot.HasEntity(yatgtypes.EntityTypeURL))
	router.OnMessage(rec.message("greeting"), yatgbot.OneOfFilter(yatgbot.TextEq("hi"), yatgbot.TextPrefix("hello")))
	router.OnMessage(rec.message("admin"), yatgbot.AllOfFilter(
		yatgbot.FromUser(userID),
		yatgbot.Not(yatgbot.HasText()),
	))
	router.OnMessage(rec.message("rest"))

	dispatcher := newDispatcher(router)
	ctx := context.Background()

	link := textUpdate("see example.com")
	link.Message.Entities = []yatgtypes.MessageEntity{{Type: yatgtypes.EntityTypeURL, Offset: 4, Length: 11}}

	photo := textUpdate("")
	photo.Message.Photo = []yatgtypes.PhotoSize{{FileID: "AgAD", Width: 1, Height: 1}}

	for _, upd := range []*yatgtypes.Update{link, textUpdate("hello there"), photo, textUpdate("bye")} {
		require.Nil(t, dispatcher.Handle(ctx, upd))
	}

	assert.Equal(t, []string{"link", "greeting", "admin", "rest"}, rec.take())
}

func TestDispatcher_Errors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	router := yatgbot.NewRouterGroup()
	router.AddMiddleware(yatgbot.Recover())
	router.OnMessage(func(context.Context, *yatgbot.HandlerData, *yatgtypes.Message) yaerrors.Error {
		return yaerrors.FromError(http.StatusTeapot, errBoom, "handler")
	}, yatgbot.TextEq("fail"))
	router.OnMessage(func(context.Context, *yatgbot.HandlerData, *yatgtypes.Message) yaerrors.Error {
		panic("unexpected")
	}, yatgbot.TextEq("panic"))
	router.OnMessage(func(context.Context, *yatgbot.HandlerData, *yatgtypes.Message) yaerrors.Error {
		return yaerrors.FromError(http.StatusContinue, yatgbot.ErrRouteMismatch, "skip")
	}, yatgbot.TextEq("skip"))

	var skipped bool

	router.OnMessage(func(context.Context, *yatgbot.HandlerData, *yatgtypes.Message) yaerrors.Error {
		skipped = true

		return nil
	})

	dispatcher := newDispatcher(router)
	ctx := context.Background()

	err := dispatcher.Handle(ctx, textUpdate("fail"))
	require.NotNil(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, http.StatusTeapot, err.Code())

	err = dispatcher.Handle(ctx, textUpdate("panic"))
	require.NotNil(t, err)
	assert.ErrorIs(t, err, yatgbot.ErrHandlerPanicked)

	require.Nil(t, dispatcher.Handle(ctx, textUpdate("skip")))
	assert.True(t, skipped)
}

func TestDispatcher_HandlerData(t *testing.T) {
	t.Parallel()

	loc, yaErr := localizer.NewLocalizer(fstest.MapFS{
		"en.json":    &fstest.MapFile{Data: []byte(`{"hello": "Hello"}`)},
		"pt-BR.json": &fstest.MapFile{Data: []byte(`{"hello": "Olá"}`)},
	}, "en")
	require.Nil(t, yaErr)

	var got *yatgbot.HandlerData

	router := yatgbot.NewRouterGroup()
	router.OnUpdate(func(_ context.Context, hd *yatgbot.HandlerData, _ *yatgtypes.Update) yaerrors.Error {
		got = hd

		return nil
	})

	dispatcher := newDispatcher(router)
	dispatcher.Localizer = loc

	require.Nil(t, dispatcher.Handle(context.Background(), textUpdate("/ban@my_bot 7 spam")))
	require.NotNil(t, got)

	assert.Equal(t, chatID, got.ChatID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "pt-BR", got.Lang)
	assert.Equal(t, "Olá", got.T("hello"))
	assert.Equal(t, "-100500:42", got.State.Key())
	assert.NotEmpty(t, got.Log.GetField(yalogger.KeyRequestID))

	require.NotNil(t, got.Command)
	assert.Equal(t, "ban", got.Command.Name)
	assert.Equal(t, []string{"7", "spam"}, got.Command.Args)
}

func TestRouterGroup_AllowedUpdates(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, *yatgbot.HandlerData, *yatgtypes.Message) yaerrors.Error { return nil }

	root := yatgbot.NewRouterGroup()
	root.OnMessage(noop)
	root.OnCommand(noop, "start")

	sub := yatgbot.NewRouterGroup()
	sub.OnChatMember(func(context.Context, *yatgbot.HandlerData, *yatgtypes.ChatMemberUpdated) yaerrors.Error {
		return nil
	})
	sub.OnEditedMessage(noop)
	root.IncludeRouter(sub)

	assert.Equal(t, []yatgtypes.UpdateType{
		yatgtypes.UpdateTypeChatMember,
		yatgtypes.UpdateTypeEditedMessage,
		yatgtypes.UpdateTypeMessage,
	}, root.AllowedUpdates())

	sub.OnUpdate(func(context.Context, *yatgbot.HandlerData, *yatgtypes.Update) yaerrors.Error { return nil })
	assert.Nil(t, root.AllowedUpdates())
}

func TestBot_Run(t *testing.T) {
	t.Parallel()

	const token = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	var (
		mu      sync.Mutex
		replies []string
		allowed []any
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		var result any

		switch strings.TrimPrefix(r.URL.Path, "/bot"+token+"/") {
		case "getMe":
			result = map[string]any{"id": 123456, "is_bot": true, "first_name": "Echo", "username": "echo_bot"}
		case "getUpdates":
			mu.Lock()
			allowed, _ = body["allowed_updates"].([]any)
			mu.Unlock()

			if offset, _ := body["offset"].(float64); offset == 0 {
				result = []map[string]any{{
					"update_id": 1,
					"message": map[string]any{
						"message_id": 1,
						"date":       1700000000,
						"from":       map[string]any{"id": 42, "is_bot": false, "first_name": "Ana"},
						"chat":       map[string]any{"id": 42, "type": "private"},
						"text":       "/echo@echo_bot ping",
						"entities":   []map[string]any{{"type": "bot_command", "offset": 0, "length": 14}},
					},
				}}
			} else {
				cancel()

				result = []any{}
			}
		case "sendMessage":
			mu.Lock()
			replies = append(replies, body["text"].(string))
			mu.Unlock()

			result = map[string]any{
				"message_id": 2,
				"date":       1700000001,
				"chat":       map[string]any{"id": body["chat_id"], "type": "private"},
				"text":       body["text"],
			}
		default:
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
	}))
	t.Cleanup(server.Close)

	client, err := yatgclient.NewClient(token, &yatgclient.Options{APIURL: server.URL})
	require.Nil(t, err)

	router := yatgbot.NewRouterGroup()
	router.OnCommand(func(ctx context.Context, hd *yatgbot.HandlerData, _ *yatgtypes.Message) yaerrors.Error {
		_, err := hd.Reply(ctx, yatgmethods.NewSendMessage(yatgmethods.ChatID{}, hd.Command.RawArgs))

		return err
	}, "echo")

	bot, err := yatgbot.New(ctx, yatgbot.Options{
		Client: client,
		Router: router,
		Poller: &yatgpoller.Options{Timeout: time.Second},
	})
	require.Nil(t, err)
	require.NotNil(t, bot.Dispatcher())

	require.Nil(t, bot.Run(ctx))

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{"ping"}, replies)
	assert.Equal(t, []any{"message"}, allowed)
}
