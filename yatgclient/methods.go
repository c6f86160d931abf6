package yatgclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// GetMe returns the bot account.
func (c *Client) GetMe(ctx context.Context) (*yatgtypes.User, yaerrors.Error) {
	return callPointer[yatgtypes.User](ctx, c, yatgmethods.GetMe{})
}

// GetUpdates long-polls for new updates.
//
// Example:
//
//	updates, err := client.GetUpdates(ctx, yatgmethods.NewGetUpdates(offset, 100, 30))
func (c *Client) GetUpdates(
	ctx context.Context,
	req *yatgmethods.GetUpdates,
) ([]yatgtypes.Update, yaerrors.Error) {
	return Call[[]yatgtypes.Update](ctx, c, req)
}

func (c *Client) SendMessage(
	ctx context.Context,
	req *yatgmethods.SendMessage,
) (*yatgtypes.Message, yaerrors.Error) {
	return callPointer[yatgtypes.Message](ctx, c, req)
}

func (c *Client) ForwardMessage(
	ctx context.Context,
	req *yatgmethods.ForwardMessage,
) (*yatgtypes.Message, yaerrors.Error) {
	return callPointer[yatgtypes.Message](ctx, c, req)
}

func (c *Client) SendPhoto(
	ctx context.Context,
	req *yatgmethods.SendPhoto,
) (*yatgtypes.Message, yaerrors.Error) {
	return callPointer[yatgtypes.Message](ctx, c, req)
}

func (c *Client) SendDocument(
	ctx context.Context,
	req *yatgmethods.SendDocument,
) (*yatgtypes.Message, yaerrors.Error) {
	return callPointer[yatgtypes.Message](ctx, c, req)
}

func (c *Client) SendMediaGroup(
	ctx context.Context,
	req *yatgmethods.SendMediaGroup,
) ([]yatgtypes.Message, yaerrors.Error) {
	return Call[[]yatgtypes.Message](ctx, c, req)
}

func (c *Client) SendPoll(
	ctx context.Context,
	req *yatgmethods.SendPoll,
) (*yatgtypes.Message, yaerrors.Error) {
	return callPointer[yatgtypes.Message](ctx, c, req)
}

// EditMessageText returns the edited message, or nil when an inline message
// was edited and the Bot API answers with true.
func (c *Client) EditMessageText(
	ctx context.Context,
	req *yatgmethods.EditMessageText,
) (*yatgtypes.Message, yaerrors.Error) {
	raw, err := Call[json.RawMessage](ctx, c, req)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(raw, []byte("true")) {
		return nil, nil
	}

	var msg yatgtypes.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			err,
			"[CLIENT] failed to decode edited message",
			c.log,
		)
	}

	return &msg, nil
}

func (c *Client) DeleteMessage(ctx context.Context, req *yatgmethods.DeleteMessage) yaerrors.Error {
	_, err := Call[bool](ctx, c, req)

	return err
}

func (c *Client) AnswerCallbackQuery(
	ctx context.Context,
	req *yatgmethods.AnswerCallbackQuery,
) yaerrors.Error {
	_, err := Call[bool](ctx, c, req)

	return err
}

func (c *Client) SendChatAction(ctx context.Context, req *yatgmethods.SendChatAction) yaerrors.Error {
	_, err := Call[bool](ctx, c, req)

	return err
}

func (c *Client) SetMyCommands(ctx context.Context, req *yatgmethods.SetMyCommands) yaerrors.Error {
	_, err := Call[bool](ctx, c, req)

	return err
}

func callPointer[R any](ctx context.Context, c *Client, m yatgmethods.Method) (*R, yaerrors.Error) {
	result, err := Call[R](ctx, c, m)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
