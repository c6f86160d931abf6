package yatgbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// ErrRouteMismatch tells the dispatcher to try the next route.
var ErrRouteMismatch = errors.New("[ROUTER] route does not accept the update")

// HandlerNext is a function that represents the next handler in the middleware chain.
type HandlerNext func(ctx context.Context, handlerData *HandlerData) yaerrors.Error

// HandlerMiddleware is a middleware function that can process an update before or after the main handler.
type HandlerMiddleware func(
	ctx context.Context,
	handlerData *HandlerData,
	next HandlerNext,
) yaerrors.Error

// AddMiddleware adds one or more middlewares to the router. They also wrap
// the handlers of sub-routers, parents before children.
//
// Example usage:
//
//	r.AddMiddleware(yatgbot.Recover(), auth)
func (r *RouterGroup) AddMiddleware(mw ...HandlerMiddleware) {
	r.middlewares = append(r.middlewares, mw...)
}

// chainMiddleware wraps final so that the first middleware runs first.
func chainMiddleware(final HandlerNext, middlewares ...HandlerMiddleware) HandlerNext {
	for i := len(middlewares) - 1; i >= 0; i-- {
		middleware := middlewares[i]
		next := final

		final = func(ctx context.Context, hd *HandlerData) yaerrors.Error {
			return middleware(ctx, hd, next)
		}
	}

	return final
}

// wrapHandler turns a typed handler into a HandlerNext reading its payload
// from the update.
func wrapHandler[T any](
	payload func(*yatgtypes.Update) *T,
	h func(context.Context, *HandlerData, *T) yaerrors.Error,
) HandlerNext {
	return func(ctx context.Context, handlerData *HandlerData) yaerrors.Error {
		value := payload(handlerData.Update)
		if value == nil {
			return yaerrors.FromError(http.StatusContinue, ErrRouteMismatch, "[ROUTER] empty payload")
		}

		return h(ctx, handlerData, value)
	}
}

// collectMiddlewares collects middlewares from the current router and its parent routers.
func (r *RouterGroup) collectMiddlewares() []HandlerMiddleware {
	if r.parent == nil {
		return r.middlewares
	}

	return append(r.parent.collectMiddlewares(), r.middlewares...)
}

// Recover turns a panicking handler into a 500 error.
func Recover() HandlerMiddleware {
	return func(ctx context.Context, hd *HandlerData, next HandlerNext) (err yaerrors.Error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err = yaerrors.FromErrorWithLog(
					http.StatusInternalServerError,
					ErrHandlerPanicked,
					fmt.Sprintf("[ROUTER] %v", recovered),
					hd.Log,
				)
			}
		}()

		return next(ctx, hd)
	}
}

// Limiter admits or rejects one more hit of id in group. yaratelimit.RateLimit
// satisfies it.
type Limiter interface {
	Allow(ctx context.Context, id int64, group string) (bool, yaerrors.Error)
}

// Throttle drops the updates of a user that exceed the limit of group. A
// dropped update counts as handled.
//
// Example usage:
//
//	limiter := yaratelimit.NewRateLimit(cache, 3, time.Minute)
//	heavy := yatgbot.NewRouterGroup()
//	heavy.AddMiddleware(yatgbot.Throttle(limiter, "format"))
func Throttle(limiter Limiter, group string) HandlerMiddleware {
	return func(ctx context.Context, hd *HandlerData, next HandlerNext) yaerrors.Error {
		if hd.UserID == 0 {
			return next(ctx, hd)
		}

		allowed, err := limiter.Allow(ctx, hd.UserID, group)
		if err != nil {
			return err.Wrap("[ROUTER] throttle " + group)
		}

		if !allowed {
			hd.Log.Debugf("Throttled user %d in %s", hd.UserID, group)

			return nil
		}

		return next(ctx, hd)
	}
}
