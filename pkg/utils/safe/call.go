package safe

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Call executes handler synchronously and converts a panic into an error
//
// Behavior:
//   - Returns the handler's error unchanged
//   - Recovers from panics, logs them with the stack and returns an error
//     carrying the recovered value
//   - Tags given in tags are attached to the panic error so callers can
//     classify it the same way as regular failures
func Call(ctx context.Context, handler func(ctx context.Context) error, tags ...goerr.Tag) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			ctxlog.From(ctx).Error("panic in handler",
				"recover", r,
				"stack", string(stack))

			opts := []goerr.Option{goerr.V("recover", r)}
			for _, tag := range tags {
				opts = append(opts, goerr.T(tag))
			}
			err = goerr.New("panic in handler", opts...)
		}
	}()

	return handler(ctx)
}
