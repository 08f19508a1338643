package logger

import (
	"context"
	"log/slog"
)

// operationHandler adds the op_id attribute to records logged under a
// context that carries an operation ID.
type operationHandler struct {
	slog.Handler
}

func (h operationHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := OperationIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("op_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h operationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return operationHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h operationHandler) WithGroup(name string) slog.Handler {
	return operationHandler{Handler: h.Handler.WithGroup(name)}
}
