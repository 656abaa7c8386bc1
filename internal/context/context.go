package context

import "context"

type ctxKey int

const (
	requestIDCtxKey ctxKey = iota + 1
)

func NewContextWithRequestID(baseCtx context.Context, id string) context.Context {
	return context.WithValue(baseCtx, requestIDCtxKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDCtxKey).(string)
	return id, ok
}
