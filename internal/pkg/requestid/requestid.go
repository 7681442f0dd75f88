package requestid

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/google/uuid"
)

// Header 请求 ID 的 HTTP 头
const Header = "X-Request-ID"

type ctxKey struct{}

// Server 读取或生成请求 ID，写入 context 和响应头
func Server() middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			id := ""
			if tr, ok := transport.FromServerContext(ctx); ok {
				id = tr.RequestHeader().Get(Header)
				if id == "" {
					id = uuid.NewString()
				}
				tr.ReplyHeader().Set(Header, id)
			}
			if id == "" {
				id = uuid.NewString()
			}
			return handler(NewContext(ctx, id), req)
		}
	}
}

// NewContext 把请求 ID 放入 context
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext 取出请求 ID
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Valuer 供 log.With 使用，日志里自动带上 request_id
func Valuer() log.Valuer {
	return func(ctx context.Context) interface{} {
		return FromContext(ctx)
	}
}
