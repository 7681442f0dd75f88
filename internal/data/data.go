package data

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/report_scribe/internal/biz"
	"github.com/iWorld-y/report_scribe/internal/conf"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewContentGenerator)

// NewContentGenerator 根据配置创建模型客户端
func NewContentGenerator(c *conf.Model, logger log.Logger) (biz.ContentGenerator, func(), error) {
	helper := log.NewHelper(logger)
	provider := conf.ProviderGemini
	if c != nil && c.Provider != "" {
		provider = c.Provider
	}

	switch provider {
	case conf.ProviderGemini:
		gc := NewGeminiClient(c, logger)
		if gc.apiKey == "" {
			helper.Warn("GEMINI_API_KEY not configured, model calls will fail until it is set")
		}
		cleanup := func() {
			helper.Info("closing the model client")
			gc.Close()
		}
		return gc, cleanup, nil

	case conf.ProviderOpenAI:
		ec, err := NewEinoClient(context.Background(), c, logger)
		if err != nil {
			return nil, nil, err
		}
		if ec.apiKey == "" {
			helper.Warn("REPORT_SCRIBE_API_KEY not configured, model calls will fail until it is set")
		}
		return ec, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown model provider: %s", provider)
	}
}
