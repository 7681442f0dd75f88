package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-kratos/kratos/v2/log"
	goopenai "github.com/meguminnnnnnnnn/go-openai"

	"github.com/iWorld-y/report_scribe/internal/biz"
	"github.com/iWorld-y/report_scribe/internal/conf"
)

// EinoClient 通过 eino 调用 OpenAI 兼容接口（DeepSeek、Qwen 等）
type EinoClient struct {
	apiKey    string
	chatModel model.BaseChatModel
	log       *log.Helper
}

var _ biz.ContentGenerator = (*EinoClient)(nil)

// NewEinoClient 创建 OpenAI 兼容模型客户端，采样参数与 Gemini 保持一致
func NewEinoClient(ctx context.Context, c *conf.Model, logger log.Logger) (*EinoClient, error) {
	temperature := float32(geminiGenerationConfig.Temperature)
	topP := float32(geminiGenerationConfig.TopP)
	maxTokens := geminiGenerationConfig.MaxOutputTokens

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       c.Name,
		Timeout:     geminiTimeout,
		Temperature: &temperature,
		TopP:        &topP,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return newEinoClient(c.APIKey, chatModel, logger), nil
}

func newEinoClient(apiKey string, cm model.BaseChatModel, logger log.Logger) *EinoClient {
	return &EinoClient{
		apiKey:    apiKey,
		chatModel: cm,
		log:       log.NewHelper(log.With(logger, "module", "data/eino")),
	}
}

// GenerateContent 单轮调用，不做重试
func (c *EinoClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &biz.ModelError{Kind: biz.KindConfig, Err: errors.New("model api_key not configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	resp, err := c.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", classifyEinoError(ctx, err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", shapeError("empty completion")
	}

	c.log.WithContext(ctx).Debugf("completion received, response_len=%d", len(resp.Content))
	return strings.TrimSpace(resp.Content), nil
}

// classifyEinoError 服务端返回非 2xx 时归为上游状态错误，其余按网络错误处理
func classifyEinoError(ctx context.Context, err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &biz.ModelError{Kind: biz.KindUpstreamStatus, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &biz.ModelError{Kind: biz.KindUpstreamStatus, StatusCode: reqErr.HTTPStatusCode, Body: fmt.Sprint(reqErr.Err), Err: err}
	}
	return classifyTransportError(ctx, err)
}
