package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/genai"

	"github.com/iWorld-y/report_scribe/internal/biz"
	"github.com/iWorld-y/report_scribe/internal/conf"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.0-flash-exp"

	// geminiTimeout 单次调用的固定超时
	geminiTimeout = 30 * time.Second
)

// 采样参数固定，不随请求变化
var (
	geminiGenerationConfig = generationConfig{
		Temperature:      0.7,
		TopP:             0.8,
		TopK:             40,
		MaxOutputTokens:  1000,
		ResponseMimeType: "text/plain",
	}

	geminiSafetySettings = []safetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	}
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	TopK             int     `json:"topK"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type safetySetting struct {
	Category  genai.HarmCategory       `json:"category"`
	Threshold genai.HarmBlockThreshold `json:"threshold"`
}

// generateContentRequest Gemini generateContent 请求体
type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

// generateContentResponse 只声明需要读取的字段，指针用于区分字段缺失
type generateContentResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiClient Gemini REST 客户端，实现 biz.ContentGenerator
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	log     *log.Helper
}

var _ biz.ContentGenerator = (*GeminiClient)(nil)

// GeminiOption 客户端可选项
type GeminiOption func(*GeminiClient)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) GeminiOption {
	return func(c *GeminiClient) {
		c.client = hc
	}
}

// NewGeminiClient 创建 Gemini 客户端，API Key 为空时仍可创建，调用时返回配置错误
func NewGeminiClient(c *conf.Model, logger log.Logger, opts ...GeminiOption) *GeminiClient {
	gc := &GeminiClient{
		baseURL: defaultGeminiBaseURL,
		model:   defaultGeminiModel,
		client:  &http.Client{},
		log:     log.NewHelper(log.With(logger, "module", "data/gemini")),
	}
	if c != nil {
		gc.apiKey = c.APIKey
		if c.BaseURL != "" {
			gc.baseURL = strings.TrimRight(c.BaseURL, "/")
		}
		if c.Name != "" {
			gc.model = c.Name
		}
	}
	for _, o := range opts {
		o(gc)
	}
	return gc
}

// GenerateContent 调用一次 generateContent，不做重试
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &biz.ModelError{Kind: biz.KindConfig, Err: errors.New("GEMINI_API_KEY not configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	payload, err := json.Marshal(generateContentRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig,
		SafetySettings:   geminiSafetySettings,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request failed: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.log.WithContext(ctx).Debugf("calling model %s, prompt_len=%d", c.model, len(prompt))

	res, err := c.client.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &biz.ModelError{Kind: biz.KindUpstreamStatus, StatusCode: res.StatusCode, Body: string(body)}
	}

	text, err := extractText(body)
	if err != nil {
		return "", err
	}

	c.log.WithContext(ctx).Debugf("model %s responded in %v, response_len=%d", c.model, time.Since(start), len(text))
	return text, nil
}

// extractText 读取 candidates[0].content.parts[0].text
func extractText(body []byte) (string, error) {
	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", shapeError("unmarshal response failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", shapeError("response has no candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", shapeError("candidate has no content parts")
	}
	if cand.Content.Parts[0].Text == nil {
		return "", shapeError("first part has no text")
	}
	return strings.TrimSpace(*cand.Content.Parts[0].Text), nil
}

func shapeError(format string, args ...interface{}) error {
	return &biz.ModelError{Kind: biz.KindResponseShape, Err: fmt.Errorf(format, args...)}
}

// classifyTransportError 区分超时与其他网络错误
func classifyTransportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &biz.ModelError{Kind: biz.KindTimeout, Err: err}
	}
	return &biz.ModelError{Kind: biz.KindTransport, Err: err}
}

// Close 释放空闲连接
func (c *GeminiClient) Close() {
	c.client.CloseIdleConnections()
}
