package biz

import (
	"errors"
	"fmt"
)

// ModelErrorKind 模型调用失败的分类
type ModelErrorKind int

const (
	// KindConfig 缺少 API Key 等配置，未发起请求
	KindConfig ModelErrorKind = iota + 1
	// KindTimeout 请求超过截止时间
	KindTimeout
	// KindUpstreamStatus 上游返回非 2xx
	KindUpstreamStatus
	// KindResponseShape 2xx 但响应结构不符合预期
	KindResponseShape
	// KindTransport 其他网络层错误，包括调用方取消
	KindTransport
)

func (k ModelErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTimeout:
		return "timeout"
	case KindUpstreamStatus:
		return "upstream_status"
	case KindResponseShape:
		return "response_shape"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// ModelError 模型调用错误，调用方通过 Kind 判断失败类型
type ModelError struct {
	Kind       ModelErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *ModelError) Error() string {
	switch e.Kind {
	case KindUpstreamStatus:
		return fmt.Sprintf("model api error (status %d): %s", e.StatusCode, e.Body)
	default:
		if e.Err != nil {
			return fmt.Sprintf("model %s error: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("model %s error", e.Kind)
	}
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// ModelErrorKindOf 取出错误链上的 ModelError 分类，没有则返回 0
func ModelErrorKindOf(err error) ModelErrorKind {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Kind
	}
	return 0
}

// IsModelError 判断错误链上是否有指定分类的 ModelError
func IsModelError(err error, kind ModelErrorKind) bool {
	return ModelErrorKindOf(err) == kind
}
