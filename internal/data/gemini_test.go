package data

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iWorld-y/report_scribe/internal/biz"
	"github.com/iWorld-y/report_scribe/internal/conf"
)

// fakeGemini 记录请求次数和最后一次请求
type fakeGemini struct {
	calls  atomic.Int32
	status int
	body   string

	mu      sync.Mutex
	lastURL string
	lastReq map[string]interface{}
}

func (f *fakeGemini) last() (string, map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastURL, f.lastReq
}

func (f *fakeGemini) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		f.mu.Lock()
		f.lastURL = r.URL.String()
		assert.NoError(t, json.Unmarshal(raw, &f.lastReq))
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
	}
}

func newTestClient(t *testing.T, f *fakeGemini, apiKey string) (*GeminiClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	gc := NewGeminiClient(&conf.Model{APIKey: apiKey, BaseURL: srv.URL + "/v1beta/", Name: "gemini-test"}, log.DefaultLogger)
	return gc, srv
}

func TestGeminiClient_Success(t *testing.T) {
	f := &fakeGemini{status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"  Hello.  "}]}}]}`}
	gc, _ := newTestClient(t, f, "secret key")

	got, err := gc.GenerateContent(context.Background(), "Write a report.")
	require.NoError(t, err)
	assert.Equal(t, "Hello.", got)
	assert.Equal(t, int32(1), f.calls.Load())
	lastURL, _ := f.last()
	assert.Equal(t, "/v1beta/models/gemini-test:generateContent?key=secret+key", lastURL)
}

func TestGeminiClient_RequestShape(t *testing.T) {
	f := &fakeGemini{status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`}
	gc, _ := newTestClient(t, f, "key")

	_, err := gc.GenerateContent(context.Background(), "the prompt")
	require.NoError(t, err)

	_, lastReq := f.last()
	contents := lastReq["contents"].([]interface{})
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	require.Len(t, parts, 1)
	assert.Equal(t, "the prompt", parts[0].(map[string]interface{})["text"])

	cfg := lastReq["generationConfig"].(map[string]interface{})
	assert.Equal(t, 0.7, cfg["temperature"])
	assert.Equal(t, 0.8, cfg["topP"])
	assert.Equal(t, float64(40), cfg["topK"])
	assert.Equal(t, float64(1000), cfg["maxOutputTokens"])
	assert.Equal(t, "text/plain", cfg["responseMimeType"])

	safety := lastReq["safetySettings"].([]interface{})
	require.Len(t, safety, 4)
	var categories []string
	for _, s := range safety {
		m := s.(map[string]interface{})
		categories = append(categories, m["category"].(string))
		assert.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", m["threshold"])
	}
	assert.Equal(t, []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}, categories)
}

func TestGeminiClient_MissingKey(t *testing.T) {
	f := &fakeGemini{status: http.StatusOK, body: `{}`}
	gc, _ := newTestClient(t, f, "")

	_, err := gc.GenerateContent(context.Background(), "prompt")
	assert.True(t, biz.IsModelError(err, biz.KindConfig))
	assert.Equal(t, int32(0), f.calls.Load())
}

func TestGeminiClient_UpstreamStatus(t *testing.T) {
	f := &fakeGemini{status: http.StatusTooManyRequests, body: `{"error":{"message":"quota"}}`}
	gc, _ := newTestClient(t, f, "key")

	_, err := gc.GenerateContent(context.Background(), "prompt")
	var me *biz.ModelError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, biz.KindUpstreamStatus, me.Kind)
	assert.Equal(t, http.StatusTooManyRequests, me.StatusCode)
	assert.Contains(t, me.Error(), "429")
	assert.Contains(t, me.Error(), "quota")
	// 不重试
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestGeminiClient_ResponseShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing candidates", `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{"empty candidates", `{"candidates":[]}`},
		{"missing content", `{"candidates":[{"finishReason":"SAFETY"}]}`},
		{"empty parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"missing text", `{"candidates":[{"content":{"parts":[{"inlineData":{}}]}}]}`},
		{"not json", `<html>oops</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeGemini{status: http.StatusOK, body: tt.body}
			gc, _ := newTestClient(t, f, "key")

			_, err := gc.GenerateContent(context.Background(), "prompt")
			assert.True(t, biz.IsModelError(err, biz.KindResponseShape), "got %v", err)
		})
	}
}

func TestGeminiClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	gc := NewGeminiClient(&conf.Model{APIKey: "key", BaseURL: srv.URL}, log.DefaultLogger)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gc.GenerateContent(ctx, "prompt")
	assert.True(t, biz.IsModelError(err, biz.KindTimeout), "got %v", err)
}

func TestGeminiClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	gc := NewGeminiClient(&conf.Model{APIKey: "key", BaseURL: url}, log.DefaultLogger)
	_, err := gc.GenerateContent(context.Background(), "prompt")
	assert.True(t, biz.IsModelError(err, biz.KindTransport), "got %v", err)
}

func TestGeminiClient_CancelReleasesConnection(t *testing.T) {
	ignore := goleak.IgnoreCurrent()

	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 读完请求体后 server 才会监听连接关闭
		_, _ = io.Copy(io.Discard, r.Body)
		close(started)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))

	hc := &http.Client{Transport: &http.Transport{}}
	gc := NewGeminiClient(&conf.Model{APIKey: "key", BaseURL: srv.URL}, log.DefaultLogger, WithHTTPClient(hc))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := gc.GenerateContent(ctx, "prompt")
		errCh <- err
	}()

	<-started
	cancel()

	err := <-errCh
	assert.True(t, biz.IsModelError(err, biz.KindTransport), "got %v", err)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	gc.Close()
	srv.Close()
	goleak.VerifyNone(t, ignore)
}

func TestNewContentGenerator(t *testing.T) {
	gen, cleanup, err := NewContentGenerator(&conf.Model{Provider: conf.ProviderGemini}, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &GeminiClient{}, gen)

	gen, cleanup, err = NewContentGenerator(nil, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &GeminiClient{}, gen)

	_, _, err = NewContentGenerator(&conf.Model{Provider: "llama"}, log.DefaultLogger)
	assert.Error(t, err)
}
