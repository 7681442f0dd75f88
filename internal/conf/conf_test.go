package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REPORT_SCRIBE_API_KEY", "")
	t.Setenv("REPORT_SCRIBE_MODE", "")

	bc, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, "Report Scribe API", bc.App.Name)
	assert.Equal(t, "1.0.0", bc.App.Version)
	assert.Equal(t, "development", bc.App.Env)
	assert.Equal(t, "0.0.0.0:8000", bc.Server.Http.Addr)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, bc.Server.Cors.AllowedOrigins)
	assert.Equal(t, ProviderGemini, bc.Model.Provider)
	assert.Empty(t, bc.Model.APIKey)
	assert.Equal(t, ModeModel, bc.Report.Mode)
	assert.Equal(t, "info", bc.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("REPORT_SCRIBE_API_KEY", "")
	t.Setenv("REPORT_SCRIBE_ADDR", "127.0.0.1:9000")
	t.Setenv("REPORT_SCRIBE_MODE", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: Scribe
  env: production
server:
  http:
    addr: 0.0.0.0:8080
  cors:
    allowed_origins: ["https://reports.example.com"]
model:
  api_key: file-key
  name: gemini-2.0-flash
report:
  mode: mock
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	bc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Scribe", bc.App.Name)
	assert.Equal(t, "production", bc.App.Env)
	assert.Equal(t, "127.0.0.1:9000", bc.Server.Http.Addr)
	assert.Equal(t, "60s", bc.Server.Http.Timeout)
	assert.Equal(t, []string{"https://reports.example.com"}, bc.Server.Cors.AllowedOrigins)
	assert.Equal(t, "env-key", bc.Model.APIKey)
	assert.Equal(t, "gemini-2.0-flash", bc.Model.Name)
	assert.Equal(t, ModeMock, bc.Report.Mode)
}

func TestParse_APIKeyEnvByProvider(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		geminiKey string
		scribeKey string
		want      string
	}{
		{"gemini key ignored for openai", "model:\n  provider: openai\n  api_key: deepseek-key\n", "gemini-secret", "", "deepseek-key"},
		{"gemini key applies to gemini", "model:\n  provider: gemini\n  api_key: file-key\n", "gemini-secret", "", "gemini-secret"},
		{"gemini key applies to default provider", "{}", "gemini-secret", "", "gemini-secret"},
		{"neutral key applies to openai", "model:\n  provider: openai\n  api_key: deepseek-key\n", "gemini-secret", "qwen-key", "qwen-key"},
		{"neutral key wins for gemini", "{}", "gemini-secret", "scribe-key", "scribe-key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REPORT_SCRIBE_MODE", "")
			t.Setenv("GEMINI_API_KEY", tt.geminiKey)
			t.Setenv("REPORT_SCRIBE_API_KEY", tt.scribeKey)

			bc, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, bc.Model.APIKey)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Setenv("REPORT_SCRIBE_MODE", "")

	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "app: ["},
		{"unknown provider", "model:\n  provider: llama"},
		{"unknown mode", "report:\n  mode: fancy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
