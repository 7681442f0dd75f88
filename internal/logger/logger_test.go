package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T) (*logrus.Logger, *bytes.Buffer) {
	t.Helper()
	l, err := InitLogger("debug", "")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func TestInitLogger_FallsBackToInfo(t *testing.T) {
	l, err := InitLogger("not-a-level", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestInitLogger_CreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scribe.log")
	l, err := InitLogger("info", path)
	require.NoError(t, err)

	l.Info("hello file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello file")
}

func TestCustomFormatter(t *testing.T) {
	l, buf := newBufferLogger(t)

	l.WithFields(logrus.Fields{"student": "Alex", "kind": "timeout"}).Warn("model call failed")

	line := buf.String()
	assert.Contains(t, line, "[WARN]")
	assert.Contains(t, line, "logger_test.go:")
	assert.True(t, strings.HasSuffix(line, "model call failed kind=timeout student=Alex\n"), line)
}

func TestKratosLogger(t *testing.T) {
	l, buf := newBufferLogger(t)
	kl := NewKratosLogger(l)

	h := log.NewHelper(log.With(kl, "caller", "report.go:42"))
	h.Errorw(log.DefaultMessageKey, "generate failed", "student", "Alex")

	line := buf.String()
	assert.Contains(t, line, "[ERRO] [report.go:42] generate failed student=Alex")
}

func TestKratosLogger_Unpaired(t *testing.T) {
	l, buf := newBufferLogger(t)
	kl := NewKratosLogger(l)

	require.NoError(t, kl.Log(log.LevelInfo, "lonely"))
	assert.Contains(t, buf.String(), "lonely=KEYVALS UNPAIRED")
}

func TestKratosLogger_DebugFiltered(t *testing.T) {
	l, buf := newBufferLogger(t)
	l.SetLevel(logrus.InfoLevel)
	kl := NewKratosLogger(l)

	require.NoError(t, kl.Log(log.LevelDebug, log.DefaultMessageKey, "hidden"))
	assert.Empty(t, buf.String())
}
