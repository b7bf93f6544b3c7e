package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerRecordsByLevel(t *testing.T) {
	mock := NewMockLogger()

	mock.Debug("d1")
	mock.Info("i1", F("k", "v"))
	mock.Info("i2")
	mock.Warn("w1")
	mock.Error("e1")

	assert.Equal(t, []string{"i1", "i2"}, mock.Messages("info"))
	assert.Equal(t, []string{"d1"}, mock.Messages("debug"))
	assert.Equal(t, []string{"w1"}, mock.Messages("warn"))
	assert.Equal(t, []string{"e1"}, mock.Messages("error"))
	assert.Empty(t, mock.Messages("fatal"))
}

func TestMockLoggerWithHelpersReturnSelf(t *testing.T) {
	mock := NewMockLogger()
	mock.WithError(errors.New("boom")).Info("after error")
	mock.WithField("k", "v").Info("after field")

	assert.Equal(t, []string{"after error", "after field"}, mock.Messages("info"))
}

func TestLogrusAdapter(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{})

	adapter := NewLogrusAdapter(base)
	adapter.Info("hello", F("session_id", "abc"))

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "session_id")
	assert.Contains(t, out, "abc")
}

func TestLogrusAdapterWithField(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	NewLogrusAdapter(base).WithField("year", 2021).Warn("mismatch")

	assert.Contains(t, buf.String(), "2021")
	assert.Contains(t, buf.String(), "mismatch")
}

func TestLogrusAdapterNilLogger(t *testing.T) {
	adapter := NewLogrusAdapter(nil)
	require.NotNil(t, adapter)
	var _ Logger = adapter
}
