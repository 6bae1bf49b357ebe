// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With debug level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("node started")
		entry := lastEntry(t, buffer)
		assert.Equal(t, "debug", entry["level"])
		assert.Equal(t, "node started", entry["msg"])

		buffer.Reset()
		logger.Debugf("node %s started", "alpha")
		entry = lastEntry(t, buffer)
		assert.Equal(t, "node alpha started", entry["msg"])
	})
	t.Run("With info level skips debug entries", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Equal(t, InfoLevel, logger.LogLevel())

		logger.Debug("hidden")
		require.Empty(t, buffer.String())

		logger.Infof("visible %d", 1)
		entry := lastEntry(t, buffer)
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "visible 1", entry["msg"])

		buffer.Reset()
		logger.Warn("careful")
		entry = lastEntry(t, buffer)
		assert.Equal(t, "warn", entry["level"])
	})
	t.Run("With error level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		require.Equal(t, ErrorLevel, logger.LogLevel())

		logger.Warnf("hidden %s", "warn")
		require.Empty(t, buffer.String())

		logger.Errorf("failed: %v", errors.New("boom"))
		entry := lastEntry(t, buffer)
		assert.Equal(t, "error", entry["level"])
		assert.Equal(t, "failed: boom", entry["msg"])
	})
	t.Run("With warning level", func(t *testing.T) {
		logger := NewZap(WarningLevel, io.Discard)
		require.Equal(t, WarningLevel, logger.LogLevel())
		require.Len(t, logger.LogOutput(), 1)
		require.NoError(t, logger.Flush())
	})
	t.Run("With fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer).With("node", "alpha", "port", 9000, "dangling")
		logger.Info("ready")
		entry := lastEntry(t, buffer)
		assert.Equal(t, "alpha", entry["node"])
		assert.EqualValues(t, 9000, entry["port"])
		assert.Equal(t, "dangling", entry["_"])
	})
	t.Run("With no fields returns the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, io.Discard)
		require.Same(t, logger, logger.With())
		require.Same(t, logger, logger.With(1, 2))
	})
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger

	logger.Debug("debug")
	logger.Debugf("debug %s", "msg")
	logger.Info("info")
	logger.Infof("info %s", "msg")
	logger.Warn("warn")
	logger.Warnf("warn %s", "msg")
	logger.Error("error")
	logger.Errorf("error %s", "msg")

	require.Equal(t, InfoLevel, logger.LogLevel())
	require.Equal(t, []io.Writer{io.Discard}, logger.LogOutput())
	require.Equal(t, DiscardLogger, logger.With("key", "value"))
	require.NoError(t, logger.Flush())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARNING", WarningLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INVALID", InvalidLevel.String())
}

func lastEntry(t *testing.T, buffer *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.NotEmpty(t, lines)
	entry := make(map[string]any)
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}
