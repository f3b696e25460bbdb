package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataroomhq/dataroom/pkg/logger"
)

func TestNew_JSONDefault(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Info("stored", slog.String("path", "ab/cd/file.pdf"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "stored", record["msg"])
	assert.Equal(t, "ab/cd/file.pdf", record["path"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithTextFormatter())

	log.Info("stored")

	assert.True(t, strings.Contains(buf.String(), "msg=stored"))
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("suppressed")
	assert.Empty(t, buf.String())

	log.Warn("emitted")
	assert.NotEmpty(t, buf.String())
}

func TestNew_StaticAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "ingest")),
	)

	log.Info("ready")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ingest", record["service"])
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat("yaml"))
	})
}
