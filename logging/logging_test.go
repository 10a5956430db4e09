/*
 * Copyright 2022 Google LLC.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{Level: zapcore.InfoLevel, Format: "xml"}.Validate())
	assert.Error(t, Config{Level: zapcore.Level(42), Format: FormatJSON}.Validate())
}

func TestJSONLogger(t *testing.T) {
	var b bytes.Buffer
	logger, err := NewWithWriter(Config{Level: zapcore.InfoLevel, Format: FormatJSON}, &b)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("trained", zap.Int("nodes", 7))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(b.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "trained", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 7, entry["nodes"])
	assert.Contains(t, entry, "ts")
}

func TestConsoleLogger(t *testing.T) {
	var b bytes.Buffer
	logger, err := NewWithWriter(Config{Level: zapcore.DebugLevel, Format: FormatConsole}, &b)
	require.NoError(t, err)
	logger.Debug("reading dataset", zap.String("path", "cars.csv"))
	require.NoError(t, logger.Sync())
	assert.Contains(t, b.String(), "DEBUG")
	assert.Contains(t, b.String(), "reading dataset")
	assert.Contains(t, b.String(), `"path": "cars.csv"`)
}

func TestNewObserved(t *testing.T) {
	logger, logs := NewObserved(zapcore.WarnLevel)
	logger.Info("ignored")
	logger.Warn("kept")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}
