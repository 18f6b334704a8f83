package config

import (
	"encoding/binary"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/msgcodec/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), cfg.Order())
	assert.Len(t, cfg.CodecOptions(), 2)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	cfg := Default()
	cfg.ByteOrder = ByteOrderBig
	cfg.SourceDirs = []string{"msgs", "types"}
	cfg.Limits.MaxSequenceLength = 64
	cfg.Log = Log{Level: "debug", Format: "json"}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, binary.ByteOrder(binary.BigEndian), got.Order())
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nsource_dirs: [a]\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.SourceDirs)
	assert.Equal(t, Default().Limits, got.Limits)
	assert.Equal(t, ByteOrderLittle, got.ByteOrder)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	tests := []struct {
		name string
		path string
		kind errors.Kind
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), errors.KindNotFound},
		{"unknown key", write("unknown.yaml", "version: 1\ncolour: red\n"), errors.KindInvalidData},
		{"bad version", write("version.yaml", "version: 7\n"), errors.KindUnsupported},
		{"bad order", write("order.yaml", "version: 1\nbyte_order: middle\n"), errors.KindInvalidInput},
		{"bad level", write("level.yaml", "version: 1\nlog: {level: loud}\n"), errors.KindInvalidInput},
		{"bad format", write("format.yaml", "version: 1\nlog: {format: xml}\n"), errors.KindInvalidInput},
		{"negative limit", write("limit.yaml", "version: 1\nlimits: {max_string_size: -1}\n"), errors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: tt.kind}), err.Error())
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	l, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	cfg.Log = Log{Level: "error", Format: "json"}
	l, err = cfg.NewLogger()
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))
}
