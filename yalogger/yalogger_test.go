package yalogger_test

import (
	"testing"

	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_Unmarshal_Works(t *testing.T) {
	t.Parallel()

	tests := map[string]yalogger.Level{
		"info":    yalogger.InfoLevel,
		"WARN":    yalogger.WarnLevel,
		"warning": yalogger.WarnLevel,
		" trace ": yalogger.TraceLevel,
		"Error":   yalogger.ErrorLevel,
	}

	for input, expected := range tests {
		var level yalogger.Level

		require.NoError(t, level.UnmarshalText([]byte(input)))
		assert.Equal(t, expected, level, input)
	}
}

func TestLevel_Unmarshal_RejectsUnknown(t *testing.T) {
	t.Parallel()

	var level yalogger.Level

	assert.ErrorIs(t, level.Unmarshal("loud"), yalogger.ErrInvalidLogLevel)
	assert.Equal(t, "Unknown", yalogger.Level(42).String())
	assert.Equal(t, "Debug", yalogger.DebugLevel.String())
}

func TestLogger_Fields_Works(t *testing.T) {
	t.Parallel()

	log := yalogger.NewDefaultLogger()

	id := uuid.New()
	child := log.WithRequestUUID(id).WithFields(map[string]any{yalogger.KeyChatID: int64(7)})

	assert.Equal(t, id.String(), child.GetField(yalogger.KeyRequestID))
	assert.Equal(t, int64(7), child.GetField(yalogger.KeyChatID))
	assert.Nil(t, log.GetField(yalogger.KeyRequestID))

	fields := child.GetFields()
	fields["mutated"] = true

	assert.Nil(t, child.GetField("mutated"))
}

func TestLogger_RandomRequestID_IsUUID(t *testing.T) {
	t.Parallel()

	log := yalogger.NewBaseLogger(&yalogger.Config{Level: yalogger.InfoLevel}).NewLogger()

	raw, ok := log.WithRandomRequestID().GetField(yalogger.KeyRequestID).(string)
	require.True(t, ok)

	_, err := uuid.Parse(raw)
	assert.NoError(t, err)
}
