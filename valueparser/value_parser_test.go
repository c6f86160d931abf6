package valueparser_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/valueparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mode uint8

func (m *mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "fast":
		*m = 1
	case "slow":
		*m = 2
	default:
		return errors.New("unknown mode")
	}

	return nil
}

type color string

func (c *color) Unmarshal(data string) error {
	if data != "red" && data != "blue" {
		return errors.New("unknown color")
	}

	*c = color(data)

	return nil
}

func TestParseValue_Basic_Works(t *testing.T) {
	t.Parallel()

	i, err := valueparser.ParseValue[int]("-42")
	require.Nil(t, err)
	assert.Equal(t, -42, i)

	u, err := valueparser.ParseValue[uint16]("8080")
	require.Nil(t, err)
	assert.Equal(t, uint16(8080), u)

	f, err := valueparser.ParseValue[float64]("1.5")
	require.Nil(t, err)
	assert.InDelta(t, 1.5, f, 1e-9)

	b, err := valueparser.ParseValue[bool]("true")
	require.Nil(t, err)
	assert.True(t, b)

	raw, err := valueparser.ParseValue[[]byte]("abc")
	require.Nil(t, err)
	assert.Equal(t, []byte("abc"), raw)
}

func TestParseValue_Overflow_Fails(t *testing.T) {
	t.Parallel()

	_, err := valueparser.ParseValue[uint8]("300")

	require.NotNil(t, err)
	assert.ErrorIs(t, err, valueparser.ErrUnparsableValue)
}

func TestParseValue_Unmarshalers_Work(t *testing.T) {
	t.Parallel()

	m, err := valueparser.ParseValue[mode]("FAST")
	require.Nil(t, err)
	assert.Equal(t, mode(1), m)

	fallback, err := valueparser.ParseValue[mode]("7")
	require.Nil(t, err)
	assert.Equal(t, mode(7), fallback)

	c, err := valueparser.ParseValue[color]("red")
	require.Nil(t, err)
	assert.Equal(t, color("red"), c)

	_, err = valueparser.ParseValue[color]("green")
	assert.NotNil(t, err)
}

func TestParseValueByType_Composite_Works(t *testing.T) {
	t.Parallel()

	durations, err := valueparser.ParseValueByType("1s, 250ms", reflect.TypeFor[[]time.Duration]())
	require.Nil(t, err)
	assert.Equal(t, []time.Duration{time.Second, 250 * time.Millisecond}, durations.Interface())

	m, err := valueparser.ParseValueByType("a:1,b:2", reflect.TypeFor[map[string]int]())
	require.Nil(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, m.Interface())

	ptr, err := valueparser.ParseValueByType("12", reflect.TypeFor[*int64]())
	require.Nil(t, err)
	assert.Equal(t, int64(12), *ptr.Interface().(*int64))

	_, err = valueparser.ParseValueByType("x", reflect.TypeFor[chan int]())
	require.NotNil(t, err)
	assert.ErrorIs(t, err, valueparser.ErrUnknownType)
}

func TestParseMap_MissingSeparator_Fails(t *testing.T) {
	t.Parallel()

	_, err := valueparser.ParseValueByType("a=1", reflect.TypeFor[map[string]int]())

	require.NotNil(t, err)
	assert.ErrorIs(t, err, valueparser.ErrInvalidEntry)
}

func TestParseArray_Works(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		separator string
		want      []string
	}{
		{name: "custom separator", value: "message; callback_query", separator: ";", want: []string{"message", "callback_query"}},
		{name: "default separator", value: "message,edited_message", want: []string{"message", "edited_message"}},
		{name: "blank entries are skipped", value: "message, ,callback_query,", want: []string{"message", "callback_query"}},
		{name: "empty value", value: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := valueparser.ParseArray[string](tt.value, tt.separator)
			require.Nil(t, err)

			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("bad entry is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := valueparser.ParseArray[int]("1,x", "")
		require.NotNil(t, err)

		assert.ErrorIs(t, err, valueparser.ErrUnparsableValue)
	})

	t.Run("slice fields skip blank entries too", func(t *testing.T) {
		t.Parallel()

		got, err := valueparser.ParseValueByType("1, ,2,", reflect.TypeFor[[]int]())
		require.Nil(t, err)

		assert.Equal(t, []int{1, 2}, got.Interface().([]int))
	})
}
