package t9

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "first and last keys", input: "abcxyz", want: "222999"},
		{name: "whole alphabet", input: "abcdefghijklmnopqrstuvwxyz", want: "22233344455566677778889999"},
		{name: "spaces dropped", input: "zhang san", want: "94264726"},
		{name: "digits dropped", input: "r2d2", want: "73"},
		{name: "punctuation dropped", input: "o'brien", want: "627436"},
		{name: "non-latin dropped", input: "Иван", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.input))
		})
	}
}

func TestEncode_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Encode("abc"), Encode("ABC"))
	assert.Equal(t, Encode("jose"), Encode("JoSe"))
}

func TestEncode_NeverLongerThanInput(t *testing.T) {
	for _, in := range []string{"hello world", "1234", "ÀÉÎ", "a-b-c"} {
		assert.LessOrEqual(t, len(Encode(in)), len(in), in)
	}
}

func TestLayout_Full(t *testing.T) {
	keys := Layout(false)

	require.Len(t, keys, 15)
	assert.Equal(t, "1", keys[0].Label)
	assert.Equal(t, "pqrs", keys[6].Letters)
	assert.Equal(t, "+", keys[10].Letters)
	assert.Equal(t, KindBlank, keys[12].Kind)
	assert.Equal(t, KindCall, keys[13].Kind)
	assert.Equal(t, KindDelete, keys[14].Kind)

	// Every letter caption agrees with Encode
	for _, k := range keys {
		if k.Kind == KindDigit && k.Letters != "+" && k.Letters != "" {
			assert.Equal(t, strings.Repeat(k.Label, len(k.Letters)), Encode(k.Letters))
		}
	}
}

func TestLayout_CompactIsBottomRow(t *testing.T) {
	keys := Layout(true)

	assert.Equal(t, []Key{KeyBlank, KeyCall, KeyDelete}, keys)
}

func TestLayout_ReturnsCopy(t *testing.T) {
	keys := Layout(false)
	keys[0].Label = "X"

	assert.Equal(t, "1", Layout(false)[0].Label)
}

func TestRows(t *testing.T) {
	rows := Rows(Layout(false))

	require.Len(t, rows, 5)
	for _, row := range rows {
		assert.Len(t, row, Columns)
	}
	assert.Len(t, Rows(Layout(true)), 1)
}

func TestKey_Digit(t *testing.T) {
	d, ok := Layout(false)[10].Digit()
	assert.True(t, ok)
	assert.Equal(t, '0', d)

	_, ok = KeyCall.Digit()
	assert.False(t, ok)
	_, ok = Layout(false)[9].Digit()
	assert.False(t, ok)
}

func TestKeyFor(t *testing.T) {
	k, ok := KeyFor('5')
	require.True(t, ok)
	assert.Equal(t, "5", k.Label)

	k, ok = KeyFor('S')
	require.True(t, ok)
	assert.Equal(t, "7", k.Label)

	k, ok = KeyFor('#')
	require.True(t, ok)
	assert.Equal(t, KindSymbol, k.Kind)

	_, ok = KeyFor('!')
	assert.False(t, ok)
}
