package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetTextDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetTextDefault(rdr("\n"), "City", "Boston", &out)
	require.NoError(t, err)
	assert.Equal(t, "Boston", got)
	assert.Contains(t, out.String(), "City [Boston]")

	got, err = GetTextDefault(rdr("Austin\n"), "City", "Boston", &out)
	require.NoError(t, err)
	assert.Equal(t, "Austin", got)
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double enter", "a\nb\n\n\n", "a\nb"},
		{"crlf", "a\r\nb\r\n\r\n", "a\nb"},
		{"eof without blank line", "a\nb", "a\nb"},
		{"immediately empty", "\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tt.input), "Notes", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		got, err := Confirm(rdr(in), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestTerminalWidth(t *testing.T) {
	old := termSize
	t.Cleanup(func() { termSize = old })

	termSize = func(int) (int, int, error) { return 0, 0, errors.New("not a tty") }
	assert.Equal(t, defaultWidth, terminalWidth())

	termSize = func(int) (int, int, error) { return 140, 40, nil }
	assert.Equal(t, 140, terminalWidth())
}
