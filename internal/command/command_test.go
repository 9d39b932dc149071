package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{name: "add", line: "add|Build: OK|#00FF00", want: Add{Text: "Build: OK", ColorSpec: "#00FF00"}},
		{name: "add extra fields ignored", line: "add|A|#FFFFFF|extra|more", want: Add{Text: "A", ColorSpec: "#FFFFFF"}},
		{name: "add empty text", line: "add||FFF", want: Add{Text: "", ColorSpec: "FFF"}},
		{name: "add surrounding whitespace", line: "  add|X|#FF0000 \n", want: Add{Text: "X", ColorSpec: "#FF0000"}},
		{name: "add keeps inner spaces", line: "add| padded |zzzzzz", want: Add{Text: " padded ", ColorSpec: "zzzzzz"}},
		{name: "add too short", line: "add|only-text", want: Invalid{Raw: "add|only-text"}},
		{name: "add keyword alone", line: "add", want: Invalid{Raw: "add"}},
		{name: "remove", line: "remove", want: Remove{}},
		{name: "remove extra fields", line: "remove|now|please", want: Remove{}},
		{name: "quit", line: "quit\r\n", want: Quit{}},
		{name: "quit extra fields", line: "quit|x", want: Quit{}},
		{name: "keyword is case sensitive", line: "ADD|A|#FFF", want: Invalid{Raw: "ADD|A|#FFF"}},
		{name: "unknown keyword", line: "hello", want: Invalid{Raw: "hello"}},
		{name: "invalid keeps surrounding whitespace", line: "  hello \t", want: Invalid{Raw: "  hello \t"}},
		{name: "keyword with spaces", line: "remove |x", want: Invalid{Raw: "remove |x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(tt.line))
		})
	}
}

func TestFormat(t *testing.T) {
	line, err := Format(Add{Text: "Build: OK", ColorSpec: "#00FF00"})
	require.NoError(t, err)
	require.Equal(t, "add|Build: OK|#00FF00", line)
	require.Equal(t, Add{Text: "Build: OK", ColorSpec: "#00FF00"}, Parse(line))

	line, err = Format(Remove{})
	require.NoError(t, err)
	require.Equal(t, "remove", line)

	line, err = Format(Quit{})
	require.NoError(t, err)
	require.Equal(t, "quit", line)
}

func TestFormatRejectsUnencodableFields(t *testing.T) {
	_, err := Format(Add{Text: "a|b", ColorSpec: "#fff"})
	require.ErrorIs(t, err, ErrUnencodable)

	_, err = Format(Add{Text: "two\nlines", ColorSpec: "#fff"})
	require.ErrorIs(t, err, ErrUnencodable)

	_, err = Format(Invalid{Raw: "x\ny"})
	require.ErrorIs(t, err, ErrUnencodable)
}
