// Package command implements the line protocol spoken over the control pipe.
//
// One command per line, fields separated by '|':
//
//	add|<text>|<color>[|ignored...]
//	remove
//	quit
//
// Anything else parses to Invalid and is dropped by the daemon.
package command

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter separates the fields of a command line.
const Delimiter = "|"

// Keywords recognised as the first field of a line.
const (
	KeywordAdd    = "add"
	KeywordRemove = "remove"
	KeywordQuit   = "quit"
)

// ErrUnencodable is returned by Format for commands whose fields would not
// survive a round trip through the pipe.
var ErrUnencodable = errors.New("command cannot be encoded as a single line")

// Command is one parsed line. The concrete types are Add, Remove, Quit and
// Invalid.
type Command interface {
	Keyword() string
	isCommand()
}

// Add shows the indicator, or replaces its content when it already exists.
type Add struct {
	Text      string
	ColorSpec string
}

// Remove takes the indicator down.
type Remove struct{}

// Quit terminates the daemon.
type Quit struct{}

// Invalid carries a line that did not parse.
type Invalid struct {
	Raw string
}

func (Add) Keyword() string     { return KeywordAdd }
func (Remove) Keyword() string  { return KeywordRemove }
func (Quit) Keyword() string    { return KeywordQuit }
func (Invalid) Keyword() string { return "" }

func (Add) isCommand()     {}
func (Remove) isCommand()  {}
func (Quit) isCommand()    {}
func (Invalid) isCommand() {}

// Parse maps a raw line to a Command. It never fails: unknown keywords and
// short add lines come back as Invalid carrying the line as received.
func Parse(line string) Command {
	trimmed := strings.TrimSpace(line)
	fields := strings.Split(trimmed, Delimiter)

	switch fields[0] {
	case KeywordAdd:
		if len(fields) < 3 {
			return Invalid{Raw: line}
		}
		return Add{Text: fields[1], ColorSpec: fields[2]}
	case KeywordRemove:
		return Remove{}
	case KeywordQuit:
		return Quit{}
	default:
		return Invalid{Raw: line}
	}
}

// Format encodes cmd as a wire line without the trailing newline.
func Format(cmd Command) (string, error) {
	switch c := cmd.(type) {
	case Add:
		for _, field := range []string{c.Text, c.ColorSpec} {
			if strings.ContainsAny(field, Delimiter+"\r\n") {
				return "", fmt.Errorf("%w: field %q contains %q or a line break", ErrUnencodable, field, Delimiter)
			}
		}
		return strings.Join([]string{KeywordAdd, c.Text, c.ColorSpec}, Delimiter), nil
	case Remove:
		return KeywordRemove, nil
	case Quit:
		return KeywordQuit, nil
	case Invalid:
		if strings.ContainsAny(c.Raw, "\r\n") {
			return "", fmt.Errorf("%w: raw line contains a line break", ErrUnencodable)
		}
		return c.Raw, nil
	default:
		return "", fmt.Errorf("%w: unknown command %T", ErrUnencodable, cmd)
	}
}
