package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user for a decision. The TUI answers with modal views;
// the CLI reads the terminal or takes the answer from flags.
type Prompter interface {
	Confirm(text string) bool
	// PromptText returns the entered text and false when the user cancels.
	PromptText(text, def string) (string, bool)
}

// TerminalPrompter reads answers line by line.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *TerminalPrompter) Confirm(text string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", text)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// PromptText shows def in brackets; an empty line accepts it. EOF cancels.
func (p *TerminalPrompter) PromptText(text, def string) (string, bool) {
	fmt.Fprintf(p.out, "%s [%s]: ", text, def)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return def, true
	}
	return line, true
}

// StaticPrompter answers every question the same way.
type StaticPrompter struct {
	Answer string
	Accept bool
}

func (p StaticPrompter) Confirm(string) bool { return p.Accept }

func (p StaticPrompter) PromptText(_, def string) (string, bool) {
	if !p.Accept {
		return "", false
	}
	if p.Answer == "" {
		return def, true
	}
	return p.Answer, true
}
