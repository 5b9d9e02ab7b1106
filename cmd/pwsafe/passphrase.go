package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdinLines is shared by every non-TTY prompt, so input buffered past
// one line is still there for the next prompt.
var stdinLines = bufio.NewReader(os.Stdin)

// promptPassphrase reads a passphrase from the controlling terminal
// without echo. When stdin is not a TTY (e.g. piped input in a test or
// script), it falls back to reading a single line, matching how a
// non-interactive invocation is expected to supply a passphrase.
func promptPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := stdinLines.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return pass, nil
}
