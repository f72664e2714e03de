// Package secret reads passwords from a terminal without echoing them,
// falling back to a plain line read when stdin is not a terminal (the
// scripted/piped CLI use case).
package secret

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

// ReadPassword prompts on stderr and reads a password from in. When in
// is a terminal, input is read in raw mode with echo suppressed
// (golang.org/x/term.ReadPassword); otherwise a single line is read
// verbatim, which lets tests and scripted invocations pipe a password
// in without a pseudo-terminal.
func ReadPassword(in *os.File, prompt string) (*keytab.SecureString, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		defer zeroByteSlice(b)
		return keytab.NewSecureString(string(b)), nil
	}

	return readLine(in)
}

func readLine(in io.Reader) (*keytab.SecureString, error) {
	r := bufio.NewReader(in)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	return keytab.NewSecureString(line), nil
}

func zeroByteSlice(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
