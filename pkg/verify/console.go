// Package verify answers the two-factor login challenge interactively.
package verify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"igclient/pkg/session"
)

// ErrNoInput is returned when the input ends before an answer was read
var ErrNoInput = errors.New("no input")

// Console prompts on out and reads answers from in
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole creates a console verifier
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// ChooseMethod lists the choices and reads the number of one of them. A
// single choice is picked without asking.
func (c *Console) ChooseMethod(choices []session.Choice) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("no verification methods offered")
	}
	if len(choices) == 1 {
		fmt.Fprintf(c.out, "Sending security code via %s\n", choices[0].Label)
		return choices[0].Value, nil
	}

	fmt.Fprintln(c.out, "Select where to send the security code:")
	for i, choice := range choices {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, choice.Label)
	}

	for {
		fmt.Fprint(c.out, "Your choice: ")
		answer, err := c.readLine()
		if err != nil {
			return "", err
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1].Value, nil
		}
		fmt.Fprintf(c.out, "Please enter a number between 1 and %d\n", len(choices))
	}
}

// ProvideCode reads the security code
func (c *Console) ProvideCode() (string, error) {
	for {
		fmt.Fprint(c.out, "Enter the security code: ")
		code, err := c.readLine()
		if err != nil {
			return "", err
		}
		if code != "" {
			return code, nil
		}
	}
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(c.in.Text()), nil
}
