// Package spacetime invokes the external spacetime CLI.
package spacetime

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command is the name of the external CLI binary.
const Command = "spacetime"

// ExitError reports an invocation that ran but exited nonzero.
type ExitError struct {
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s %s exited with status %d", Command, strings.Join(e.Args, " "), e.Code)
}

// Run invokes the spacetime CLI with inherited stdio so its interactive
// login flow can talk to the user directly.
func Run(args ...string) error {
	fmt.Printf("Running: %s %s\n", Command, strings.Join(args, " "))
	cmd := exec.Command(Command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return &ExitError{Args: args, Code: exitErr.ExitCode()}
	case errors.Is(err, exec.ErrNotFound):
		return fmt.Errorf("running %s: %w (is it in your PATH?)", Command, err)
	default:
		return fmt.Errorf("running %s: %w", Command, err)
	}
}

// Logout logs the CLI out of its current session.
func Logout() error {
	return Run("logout")
}

// LoginServerIssued runs the server-issued login flow against addr.
func LoginServerIssued(addr string) error {
	return Run("login", "--server-issued-login", addr)
}
