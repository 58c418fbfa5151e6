package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  signup")
	fmt.Fprintln(out, "  login")
	fmt.Fprintln(out, "  logout")
	fmt.Fprintln(out, "  whoami")
	fmt.Fprintln(out, "  play")
	fmt.Fprintln(out, "  ranking [limit]")
	fmt.Fprintln(out, "  history")
	fmt.Fprintln(out, "  exit")
}

func promptCredentials(reader *bufio.Reader, out io.Writer) (username, password string, err error) {
	fmt.Fprint(out, "username: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(line)
	if username == "" {
		return "", "", errors.New("username is required")
	}

	password, err = readPassword(reader, out)
	if err != nil {
		return "", "", err
	}
	if password == "" {
		return "", "", errors.New("password is required")
	}
	return username, password, nil
}

// readPassword suppresses echo when stdin is a terminal. Piped input falls
// back to a plain line read so scripted sessions keep working.
func readPassword(reader *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func parsePositiveLimit(args []string, index int, defaultValue int) (int, error) {
	if len(args) <= index {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(args[index])
	if err != nil || value <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return value, nil
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("typetrivia service unavailable at %s", serverURL)
	}
	return err
}
