// Package cli implements hbnbctl, a terminal client for the same HBnB backend
// the web front-end talks to.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/dukerupert/hbnb/internal/backend"
	"github.com/dukerupert/hbnb/internal/config"
	"github.com/dukerupert/hbnb/internal/session"
)

// errLoginRequired is returned by commands that need a saved token.
var errLoginRequired = errors.New("login required: run `hbnbctl login`")

// errSessionExpired is returned after the backend rejected the saved token.
var errSessionExpired = errors.New("session expired: run `hbnbctl login`")

// App carries the I/O and locations the commands use.
type App struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader

	// ConfigDir holds config.yaml and the token file.
	ConfigDir string

	// ReadPassword reads a password without echo. When nil the password is
	// read as a line from In.
	ReadPassword func() (string, error)

	// HTTPClient overrides the client used for backend calls.
	HTTPClient *http.Client

	reader *bufio.Reader
}

func (a *App) tokens() *session.FileStore {
	return session.NewFileStore(a.ConfigDir)
}

func (a *App) client() (*backend.Client, error) {
	cfg, err := config.LoadCLI(a.ConfigDir)
	if err != nil {
		return nil, err
	}
	opts := []backend.Option{backend.WithTimeout(30 * time.Second)}
	if a.HTTPClient != nil {
		opts = append(opts, backend.WithHTTPClient(a.HTTPClient))
	}
	return backend.NewClient(cfg.APIBase, opts...), nil
}

func (a *App) readLine(prompt string) (string, error) {
	if a.reader == nil {
		a.reader = bufio.NewReader(a.In)
	}
	fmt.Fprint(a.Out, prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *App) readPassword(prompt string) (string, error) {
	if a.ReadPassword == nil {
		return a.readLine(prompt)
	}
	fmt.Fprint(a.Out, prompt)
	pw, err := a.ReadPassword()
	fmt.Fprintln(a.Out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}

// fail turns a backend error into the command's error. A 401 drops the saved
// token.
func (a *App) fail(prefix string, err error) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		if clearErr := a.tokens().Clear(); clearErr != nil {
			return clearErr
		}
		return errSessionExpired
	}
	return fmt.Errorf("%s: %w", prefix, err)
}

func (a *App) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(a.Out, format+"\n", args...)
}

func (a *App) notice(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(a.Out, format+"\n", args...)
}
