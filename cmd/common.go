package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/lepinkainen/videodash/api"
	"github.com/lepinkainen/videodash/dashboard"
	"github.com/lepinkainen/videodash/session"
	"github.com/lepinkainen/videodash/types"
)

// Swapped in tests.
var (
	stdin           = bufio.NewReader(os.Stdin)
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// services bundles what every remote command needs.
type services struct {
	client *api.Client
	store  *session.FileStore
}

func newServices(appCtx *types.AppContext) (*services, error) {
	if appCtx == nil || appCtx.Config == nil {
		return nil, errors.New("configuration not loaded")
	}
	cfg := appCtx.Config

	store := session.NewFileStore(cfg.SessionFile)
	client := api.NewClient(api.Options{
		BaseURL:           cfg.APIURL,
		Timeout:           cfg.RequestTimeout,
		UploadTimeout:     cfg.UploadTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		UserAgent:         "videodash/" + appCtx.VersionOrDefault(),
		Tokens:            store,
		Logger:            appCtx.Logger,
	})
	return &services{client: client, store: store}, nil
}

func (s *services) controller(appCtx *types.AppContext) *dashboard.Controller {
	return dashboard.NewController(s.client, appCtx.Logger, dashboard.Options{
		DeleteConcurrency: appCtx.Config.DeleteConcurrency,
	})
}

// commandContext is cancelled on Ctrl+C so in-flight requests stop.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// explain turns well-known errors into something the user can act on.
func explain(err error) error {
	var apiErr *api.APIError
	switch {
	case errors.Is(err, session.ErrNoToken):
		return fmt.Errorf("%w: run 'videodash login' first", err)
	case errors.As(err, &apiErr) && apiErr.Unauthorized():
		return fmt.Errorf("%w: session expired, run 'videodash login' again", err)
	}
	return err
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything but y/yes is a no.
func confirm(in *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
