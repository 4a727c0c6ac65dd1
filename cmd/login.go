package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/lepinkainen/videodash/types"
	"github.com/lepinkainen/videodash/ui"
)

// LoginCmd exchanges credentials for a token and stores it in the session file.
type LoginCmd struct {
	Username string `help:"Account username" required:""`
	Password string `help:"Account password, prompted for when omitted" env:"VIDEODASH_PASSWORD"`
}

func (cmd *LoginCmd) Run(appCtx *types.AppContext) error {
	svc, err := newServices(appCtx)
	if err != nil {
		return err
	}

	password := cmd.Password
	if password == "" {
		password, err = readSecret("Password: ")
		if err != nil {
			return err
		}
	}

	ctx, cancel := commandContext()
	defer cancel()

	token, err := svc.client.Login(ctx, cmd.Username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := svc.store.Set(token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	appCtx.Logger.Info().Str("username", cmd.Username).Str("session", svc.store.Path()).Msg("Logged in")
	fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Logged in as %s", cmd.Username)))
	return nil
}

// readSecret prompts without echo on a terminal and falls back to a plain
// line read when stdin is piped.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if stdinIsTerminal() {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", errors.New("password must not be empty")
	}
	return secret, nil
}
