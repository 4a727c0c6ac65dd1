package cmd

import (
	"errors"
	"fmt"

	"github.com/lepinkainen/videodash/api"
	"github.com/lepinkainen/videodash/types"
	"github.com/lepinkainen/videodash/ui"
)

type RegisterCmd struct {
	Username string `help:"Account username" required:""`
	FullName string `name:"full-name" help:"Full name shown on the account" required:""`
	Password string `help:"Account password, prompted for twice when omitted" env:"VIDEODASH_PASSWORD"`
}

func (cmd *RegisterCmd) Run(appCtx *types.AppContext) error {
	svc, err := newServices(appCtx)
	if err != nil {
		return err
	}

	password := cmd.Password
	if password == "" {
		if password, err = readSecret("Password: "); err != nil {
			return err
		}
		again, err := readSecret("Repeat password: ")
		if err != nil {
			return err
		}
		if again != password {
			return errors.New("passwords do not match")
		}
	}

	ctx, cancel := commandContext()
	defer cancel()

	err = svc.client.Register(ctx, api.RegisterRequest{
		Username: cmd.Username,
		Password: password,
		FullName: cmd.FullName,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ Account %s created", cmd.Username)))
	fmt.Printf("%s\n", ui.InfoStyle.Render("Run 'videodash login --username "+cmd.Username+"' to sign in."))
	return nil
}
