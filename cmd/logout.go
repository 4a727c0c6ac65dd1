package cmd

import (
	"fmt"

	"github.com/lepinkainen/videodash/types"
	"github.com/lepinkainen/videodash/ui"
)

// LogoutCmd forgets the stored token. The server keeps no session to end.
type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(appCtx *types.AppContext) error {
	svc, err := newServices(appCtx)
	if err != nil {
		return err
	}
	if err := svc.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ Logged out"))
	return nil
}
