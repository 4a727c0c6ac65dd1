package cmd

import (
	"fmt"
	"os"

	"github.com/lepinkainen/videodash/dashboard"
	"github.com/lepinkainen/videodash/types"
	"github.com/lepinkainen/videodash/ui"
)

// DeleteCmd removes videos by server filename. One name is a single delete,
// several are sent together as a bulk delete.
type DeleteCmd struct {
	Files []string `arg:"" name:"filenames" help:"Server filenames of the videos to delete"`
	Yes   bool     `short:"y" help:"Do not ask for confirmation"`
}

func (cmd *DeleteCmd) Run(appCtx *types.AppContext) error {
	svc, err := newServices(appCtx)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	ctrl := svc.controller(appCtx)
	if err := ctrl.Refresh(ctx); err != nil {
		return explain(err)
	}

	pending, err := cmd.request(ctrl)
	if err != nil {
		return err
	}

	if !cmd.Yes && !confirm(stdin, os.Stdout, pending.Prompt()) {
		ctrl.CancelPending()
		fmt.Printf("%s\n", ui.InfoStyle.Render("Cancelled"))
		return nil
	}

	report, err := ctrl.ConfirmPending(ctx)
	for _, name := range report.Deleted {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ "+name))
	}
	for _, name := range report.Failed {
		fmt.Printf("%s\n", ui.ErrorStyle.Render("❌ "+name))
	}
	if err != nil {
		return explain(err)
	}

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(ctrl.Snapshot().Status.Text))
	if len(report.Failed) > 0 {
		return fmt.Errorf("failed to delete %d of %d video(s)", len(report.Failed), len(report.Requested))
	}
	return nil
}

func (cmd *DeleteCmd) request(ctrl *dashboard.Controller) (dashboard.PendingAction, error) {
	names := uniqueNames(cmd.Files)
	if len(names) == 1 {
		return ctrl.RequestDelete(names[0])
	}

	for _, name := range names {
		if !ctrl.Toggle(name) {
			return dashboard.PendingAction{}, fmt.Errorf("%w: %s", dashboard.ErrUnknownVideo, name)
		}
	}
	return ctrl.RequestBulkDelete()
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
