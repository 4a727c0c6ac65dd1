package cmd

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videodash/types"
	"github.com/lepinkainen/videodash/ui"
)

type DashboardCmd struct{}

func (cmd *DashboardCmd) Run(appCtx *types.AppContext) error {
	svc, err := newServices(appCtx)
	if err != nil {
		return err
	}
	if _, err := svc.store.Get(); err != nil {
		return explain(err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	model := ui.NewDashboardModel(ctx, svc.controller(appCtx), ui.DashboardOptions{
		Version:      appCtx.VersionOrDefault(),
		StorageQuota: appCtx.Config.StorageQuotaBytes,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
