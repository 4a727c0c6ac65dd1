package ui

import "github.com/lepinkainen/videodash/dashboard"

// TUI Message Types for results of controller calls run as tea.Cmds

type refreshedMsg struct {
	err error
}

type uploadedMsg struct {
	path string
	err  error
}

type deletedMsg struct {
	report dashboard.DeleteReport
	err    error
}

type bulkDeletedMsg struct {
	report dashboard.DeleteReport
	err    error
}
