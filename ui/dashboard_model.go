package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videodash/dashboard"
	"github.com/lepinkainen/videodash/session"
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeUploadPath
)

// DashboardOptions configure the dashboard model.
type DashboardOptions struct {
	Version string
	// StorageQuota is the storage limit shown by the quota bar, in bytes.
	StorageQuota int64
}

// DashboardModel is the TUI model for browsing and managing the video collection
type DashboardModel struct {
	ctrl *dashboard.Controller
	ctx  context.Context
	opts DashboardOptions

	// UI components
	search     textinput.Model
	uploadPath textinput.Model
	spinner    spinner.Model
	quota      progress.Model

	// Interaction state
	cursor   int
	mode     inputMode
	inflight int    // commands issued but not yet answered
	notice   string // local feedback, cleared on the next key
	showHelp bool

	// Layout
	width  int
	height int

	// Control state
	quitting bool
}

// NewDashboardModel creates a dashboard over ctrl. Network calls issued by the
// model use ctx.
func NewDashboardModel(ctx context.Context, ctrl *dashboard.Controller, opts DashboardOptions) DashboardModel {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "filename"

	uploadPath := textinput.New()
	uploadPath.Prompt = "Upload file: "
	uploadPath.Placeholder = "/path/to/video.mp4"

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = BusyStyle

	return DashboardModel{
		ctrl:       ctrl,
		ctx:        ctx,
		opts:       opts,
		search:     search,
		uploadPath: uploadPath,
		spinner:    spin,
		quota:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Init implements tea.Model
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.spinner.Tick)
}

// Update implements tea.Model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		m.notice = ""

		snap := m.ctrl.Snapshot()
		if snap.Pending != nil {
			return m.handleConfirmationInput(msg, *snap.Pending)
		}
		switch m.mode {
		case modeSearch:
			return m.handleSearchInput(msg)
		case modeUploadPath:
			return m.handleUploadPathInput(msg)
		}
		return m.handleNormalInput(msg, snap)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshedMsg:
		m.settle()
		if errors.Is(msg.err, session.ErrNoToken) {
			m.notice = "Not logged in. Run 'videodash login' first."
		}

	case uploadedMsg:
		m.settle()
		if errors.Is(msg.err, dashboard.ErrUploadInProgress) {
			m.notice = "An upload is already in progress"
		}

	case deletedMsg:
		m.settle()

	case bulkDeletedMsg:
		m.settle()
		if errors.Is(msg.err, dashboard.ErrBulkDeleteInProgress) {
			m.notice = "A bulk delete is already in progress"
		}
	}

	m.clampCursor()
	return m, nil
}

func (m DashboardModel) handleNormalInput(msg tea.KeyMsg, snap dashboard.Snapshot) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "h", "?":
		m.showHelp = !m.showHelp

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(snap.View)-1 {
			m.cursor++
		}

	case " ":
		if v, ok := m.current(snap); ok {
			m.ctrl.Toggle(v.Filename)
		}

	case "a":
		m.ctrl.ToggleSelectAll()

	case "c":
		m.ctrl.ClearSelection()

	case "/":
		m.mode = modeSearch
		m.search.SetValue(snap.Query)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case "u":
		if snap.Upload.Busy() {
			m.notice = "An upload is already in progress"
			return m, nil
		}
		m.mode = modeUploadPath
		m.uploadPath.SetValue("")
		return m, m.uploadPath.Focus()

	case "r":
		m.inflight++
		return m, m.refreshCmd()

	case "d":
		v, ok := m.current(snap)
		if !ok {
			return m, nil
		}
		if _, err := m.ctrl.RequestDelete(v.Filename); err != nil {
			m.notice = err.Error()
		}

	case "D", "enter":
		if _, err := m.ctrl.RequestBulkDelete(); err != nil {
			m.notice = bulkRequestNotice(err)
		}
	}

	return m, nil
}

func (m DashboardModel) handleConfirmationInput(msg tea.KeyMsg, pending dashboard.PendingAction) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.inflight++
		return m, m.confirmCmd(pending.Kind)

	case "n", "N", "esc", "q":
		m.ctrl.CancelPending()
	}

	return m, nil
}

func (m DashboardModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil

	case "esc":
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.ctrl.SetQuery("")
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetQuery(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m DashboardModel) handleUploadPathInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.uploadPath.Blur()
		path := expandHome(strings.TrimSpace(m.uploadPath.Value()))
		if path == "" {
			return m, nil
		}
		m.inflight++
		return m, m.uploadCmd(path)

	case "esc":
		m.mode = modeBrowse
		m.uploadPath.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.uploadPath, cmd = m.uploadPath.Update(msg)
	return m, cmd
}

// The command builders below never touch the model; callers count them in
// inflight before returning.

func (m DashboardModel) refreshCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return refreshedMsg{err: ctrl.Refresh(ctx)}
	}
}

func (m DashboardModel) uploadCmd(path string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return uploadedMsg{path: path, err: ctrl.Upload(ctx, path, nil)}
	}
}

func (m DashboardModel) confirmCmd(kind dashboard.ActionKind) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		report, err := ctrl.ConfirmPending(ctx)
		if kind == dashboard.ActionBulkDelete {
			return bulkDeletedMsg{report: report, err: err}
		}
		return deletedMsg{report: report, err: err}
	}
}

func (m *DashboardModel) settle() {
	if m.inflight > 0 {
		m.inflight--
	}
}

func (m DashboardModel) current(snap dashboard.Snapshot) (dashboard.Video, bool) {
	if m.cursor < 0 || m.cursor >= len(snap.View) {
		return dashboard.Video{}, false
	}
	return snap.View[m.cursor], true
}

func (m *DashboardModel) clampCursor() {
	n := len(m.ctrl.Snapshot().View)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m DashboardModel) busy(snap dashboard.Snapshot) bool {
	return m.inflight > 0 || snap.Upload.Busy() || snap.BulkDelete == dashboard.BulkDeleteInFlight
}

// View implements tea.Model
func (m DashboardModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	snap := m.ctrl.Snapshot()
	if snap.Pending != nil {
		return m.renderConfirmationDialog(*snap.Pending)
	}
	return m.renderMainView(snap)
}

func (m DashboardModel) renderConfirmationDialog(p dashboard.PendingAction) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("⚠️  Confirm Deletion"))
	content.WriteString("\n\n")
	content.WriteString(p.Prompt())
	content.WriteString("\n\n")

	for _, name := range p.Filenames {
		content.WriteString(fmt.Sprintf("  • %s\n", name))
	}

	content.WriteString("\n")
	content.WriteString(ErrorStyle.Render("This action cannot be undone!"))
	content.WriteString("\n\n")
	content.WriteString("Press 'y' to confirm, 'n' to cancel")

	return content.String()
}

func (m DashboardModel) renderMainView(snap dashboard.Snapshot) string {
	var content strings.Builder

	version := m.opts.Version
	if version == "" {
		version = "dev"
	}
	content.WriteString(HeaderStyle.Render(fmt.Sprintf("videodash %s - My Videos", version)))
	content.WriteString("\n")
	content.WriteString(m.renderQuota(snap))
	content.WriteString("\n\n")

	switch {
	case m.mode == modeSearch:
		content.WriteString(m.search.View())
		content.WriteString("\n\n")
	case strings.TrimSpace(snap.Query) != "":
		content.WriteString(InfoStyle.Render(fmt.Sprintf("Search: %q (%d of %d)", snap.Query, len(snap.View), len(snap.Videos))))
		content.WriteString("\n\n")
	}

	content.WriteString(m.renderVideoList(snap))
	content.WriteString("\n")

	if line := m.renderStatus(snap); line != "" {
		content.WriteString(line)
		content.WriteString("\n")
	}
	if m.notice != "" {
		content.WriteString(ErrorStyle.Render(m.notice))
		content.WriteString("\n")
	}
	if m.mode == modeUploadPath {
		content.WriteString("\n")
		content.WriteString(m.uploadPath.View())
		content.WriteString("\n")
	}

	content.WriteString("\n")
	if m.showHelp {
		content.WriteString(m.renderHelp())
	} else {
		content.WriteString(MutedStyle.Render("Press 'h' for help"))
	}

	return content.String()
}

func (m DashboardModel) renderQuota(snap dashboard.Snapshot) string {
	if m.opts.StorageQuota <= 0 {
		return fmt.Sprintf("Storage used: %s", dashboard.FormatMB(snap.UsedBytes))
	}
	ratio := float64(snap.UsedBytes) / float64(m.opts.StorageQuota)
	if ratio > 1 {
		ratio = 1
	}
	return fmt.Sprintf("Storage: %s %s / %s",
		m.quota.ViewAs(ratio),
		dashboard.FormatMB(snap.UsedBytes),
		dashboard.FormatMB(m.opts.StorageQuota))
}

func (m DashboardModel) renderVideoList(snap dashboard.Snapshot) string {
	if !snap.Loaded {
		return m.spinner.View() + " Loading videos..."
	}
	if len(snap.Videos) == 0 {
		return InfoStyle.Render("No videos uploaded yet. Press 'u' to upload one.")
	}
	if len(snap.View) == 0 {
		return InfoStyle.Render("No videos match the search.")
	}

	var content strings.Builder

	selectAll := "[ ] Select all"
	if snap.AllSelected {
		selectAll = "[✓] Select all"
	}
	content.WriteString(fmt.Sprintf("%s (%d selected)\n\n", selectAll, len(snap.Selected)))

	for i, v := range snap.View {
		var line strings.Builder

		selected := snap.IsSelected(v.Filename)
		if selected {
			line.WriteString("[✓] ")
		} else {
			line.WriteString("[ ] ")
		}

		name := v.DisplayName()
		if i == m.cursor {
			if selected {
				line.WriteString(SelectedStyle.Reverse(true).Render(name))
			} else {
				line.WriteString(CursorStyle.Render(name))
			}
		} else {
			if selected {
				line.WriteString(SelectedStyle.Render(name))
			} else {
				line.WriteString(name)
			}
		}

		line.WriteString(MutedStyle.Render(fmt.Sprintf(" (%s)", v.SizeMB())))
		content.WriteString(line.String())
		content.WriteString("\n")
	}

	return content.String()
}

func (m DashboardModel) renderStatus(snap dashboard.Snapshot) string {
	text := snap.Status.Text
	if m.busy(snap) {
		if text == "" {
			text = "Working..."
		}
		return m.spinner.View() + " " + BusyStyle.Render(text)
	}
	if text == "" {
		return ""
	}
	switch snap.Status.Level {
	case dashboard.StatusSuccess:
		return SuccessStyle.Render(text)
	case dashboard.StatusError:
		return ErrorStyle.Render(text)
	default:
		return InfoStyle.Render(text)
	}
}

func (m DashboardModel) renderHelp() string {
	help := []string{
		"",
		"Navigation:",
		"  ↑/↓ or j/k   Move between videos",
		"  /            Search by filename (enter keeps, esc clears)",
		"",
		"Selection:",
		"  Space        Toggle video selection",
		"  a            Select or deselect all shown videos",
		"  c            Clear selection",
		"",
		"Actions:",
		"  u            Upload a video file",
		"  d            Delete the highlighted video (with confirmation)",
		"  D/Enter      Delete all selected videos (with confirmation)",
		"  r            Reload the video list",
		"  h/?          Toggle this help",
		"  q            Quit",
		"",
	}

	return strings.Join(help, "\n")
}

func bulkRequestNotice(err error) string {
	switch {
	case errors.Is(err, dashboard.ErrNothingSelected):
		return "No videos selected"
	case errors.Is(err, dashboard.ErrBulkDeleteInProgress):
		return "A bulk delete is already in progress"
	default:
		return err.Error()
	}
}

// expandHome resolves a leading "~/" against the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
