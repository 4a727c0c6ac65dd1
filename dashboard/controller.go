// Package dashboard owns the video collection of one logged-in session and the
// selection, search, upload and delete state layered on top of it.
//
// Network calls never run while the controller lock is held. The only state
// mutation that follows a batch of concurrent deletes is the single refresh
// issued after all of them settle.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/videodash/media"
)

var (
	ErrUploadInProgress     = errors.New("an upload is already in progress")
	ErrBulkDeleteInProgress = errors.New("a bulk delete is already in progress")
	ErrNothingSelected      = errors.New("no videos selected")
	ErrNoPendingAction      = errors.New("nothing to confirm")
	ErrActionPending        = errors.New("another action is waiting for confirmation")
	ErrUnknownVideo         = errors.New("video not in collection")
)

const (
	statusUploading     = "Uploading... Checking Quotas..."
	statusUploaded      = "Upload Successful!"
	statusUploadFailed  = "Upload Failed"
	statusDeleteFailed  = "Failed to delete video"
	statusFetchingError = "Failed to fetch videos"
)

// VideoService is the remote video service as seen by the dashboard.
type VideoService interface {
	ListVideos(ctx context.Context) ([]Video, error)
	Upload(ctx context.Context, file UploadFile) error
	Delete(ctx context.Context, filename string) error
}

// serverMessager is implemented by errors carrying a human readable message
// supplied by the server, such as a quota violation.
type serverMessager interface {
	ServerMessage() string
}

// ReaderWrapper lets callers observe upload progress by wrapping the file reader.
type ReaderWrapper func(r io.Reader, size int64) io.Reader

// Options tune the controller.
type Options struct {
	// DeleteConcurrency caps in-flight delete requests. Zero means no cap.
	DeleteConcurrency int
}

// Controller is the dashboard session controller.
type Controller struct {
	svc  VideoService
	log  zerolog.Logger
	opts Options

	mu       sync.Mutex
	videos   []Video
	loaded   bool
	selected Selection
	query    string
	upload   UploadState
	bulk     BulkDeleteState
	pending  *PendingAction
	status   Status

	// refresh tickets, see Refresh
	issued  uint64
	applied uint64
}

// NewController creates a controller with an empty collection. Call Refresh to load it.
func NewController(svc VideoService, log zerolog.Logger, opts Options) *Controller {
	return &Controller{
		svc:  svc,
		log:  log.With().Str("component", "dashboard").Logger(),
		opts: opts,
	}
}

// Refresh replaces the collection with the server's list and clears the
// selection. On failure the current collection is kept and the error returned.
//
// When refreshes overlap, the response of the most recently issued one wins;
// an older response arriving late is discarded.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	ticket := c.issued
	c.mu.Unlock()

	videos, err := c.svc.ListVideos(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg(statusFetchingError)
		return fmt.Errorf("list videos: %w", err)
	}

	unique, dropped := dedupe(videos)
	if len(dropped) > 0 {
		c.log.Warn().Strs("filenames", dropped).Msg("Server returned duplicate filenames")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket < c.applied {
		c.log.Debug().Uint64("ticket", ticket).Uint64("applied", c.applied).Msg("Dropping stale video list")
		return nil
	}
	c.applied = ticket
	c.videos = unique
	c.loaded = true
	c.selected.Clear()
	c.log.Debug().Int("videos", len(unique)).Msg("Video list refreshed")
	return nil
}

// SetQuery changes the search query. Selected videos that fall out of the new
// view are deselected so a bulk action only ever touches visible videos.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query

	visible := make(map[string]struct{})
	for _, v := range Filter(c.videos, query) {
		visible[v.Filename] = struct{}{}
	}
	c.selected.Retain(func(name string) bool {
		_, ok := visible[name]
		return ok
	})
}

// Toggle flips the selection of filename. Filenames outside the collection are
// ignored and reported as false.
func (c *Controller) Toggle(filename string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.containsLocked(filename) {
		return false
	}
	c.selected.Toggle(filename)
	return true
}

// ToggleSelectAll applies select-all to the current filtered view.
func (c *Controller) ToggleSelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected.ToggleSelectAll(Filter(c.videos, c.query))
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected.Clear()
}

// Upload sends the file at path as the session's single in-flight upload and
// refreshes the collection on success. A second call while one is running
// returns ErrUploadInProgress and changes nothing.
func (c *Controller) Upload(ctx context.Context, path string, wrap ReaderWrapper) error {
	c.mu.Lock()
	if c.upload.Busy() {
		c.mu.Unlock()
		return ErrUploadInProgress
	}
	c.upload = UploadState{Phase: Uploading}
	c.status = Status{Text: statusUploading, Level: StatusInfo}
	c.mu.Unlock()

	err := c.sendFile(ctx, path, wrap)

	c.mu.Lock()
	if err != nil {
		reason := uploadFailureReason(err)
		c.upload = UploadState{Phase: UploadFailed, Reason: reason}
		c.status = Status{Text: "Error: " + reason, Level: StatusError}
		c.mu.Unlock()
		c.log.Error().Err(err).Str("path", path).Msg("Upload failed")
		return fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	c.upload = UploadState{Phase: UploadSucceeded}
	c.status = Status{Text: statusUploaded, Level: StatusSuccess}
	c.mu.Unlock()

	c.log.Info().Str("path", path).Msg("Upload finished")
	// refresh failures are logged by Refresh and keep the stale list
	_ = c.Refresh(ctx)
	return nil
}

func (c *Controller) sendFile(ctx context.Context, path string, wrap ReaderWrapper) error {
	info, err := media.Inspect(path)
	if err != nil {
		return &localFileError{err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return &localFileError{err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if wrap != nil {
		r = wrap(f, info.Size)
	}

	return c.svc.Upload(ctx, UploadFile{
		Name:        info.Name,
		ContentType: info.ContentType,
		Size:        info.Size,
		Reader:      r,
	})
}

// RequestDelete asks for confirmation before deleting filename.
func (c *Controller) RequestDelete(filename string) (PendingAction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return PendingAction{}, ErrActionPending
	}
	if !c.containsLocked(filename) {
		return PendingAction{}, fmt.Errorf("%w: %s", ErrUnknownVideo, filename)
	}
	c.pending = &PendingAction{Kind: ActionDelete, Filenames: []string{filename}}
	return *c.pending, nil
}

// RequestBulkDelete asks for confirmation before deleting every selected video.
func (c *Controller) RequestBulkDelete() (PendingAction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bulk == BulkDeleteInFlight {
		return PendingAction{}, ErrBulkDeleteInProgress
	}
	if c.pending != nil {
		return PendingAction{}, ErrActionPending
	}
	if c.selected.Len() == 0 {
		return PendingAction{}, ErrNothingSelected
	}
	c.pending = &PendingAction{Kind: ActionBulkDelete, Filenames: c.selected.Names()}
	return *c.pending, nil
}

// CancelPending discards the action waiting for confirmation, if any.
func (c *Controller) CancelPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// ConfirmPending runs the action waiting for confirmation.
func (c *Controller) ConfirmPending(ctx context.Context) (DeleteReport, error) {
	c.mu.Lock()
	p := c.pending
	if p == nil {
		c.mu.Unlock()
		return DeleteReport{}, ErrNoPendingAction
	}
	if p.Kind == ActionBulkDelete && c.bulk == BulkDeleteInFlight {
		c.mu.Unlock()
		return DeleteReport{}, ErrBulkDeleteInProgress
	}
	c.pending = nil
	if p.Kind == ActionBulkDelete {
		c.bulk = BulkDeleteInFlight
		c.status = Status{Text: fmt.Sprintf("Deleting %d video(s)...", len(p.Filenames)), Level: StatusInfo}
	}
	c.mu.Unlock()

	if p.Kind == ActionDelete {
		return c.deleteOne(ctx, p.Filenames[0])
	}
	return c.bulkDelete(ctx, p.Filenames), nil
}

func (c *Controller) deleteOne(ctx context.Context, filename string) (DeleteReport, error) {
	report := DeleteReport{Requested: []string{filename}}

	if err := c.svc.Delete(ctx, filename); err != nil {
		c.log.Error().Err(err).Str("filename", filename).Msg("Delete failed")
		c.setStatus(Status{Text: statusDeleteFailed, Level: StatusError})
		report.Failed = []string{filename}
		return report, fmt.Errorf("delete %s: %w", filename, err)
	}

	report.Deleted = []string{filename}
	c.setStatus(Status{Text: report.Summary(), Level: StatusSuccess})
	_ = c.Refresh(ctx)
	return report, nil
}

// bulkDelete fires one request per filename at once. A failed request is
// logged and counted; it never stops the others.
func (c *Controller) bulkDelete(ctx context.Context, filenames []string) DeleteReport {
	errs := make([]error, len(filenames))

	var g errgroup.Group
	if c.opts.DeleteConcurrency > 0 {
		g.SetLimit(c.opts.DeleteConcurrency)
	}
	for i, name := range filenames {
		i, name := i, name
		g.Go(func() error {
			if err := c.svc.Delete(ctx, name); err != nil {
				c.log.Error().Err(err).Str("filename", name).Msg("Delete failed")
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	report := DeleteReport{Requested: filenames}
	for i, name := range filenames {
		if errs[i] != nil {
			report.Failed = append(report.Failed, name)
		} else {
			report.Deleted = append(report.Deleted, name)
		}
	}

	level := StatusSuccess
	if len(report.Failed) > 0 {
		level = StatusError
	}
	c.mu.Lock()
	c.bulk = BulkDeleteCompleted
	c.status = Status{Text: report.Summary(), Level: level}
	c.mu.Unlock()

	c.log.Info().
		Int("deleted", len(report.Deleted)).
		Int("failed", len(report.Failed)).
		Msg("Bulk delete completed")

	_ = c.Refresh(ctx)
	return report
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
}

func (c *Controller) containsLocked(filename string) bool {
	for _, v := range c.videos {
		if v.Filename == filename {
			return true
		}
	}
	return false
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Videos      []Video
	View        []Video
	Selected    []string
	AllSelected bool
	Query       string
	Loaded      bool
	Upload      UploadState
	BulkDelete  BulkDeleteState
	Pending     *PendingAction
	Status      Status
	UsedBytes   int64
}

// IsSelected reports whether filename is part of the selection.
func (s Snapshot) IsSelected(filename string) bool {
	for _, name := range s.Selected {
		if name == filename {
			return true
		}
	}
	return false
}

// Snapshot derives the filtered view and select-all state from canonical state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	videos := make([]Video, len(c.videos))
	copy(videos, c.videos)
	view := Filter(videos, c.query)

	snap := Snapshot{
		Videos:      videos,
		View:        view,
		Selected:    c.selected.Names(),
		AllSelected: c.selected.AllSelected(view),
		Query:       c.query,
		Loaded:      c.loaded,
		Upload:      c.upload,
		BulkDelete:  c.bulk,
		Status:      c.status,
		UsedBytes:   TotalSize(videos),
	}
	if c.pending != nil {
		p := *c.pending
		p.Filenames = append([]string(nil), c.pending.Filenames...)
		snap.Pending = &p
	}
	return snap
}

type localFileError struct {
	err error
}

func (e *localFileError) Error() string { return e.err.Error() }
func (e *localFileError) Unwrap() error { return e.err }

// uploadFailureReason prefers the server's own message, since quota
// violations can only be explained by the server.
func uploadFailureReason(err error) string {
	var local *localFileError
	if errors.As(err, &local) {
		return local.Error()
	}
	var sm serverMessager
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return sm.ServerMessage()
	}
	return statusUploadFailed
}
