package dashboard

import (
	"fmt"
	"strings"
)

// UploadPhase is the lifecycle position of the current upload attempt.
type UploadPhase int

const (
	UploadIdle UploadPhase = iota
	Uploading
	UploadSucceeded
	UploadFailed
)

// UploadState is Idle, Uploading, Succeeded or Failed(Reason).
type UploadState struct {
	Phase  UploadPhase
	Reason string
}

// Busy reports whether the upload control must be disabled.
func (s UploadState) Busy() bool {
	return s.Phase == Uploading
}

func (s UploadState) String() string {
	switch s.Phase {
	case Uploading:
		return "uploading"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return fmt.Sprintf("failed(%s)", s.Reason)
	default:
		return "idle"
	}
}

// BulkDeleteState tracks the bulk delete orchestrator.
type BulkDeleteState int

const (
	BulkDeleteIdle BulkDeleteState = iota
	BulkDeleteInFlight
	BulkDeleteCompleted
)

func (s BulkDeleteState) String() string {
	switch s {
	case BulkDeleteInFlight:
		return "in-flight"
	case BulkDeleteCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// StatusLevel decides how a status line is styled.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusError
)

// Status is the user-facing message left by the last operation.
type Status struct {
	Text  string
	Level StatusLevel
}

// ActionKind distinguishes the destructive actions that need confirmation.
type ActionKind int

const (
	ActionDelete ActionKind = iota
	ActionBulkDelete
)

// PendingAction is a destructive action waiting for the user's acknowledgment.
type PendingAction struct {
	Kind      ActionKind
	Filenames []string
}

// Prompt is the question shown before the action runs.
func (p PendingAction) Prompt() string {
	if p.Kind == ActionDelete {
		return "Are you sure you want to delete this video?"
	}
	return fmt.Sprintf("Are you sure you want to delete %d video(s)?", len(p.Filenames))
}

// DeleteReport summarizes a confirmed delete once every request has settled.
type DeleteReport struct {
	Requested []string
	Deleted   []string
	Failed    []string
}

// Summary is the completion status text.
func (r DeleteReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Deleted %d video(s)", len(r.Deleted))
	if len(r.Failed) > 0 {
		fmt.Fprintf(&b, ", %d failed", len(r.Failed))
	}
	return b.String()
}
