package eventjobs

import (
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// EventCompletionJob fires when a scheduled event's end time passes. The
// worker publishes a completion command so the normal handler path runs.
type EventCompletionJob struct {
	EventID string              `json:"event_id"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// Kind returns the job type identifier for River.
func (EventCompletionJob) Kind() string { return "event_completion" }

// RegistrationCloseJob fires at an event's registration deadline.
type RegistrationCloseJob struct {
	EventID string `json:"event_id"`
}

// Kind returns the job type identifier for River.
func (RegistrationCloseJob) Kind() string { return "event_registration_close" }

// EventSweepJob is the periodic safety net: it completes scheduled events
// whose end time passed without a completion job firing.
type EventSweepJob struct{}

// Kind returns the job type identifier for River.
func (EventSweepJob) Kind() string { return "event_sweep" }

// TransferExpiryJob is the periodic sweep that expires stale presidency
// transfer requests.
type TransferExpiryJob struct{}

// Kind returns the job type identifier for River.
func (TransferExpiryJob) Kind() string { return "transfer_expiry" }
