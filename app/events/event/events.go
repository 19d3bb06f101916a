// Package eventevents defines the NATS subjects and payloads for the event
// lifecycle workflow.
package eventevents

import (
	"time"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Inbound command subjects.
const (
	EventCreateRequestedV1  = "event.create.requested.v1"
	EventApproveRequestedV1 = "event.approve.requested.v1"
	EventRejectRequestedV1  = "event.reject.requested.v1"
	EventJoinRequestedV1    = "event.join.requested.v1"
	EventLeaveRequestedV1   = "event.leave.requested.v1"
	EventCompleteRequestedV1 = "event.complete.requested.v1"
	PaymentStatusUpdatedV1  = "payment.status.updated.v1"
)

// Outbound result subjects.
const (
	EventCreatedV1            = "event.create.success.v1"
	EventCreationFailedV1     = "event.create.failed.v1"
	EventApprovedV1           = "event.approve.success.v1"
	EventRejectedV1           = "event.reject.success.v1"
	EventReviewFailedV1       = "event.review.failed.v1"
	EventJoinedV1             = "event.join.success.v1"
	EventJoinFailedV1         = "event.join.failed.v1"
	EventExternalFormV1       = "event.join.external_form.v1"
	EventCapacityReachedV1    = "event.capacity.reached.v1"
	EventLeftV1               = "event.leave.success.v1"
	EventLeaveFailedV1        = "event.leave.failed.v1"
	EventCompletedV1          = "event.completed.v1"
	EventRegistrationClosedV1 = "event.registration.closed.v1"
)

// EventCreateRequestedPayloadV1 proposes a new event. ScheduleText, when
// set, is parsed as a natural-language start time and wins over StartTime.
type EventCreateRequestedPayloadV1 struct {
	ClubID       clubtypes.ClubID               `json:"club_id"`
	GuildID      sharedtypes.GuildID            `json:"guild_id"`
	Actor        sharedtypes.Actor              `json:"actor"`
	Title        string                         `json:"title"`
	Description  string                         `json:"description,omitempty"`
	EventType    string                         `json:"event_type,omitempty"`
	ScheduleText string                         `json:"schedule_text,omitempty"`
	StartTime    *time.Time                     `json:"start_time,omitempty"`
	EndTime      *time.Time                     `json:"end_time,omitempty"`
	LocationType eventtypes.LocationType        `json:"location_type"`
	Location     string                         `json:"location,omitempty"`
	MinParticipants int                         `json:"min_participants,omitempty"`
	MaxParticipants int                         `json:"max_participants,omitempty"`
	Registration eventtypes.RegistrationSettings `json:"registration"`
	Team         eventtypes.TeamSettings        `json:"team"`
	Eligibility  eventtypes.EligibilityCriteria `json:"eligibility"`
	PosterURL    string                         `json:"poster_url,omitempty"`
}

// EventCreatedPayloadV1 announces a persisted pending event; the gateway
// routes it to the server-admin review surface.
type EventCreatedPayloadV1 struct {
	Event eventtypes.Event `json:"event"`
}

// EventReviewPayloadV1 approves or rejects a pending event.
type EventReviewPayloadV1 struct {
	EventID eventtypes.EventID  `json:"event_id"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Actor   sharedtypes.Actor   `json:"actor"`
	Reason  string              `json:"reason,omitempty"`
}

// EventApprovedPayloadV1 announces a published event listing.
type EventApprovedPayloadV1 struct {
	Event      eventtypes.Event   `json:"event"`
	ApprovedBy sharedtypes.UserID `json:"approved_by"`
}

// EventRejectedPayloadV1 announces a rejected event.
type EventRejectedPayloadV1 struct {
	Event      eventtypes.Event   `json:"event"`
	RejectedBy sharedtypes.UserID `json:"rejected_by"`
	Reason     string             `json:"reason,omitempty"`
}

// EventJoinRequestedPayloadV1 registers the actor for an event.
type EventJoinRequestedPayloadV1 struct {
	EventID          eventtypes.EventID  `json:"event_id"`
	GuildID          sharedtypes.GuildID `json:"guild_id"`
	Actor            sharedtypes.Actor   `json:"actor"`
	TeamName         string              `json:"team_name,omitempty"`
	RegistrationData map[string]string   `json:"registration_data,omitempty"`
}

// EventJoinedPayloadV1 announces a successful registration.
type EventJoinedPayloadV1 struct {
	Event       eventtypes.Event       `json:"event"`
	Participant eventtypes.Participant `json:"participant"`
	GoingCount  int                    `json:"going_count"`
	AtCapacity  bool                   `json:"at_capacity"`
}

// EventExternalFormPayloadV1 redirects the user to an external registration
// form; no participant row exists for this path.
type EventExternalFormPayloadV1 struct {
	Event  eventtypes.Event   `json:"event"`
	UserID sharedtypes.UserID `json:"user_id"`
	FormURL string            `json:"form_url"`
}

// EventCapacityReachedPayloadV1 tells the gateway to disable the join
// control and notifies the club president.
type EventCapacityReachedPayloadV1 struct {
	Event           eventtypes.Event   `json:"event"`
	PresidentUserID sharedtypes.UserID `json:"president_user_id"`
}

// EventLeaveRequestedPayloadV1 withdraws the actor from an event.
type EventLeaveRequestedPayloadV1 struct {
	EventID eventtypes.EventID  `json:"event_id"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Actor   sharedtypes.Actor   `json:"actor"`
}

// EventLeftPayloadV1 announces a withdrawal.
type EventLeftPayloadV1 struct {
	Event      eventtypes.Event   `json:"event"`
	UserID     sharedtypes.UserID `json:"user_id"`
	GoingCount int                `json:"going_count"`
}

// EventCompleteRequestedPayloadV1 moves a scheduled event to completed.
type EventCompleteRequestedPayloadV1 struct {
	EventID eventtypes.EventID  `json:"event_id"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Actor   *sharedtypes.Actor  `json:"actor,omitempty"` // nil for the scheduled trigger
}

// EventCompletedPayloadV1 announces a completed event.
type EventCompletedPayloadV1 struct {
	Event eventtypes.Event `json:"event"`
}

// EventRegistrationClosedPayloadV1 announces that the registration deadline
// passed; the gateway disables the join control.
type EventRegistrationClosedPayloadV1 struct {
	Event eventtypes.Event `json:"event"`
}

// PaymentStatusUpdatedPayloadV1 is published by the payment collaborator
// when it verifies or rejects a payment proof.
type PaymentStatusUpdatedPayloadV1 struct {
	EventID       eventtypes.EventID       `json:"event_id"`
	GuildID       sharedtypes.GuildID      `json:"guild_id"`
	UserID        sharedtypes.UserID       `json:"user_id"`
	PaymentStatus eventtypes.PaymentStatus `json:"payment_status"`
	VerifiedBy    sharedtypes.UserID       `json:"verified_by,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
}

// EventOperationFailedPayloadV1 reports a failed event operation to the
// acting user.
type EventOperationFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	EventID *eventtypes.EventID `json:"event_id,omitempty"`
	Reason  string              `json:"reason"`
}
