package clubhandlers

import (
	"context"
	"errors"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleListClubs handles the ClubListRequested event. Reads produce no
// audit entries.
func (h *ClubHandlers) HandleListClubs(ctx context.Context, payload *clubevents.ClubListRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ListClubs(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result, clubevents.ClubListV1, ""), nil
}
