package clubservice

import (
	"context"
	"fmt"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// ListClubs returns a guild's active clubs for the browse surface.
func (s *ClubService) ListClubs(ctx context.Context, payload *clubevents.ClubListRequestedPayloadV1) (ListResult, error) {
	if payload == nil {
		return ListResult{}, ErrNilPayload
	}

	return withTelemetry(s, ctx, "ListClubs", string(payload.GuildID), func(ctx context.Context) (ListResult, error) {
		clubs, err := s.ListGuildClubs(ctx, payload.GuildID, clubtypes.StatusActive)
		if err != nil {
			return ListResult{}, err
		}
		return results.SuccessResult[*clubevents.ClubListPayloadV1, *clubevents.ClubOperationFailedPayloadV1](
			&clubevents.ClubListPayloadV1{
				GuildID: payload.GuildID,
				UserID:  payload.Actor.UserID,
				Clubs:   clubs,
			}), nil
	})
}

// GetClub retrieves a single club by id.
func (s *ClubService) GetClub(ctx context.Context, clubID clubtypes.ClubID) (*clubtypes.Club, error) {
	club, err := s.repo.GetByID(ctx, nil, clubID)
	if err != nil {
		return nil, err
	}
	domain := club.ToDomain()
	return &domain, nil
}

// ListGuildClubs lists a guild's clubs, optionally filtered by status. Used
// by both the event flow and the read API.
func (s *ClubService) ListGuildClubs(ctx context.Context, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]clubtypes.Club, error) {
	rows, err := s.repo.ListByGuild(ctx, nil, guildID, statuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	clubs := make([]clubtypes.Club, 0, len(rows))
	for i := range rows {
		clubs = append(clubs, rows[i].ToDomain())
	}
	return clubs, nil
}
