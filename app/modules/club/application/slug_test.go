package clubservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Chess Club", "chess-club"},
		{"punctuation collapsed", "D&D / Tabletop!!", "d-d-tabletop"},
		{"leading and trailing junk", "  --Robotics--  ", "robotics"},
		{"unicode letters kept", "Café Société", "café-société"},
		{"digits kept", "3D Printing", "3d-printing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}

func TestDeriveSlugDisambiguatesCollisions(t *testing.T) {
	fakeRepo := NewFakeClubRepo()
	taken := map[string]bool{"chess-club": true, "chess-club-2": true}
	fakeRepo.SlugExistsFunc = func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (bool, error) {
		return taken[slug], nil
	}

	svc := newTestService(fakeRepo, NewFakeMembershipRepo(), NewFakeProvisioner())
	slug, err := svc.deriveSlug(context.Background(), nil, "guild-1", "Chess Club")

	assert.NoError(t, err)
	assert.Equal(t, "chess-club-3", slug)
}
