package testutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// TestDataGenerator produces realistic domain rows for integration tests.
// Seeded so failures reproduce.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator. Pass a seed to reproduce a
// failing run; omit it for a time-based seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed in use so a failing test can log it.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// SnowflakeID fabricates a Discord-style numeric id string.
func (g *TestDataGenerator) SnowflakeID() string {
	return fmt.Sprintf("%d", g.faker.IntRange(100000000000000000, 999999999999999999))
}

// GuildID returns a fresh guild id.
func (g *TestDataGenerator) GuildID() sharedtypes.GuildID {
	return sharedtypes.GuildID(g.SnowflakeID())
}

// UserID returns a fresh user id.
func (g *TestDataGenerator) UserID() sharedtypes.UserID {
	return sharedtypes.UserID(g.SnowflakeID())
}

// ClubName builds a plausible club name and its slug.
func (g *TestDataGenerator) ClubName() (name, slug string) {
	name = g.faker.Hobby() + " Club"
	slug = strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return name, slug
}

// GenerateClub returns a pending club owned by a random president.
func (g *TestDataGenerator) GenerateClub(guildID sharedtypes.GuildID) clubtypes.Club {
	name, slug := g.ClubName()
	return clubtypes.Club{
		ID:              uuid.New(),
		GuildID:         guildID,
		Name:            name,
		Slug:            slug,
		Description:     g.faker.Sentence(8),
		Category:        g.Category(),
		PresidentUserID: g.UserID(),
		Status:          clubtypes.StatusPending,
		ContactEmail:    g.faker.Email(),
	}
}

// Category picks a random valid club category.
func (g *TestDataGenerator) Category() clubtypes.Category {
	return clubtypes.Categories[g.faker.IntRange(0, len(clubtypes.Categories)-1)]
}

// GenerateMember returns an active member of the given club.
func (g *TestDataGenerator) GenerateMember(guildID sharedtypes.GuildID, clubID clubtypes.ClubID) membershiptypes.ClubMember {
	return membershiptypes.ClubMember{
		ClubID:          clubID,
		UserID:          g.UserID(),
		GuildID:         guildID,
		Role:            membershiptypes.RoleMember,
		Status:          membershiptypes.MemberActive,
		JoinedAt:        time.Now().UTC().Add(-time.Duration(g.faker.IntRange(1, 90)) * 24 * time.Hour),
		AttendanceCount: g.faker.IntRange(0, 20),
	}
}
