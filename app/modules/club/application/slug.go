package clubservice

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/uptrace/bun"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// slugify lowercases the name and collapses every non-alphanumeric run into a
// single hyphen.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// deriveSlug returns a slug unique within the guild, disambiguating
// collisions with a numeric suffix.
func (s *ClubService) deriveSlug(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "club"
	}
	slug := base
	for n := 2; ; n++ {
		taken, err := s.repo.SlugExists(ctx, db, guildID, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
