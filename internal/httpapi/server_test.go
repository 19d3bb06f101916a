package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditdb "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories"
	audittypes "github.com/campus-commons/clubhub-bot/app/types/audit"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/observability"
)

const testSecret = "test-secret"

type fakeClubLister struct {
	clubs []clubtypes.Club
	err   error
}

func (f *fakeClubLister) ListGuildClubs(ctx context.Context, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]clubtypes.Club, error) {
	return f.clubs, f.err
}

type fakeAuditQuerier struct {
	entries []audittypes.Entry
	filter  auditdb.Filter
	err     error
}

func (f *fakeAuditQuerier) QueryEntries(ctx context.Context, filter auditdb.Filter) ([]audittypes.Entry, error) {
	f.filter = filter
	return f.entries, f.err
}

func newTestHandler(clubs ClubLister, audit AuditQuerier) http.Handler {
	obs := observability.NewNoop()
	srv := NewServer(Config{Address: ":0", JWTSecret: testSecret}, obs.Logger, obs.Metrics, clubs, audit)
	return srv.srv.Handler
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authedGet(t *testing.T, handler http.Handler, url, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(&fakeClubLister{}, &fakeAuditQuerier{})
	rec := authedGet(t, handler, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetrics(t *testing.T) {
	handler := newTestHandler(&fakeClubLister{}, &fakeAuditQuerier{})
	rec := authedGet(t, handler, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerAuth(t *testing.T) {
	handler := newTestHandler(&fakeClubLister{}, &fakeAuditQuerier{})

	t.Run("missing token", func(t *testing.T) {
		rec := authedGet(t, handler, "/api/v1/clubs?guild_id=guild-1", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		rec := authedGet(t, handler, "/api/v1/clubs?guild_id=guild-1", signToken(t, "other-secret"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := authedGet(t, handler, "/api/v1/clubs?guild_id=guild-1", signed)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := authedGet(t, handler, "/api/v1/clubs?guild_id=guild-1", signToken(t, testSecret))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestListClubs(t *testing.T) {
	token := signToken(t, testSecret)

	t.Run("returns clubs", func(t *testing.T) {
		lister := &fakeClubLister{clubs: []clubtypes.Club{
			{ID: uuid.New(), GuildID: "guild-1", Name: "Chess Club", Status: clubtypes.StatusActive},
		}}
		handler := newTestHandler(lister, &fakeAuditQuerier{})

		rec := authedGet(t, handler, "/api/v1/clubs?guild_id=guild-1&status=active", token)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Clubs []clubtypes.Club `json:"clubs"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Clubs, 1)
		assert.Equal(t, "Chess Club", body.Clubs[0].Name)
	})

	t.Run("requires guild_id", func(t *testing.T) {
		handler := newTestHandler(&fakeClubLister{}, &fakeAuditQuerier{})
		rec := authedGet(t, handler, "/api/v1/clubs", token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQueryAudit(t *testing.T) {
	token := signToken(t, testSecret)

	t.Run("passes filters through", func(t *testing.T) {
		clubID := uuid.New()
		querier := &fakeAuditQuerier{entries: []audittypes.Entry{
			{ID: uuid.New(), GuildID: "guild-1", ActionType: "club_approved"},
		}}
		handler := newTestHandler(&fakeClubLister{}, querier)

		url := "/api/v1/audit?guild_id=guild-1&club_id=" + clubID.String() +
			"&action=club_approved&since=2026-01-01T00:00:00Z&limit=10"
		rec := authedGet(t, handler, url, token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, sharedtypes.GuildID("guild-1"), querier.filter.GuildID)
		require.NotNil(t, querier.filter.ClubID)
		assert.Equal(t, clubID, *querier.filter.ClubID)
		assert.Equal(t, "club_approved", querier.filter.ActionType)
		require.NotNil(t, querier.filter.Since)
		assert.Equal(t, 10, querier.filter.Limit)
	})

	t.Run("rejects a bad club id", func(t *testing.T) {
		handler := newTestHandler(&fakeClubLister{}, &fakeAuditQuerier{})
		rec := authedGet(t, handler, "/api/v1/audit?guild_id=guild-1&club_id=nope", token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a bad time range", func(t *testing.T) {
		handler := newTestHandler(&fakeClubLister{}, &fakeAuditQuerier{})
		rec := authedGet(t, handler, "/api/v1/audit?guild_id=guild-1&since=yesterday", token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
