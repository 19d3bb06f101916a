package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	auditdb "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories"
	audittypes "github.com/campus-commons/clubhub-bot/app/types/audit"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/attr"
)

// ClubLister is the slice of the club service the API reads from.
type ClubLister interface {
	ListGuildClubs(ctx context.Context, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]clubtypes.Club, error)
}

// AuditQuerier is the slice of the audit service the API reads from.
type AuditQuerier interface {
	QueryEntries(ctx context.Context, filter auditdb.Filter) ([]audittypes.Entry, error)
}

type apiHandlers struct {
	logger *slog.Logger
	clubs  ClubLister
	audit  AuditQuerier
}

func (h *apiHandlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to encode API response", attr.Error(err))
	}
}

func (h *apiHandlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// listClubs returns a guild's clubs, optionally filtered by status.
func (h *apiHandlers) listClubs(w http.ResponseWriter, r *http.Request) {
	guildID := sharedtypes.GuildID(r.URL.Query().Get("guild_id"))
	if guildID == "" {
		h.writeError(w, http.StatusBadRequest, "guild_id is required")
		return
	}

	var statuses []clubtypes.Status
	for _, s := range r.URL.Query()["status"] {
		statuses = append(statuses, clubtypes.Status(s))
	}

	clubs, err := h.clubs.ListGuildClubs(r.Context(), guildID, statuses...)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Club listing failed", attr.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

// queryAudit returns audit entries matching the query parameters.
func (h *apiHandlers) queryAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := auditdb.Filter{
		GuildID:    sharedtypes.GuildID(q.Get("guild_id")),
		ActionType: q.Get("action"),
	}
	if filter.GuildID == "" {
		h.writeError(w, http.StatusBadRequest, "guild_id is required")
		return
	}

	if v := q.Get("club_id"); v != "" {
		clubID, err := uuid.Parse(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "club_id is not a valid uuid")
			return
		}
		filter.ClubID = &clubID
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "since is not RFC 3339")
			return
		}
		filter.Since = &t
	}
	if v := q.Get("until"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "until is not RFC 3339")
			return
		}
		filter.Until = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}

	entries, err := h.audit.QueryEntries(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Audit query failed", attr.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
