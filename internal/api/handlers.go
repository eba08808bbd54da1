package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fanpulse/internal/core"
	"fanpulse/internal/engagement"
	"fanpulse/internal/fans"
	"fanpulse/internal/feed"
	"fanpulse/internal/tracker"
)

// interactionPublisher hands tracked interactions to the event bus.
// Implemented by the NATS component.
type interactionPublisher interface {
	PublishInteraction(ctx context.Context, msgID string, data []byte) error
}

// Handlers wires the REST routes onto the scoring engines.
type Handlers struct {
	Logger *slog.Logger

	Feed      *feed.Builder
	Fans      *fans.Engine
	Reactions *engagement.Reactions
	Comments  *engagement.Comments

	Publisher interactionPublisher
}

func (h *Handlers) Init(_ context.Context) error {
	h.Logger = h.Logger.With("component", "api.Handlers")
	return nil
}

func (h *Handlers) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/feed", h.personalizedFeed)
		r.Get("/feed/discovery", h.discoveryFeed)
		r.Get("/feed/trending", h.trendingFeed)

		r.Post("/interactions", h.trackInteraction)

		r.Route("/posts/{postID}", func(r chi.Router) {
			r.Post("/reactions", h.addReaction)
			r.Post("/comments", h.createComment)
			r.Get("/comments", h.listComments)
		})

		r.Route("/fans/{ownerID}", func(r chi.Router) {
			r.Post("/interactions", h.logFanInteraction)
			r.Get("/status", h.fanStatus)
			r.Get("/leaderboard", h.fanLeaderboard)
		})
	})
}

func (h *Handlers) personalizedFeed(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	limit, err := intQuery(r, "limit")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	offset, err := intQuery(r, "offset")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	page, err := h.Feed.Personalized(r.Context(), userID, limit, offset, time.Now())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) discoveryFeed(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	passionsOnly := r.URL.Query().Get("passions") == "true"

	limit, err := intQuery(r, "limit")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	posts, err := h.Feed.Discovery(r.Context(), userID, limit, passionsOnly, time.Now())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"count": len(posts),
	})
}

func (h *Handlers) trendingFeed(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	posts, err := h.Feed.Trending(r.Context(), limit, time.Now())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts":     posts,
		"count":     len(posts),
		"timeframe": "24h",
	})
}

func (h *Handlers) trackInteraction(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	var req struct {
		PostID          int64  `json:"postId"`
		Type            string `json:"type"`
		DurationSeconds int64  `json:"durationSeconds"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	iType, err := core.ParseInteractionType(req.Type)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	event := tracker.NewTrackedInteraction(userID, req.PostID, iType, req.DurationSeconds, time.Now())

	data, err := json.Marshal(event)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	if err := h.Publisher.PublishInteraction(r.Context(), event.ID, data); err != nil {
		writeError(w, h.Logger, fmt.Errorf("%w: %w", core.ErrRepositoryUnavailable, err))
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"success": true, "id": event.ID})
}

func (h *Handlers) addReaction(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	rType, err := core.ParseReactionType(req.Type)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	result, err := h.Reactions.Add(r.Context(), userID, postID, rType, time.Now())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) createComment(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	comment, err := h.Comments.Create(r.Context(), userID, postID, req.Content, time.Now())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"comment":       comment,
		"priorityScore": comment.PriorityScore,
	})
}

func (h *Handlers) listComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	filter, err := core.ParseCommentFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	comments, err := h.Comments.Filtered(r.Context(), postID, filter)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"comments": comments,
		"count":    len(comments),
	})
}

func (h *Handlers) logFanInteraction(w http.ResponseWriter, r *http.Request) {
	fanID, err := callerID(r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	ownerID, err := pathID(r, "ownerID")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	var req struct {
		Type   string `json:"type"`
		PostID int64  `json:"postId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	iType, err := core.ParseInteractionType(req.Type)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	status, err := h.Fans.LogInteraction(r.Context(), fanID, ownerID, iType, time.Now())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *Handlers) fanStatus(w http.ResponseWriter, r *http.Request) {
	fanID, err := callerID(r)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	ownerID, err := pathID(r, "ownerID")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	status, err := h.Fans.Status(r.Context(), fanID, ownerID)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *Handlers) fanLeaderboard(w http.ResponseWriter, r *http.Request) {
	ownerID, err := pathID(r, "ownerID")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	limit, err := intQuery(r, "limit")
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	leaderboard, err := h.Fans.Leaderboard(r.Context(), ownerID, limit)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leaderboard": leaderboard,
		"count":       len(leaderboard),
	})
}

func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, fmt.Errorf("%w: missing X-User-ID header", core.ErrInvalidInput)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: malformed X-User-ID header", core.ErrInvalidInput)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: malformed %s", core.ErrInvalidInput, name)
	}
	return id, nil
}

// intQuery parses an optional integer query parameter; absence means 0, a
// present but non-numeric value is an input error.
func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", core.ErrInvalidInput, name)
	}
	return v, nil
}
