package service

import (
	"context"
	"log/slog"

	"github.com/ewei/budgetgroups-server/internal/authz"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// recordActivity appends an audit entry for a mutating action. It is
// fire-and-forget: a logging failure must never block or roll back the
// primary mutation, so no error is returned. On failure it retries once
// with a reduced payload (no details) before giving up with an operational
// log line.
func (s *DefaultService) recordActivity(ctx context.Context, groupID, userID, action, entityType string, entityID *string, details interface{}) {
	entry := &models.ActivityEntry{
		GroupID:    groupID,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    models.EncodeDetails(details),
	}

	err := s.repo.InsertActivity(ctx, entry)
	if err == nil {
		return
	}

	// Retry once without the details payload; a malformed or oversized
	// details blob is the most common reason the first insert fails.
	reduced := &models.ActivityEntry{
		GroupID:    groupID,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
	}
	if retryErr := s.repo.InsertActivity(ctx, reduced); retryErr != nil {
		slog.Warn("activity log write failed",
			"group_id", groupID,
			"action", action,
			"error", err,
			"retry_error", retryErr,
		)
	}
}

// ListActivity returns the group's newest activity entries, capped at limit,
// enriched with each actor's display info. Enrichment failures degrade to
// the bare user ID; they never fail the read.
func (s *DefaultService) ListActivity(ctx context.Context, actorID, groupID string, limit int) ([]models.ActivityEntryWithActor, error) {
	role, err := s.actorRole(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanRead(role) {
		return nil, errUnauthorized("view activity")
	}

	if limit <= 0 {
		limit = 50
	}

	entries, err := s.repo.ListActivity(ctx, groupID, limit)
	if err != nil {
		return nil, upstream(err, "error listing activity")
	}

	userIDs := make([]string, 0, len(entries))
	seen := make(map[string]bool)
	for _, e := range entries {
		if !seen[e.UserID] {
			seen[e.UserID] = true
			userIDs = append(userIDs, e.UserID)
		}
	}

	users, err := s.repo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		slog.Warn("activity actor enrichment failed", "group_id", groupID, "error", err)
		users = nil
	}

	enriched := make([]models.ActivityEntryWithActor, len(entries))
	for i, e := range entries {
		enriched[i] = models.ActivityEntryWithActor{ActivityEntry: e}
		if u, ok := users[e.UserID]; ok {
			enriched[i].ActorName = u.Name
			enriched[i].ActorAvatarURL = u.AvatarURL
		}
	}

	return enriched, nil
}
