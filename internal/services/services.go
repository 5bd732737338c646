// Package services implements the ClubHouse FC use cases on top of a
// repositories.Store. Every method takes the verified caller explicitly.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/pkg/storage"
	"github.com/clubhousefc/backend/pkg/telemetry"
	"github.com/google/uuid"
)

// wrap classifies store failures. Errors that are already classified pass through.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Internal(op, err)
}

// lookup turns a missing record into NotFound for what
func lookup(op, what string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound(what + " not found")
	}
	return wrap(op, err)
}

func newNotification(recipientID, actorID uint, typ models.NotificationType, postID, commentID *uint) *models.Notification {
	return &models.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        typ,
		PostID:      postID,
		CommentID:   commentID,
	}
}

// outbox collects notification changes made inside a transaction so they
// are only published once it commits
type outbox struct {
	events []events.Event
}

func (o *outbox) created(n *models.Notification) {
	o.events = append(o.events, events.Created(*n))
}

func (o *outbox) removed(ns []models.Notification) {
	o.events = append(o.events, events.Removed(ns)...)
}

func (o *outbox) flush(ctx context.Context, pub events.Publisher) {
	if len(o.events) == 0 {
		return
	}
	for _, ev := range o.events {
		action := "created"
		if ev.Action == events.NotificationRemoved {
			action = "removed"
		}
		telemetry.Notifications.WithLabelValues(string(ev.Notification.Type), action).Inc()
	}
	pub.Publish(ctx, o.events...)
}

// replaceNotification deletes whatever notification key owns and creates n in its place
func replaceNotification(ctx context.Context, tx repositories.Store, box *outbox, n *models.Notification) error {
	stale, err := tx.Notifications().DeleteByKey(ctx, models.NotificationKey{
		RecipientID: n.RecipientID,
		ActorID:     n.ActorID,
		Type:        n.Type,
		PostID:      n.PostID,
	})
	if err != nil {
		return err
	}
	box.removed(stale)
	if err := tx.Notifications().CreateNotification(ctx, n); err != nil {
		return err
	}
	box.created(n)
	return nil
}

// resolveImage stores data URI images and returns their URL; http(s) URLs are kept
func resolveImage(ctx context.Context, images storage.Backend, prefix, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", nil
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw, nil
	case storage.IsDataURI(raw):
		if images == nil {
			return "", apperr.Validation("image", "image uploads are not enabled")
		}
		d, err := storage.ParseDataURI(raw)
		if err != nil {
			return "", apperr.Validation("image", err.Error())
		}
		url, err := images.Put(ctx, storage.NewKey(prefix, d.ContentType), d.ContentType, d.Data)
		if err != nil {
			return "", apperr.Internal("storage.put", err)
		}
		return url, nil
	default:
		return "", apperr.Validation("image", "must be an http(s) URL or a base64 data URI")
	}
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
