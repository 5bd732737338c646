package memory

import (
	"context"
	"sort"

	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
)

type notificationRepo struct{ st *Store }

func (r *notificationRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	unlock := r.st.lock()
	defer unlock()
	if err := r.st.fault(OpCreateNotification); err != nil {
		return err
	}
	d := r.st.s.data
	if _, ok := d.notifications[n.ID]; ok {
		return repositories.ErrDuplicate
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.st.now()
	}
	stored := *n
	stored.Actor = models.User{}
	d.notifications[n.ID] = stored
	return nil
}

func matches(n models.Notification, key models.NotificationKey) bool {
	if n.RecipientID != key.RecipientID || n.ActorID != key.ActorID || n.Type != key.Type {
		return false
	}
	if key.PostID == nil {
		return n.PostID == nil
	}
	return n.PostID != nil && *n.PostID == *key.PostID
}

func (r *notificationRepo) DeleteByKey(ctx context.Context, key models.NotificationKey) ([]models.Notification, error) {
	unlock := r.st.lock()
	defer unlock()
	if err := r.st.fault(OpDeleteNotification); err != nil {
		return nil, err
	}
	d := r.st.s.data
	var deleted []models.Notification
	for id, n := range d.notifications {
		if matches(n, key) {
			deleted = append(deleted, n)
			delete(d.notifications, id)
		}
	}
	return deleted, nil
}

func (r *notificationRepo) withActor(n models.Notification) models.Notification {
	n.Actor = r.st.s.data.users[n.ActorID]
	return n
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	unlock := r.st.lock()
	defer unlock()
	n, ok := r.st.s.data.notifications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	n = r.withActor(n)
	return &n, nil
}

func (r *notificationRepo) GetUnread(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	unlock := r.st.lock()
	defer unlock()
	var out []models.Notification
	for _, n := range r.st.s.data.notifications {
		if n.RecipientID == recipientID && !n.Read {
			out = append(out, r.withActor(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, 0, limit), nil
}

func (r *notificationRepo) GetUnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	unlock := r.st.lock()
	defer unlock()
	var count int64
	for _, n := range r.st.s.data.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepo) MarkAsRead(ctx context.Context, id string, recipientID uint) (int64, error) {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	n, ok := d.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return 0, nil
	}
	n.Read = true
	d.notifications[id] = n
	return 1, nil
}

func (r *notificationRepo) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	var affected int64
	for id, n := range d.notifications {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			d.notifications[id] = n
			affected++
		}
	}
	return affected, nil
}
