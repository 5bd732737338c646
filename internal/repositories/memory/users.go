package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
)

type userRepo struct{ st *Store }

func (r *userRepo) CreateUser(ctx context.Context, user *models.User) error {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	for _, u := range d.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrDuplicate
		}
		if user.FirebaseUID != nil && u.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return repositories.ErrDuplicate
		}
	}
	if user.ID == 0 {
		user.ID = d.nextID()
	}
	now := r.st.now()
	user.CreatedAt, user.UpdatedAt = now, now
	d.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	unlock := r.st.lock()
	defer unlock()
	u, ok := r.st.s.data.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	unlock := r.st.lock()
	defer unlock()
	for _, u := range r.st.s.data.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	unlock := r.st.lock()
	defer unlock()
	for _, u := range r.st.s.data.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) UpdateUser(ctx context.Context, user *models.User) error {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	if _, ok := d.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	user.UpdatedAt = r.st.now()
	d.users[user.ID] = *user
	return nil
}

func (r *userRepo) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	unlock := r.st.lock()
	defer unlock()
	q := strings.ToLower(query)
	var out []models.User
	for _, u := range r.st.s.data.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
