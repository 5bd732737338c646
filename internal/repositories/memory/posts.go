package memory

import (
	"context"
	"sort"

	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
)

type postRepo struct{ st *Store }

func (r *postRepo) CreatePost(ctx context.Context, post *models.Post) error {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	if _, ok := d.users[post.UserID]; !ok {
		return repositories.ErrNotFound
	}
	post.ID = d.nextID()
	post.CreatedAt = r.st.now()
	stored := *post
	stored.User = models.User{}
	d.posts[post.ID] = stored
	return nil
}

func (r *postRepo) withAuthor(p models.Post) models.Post {
	p.User = r.st.s.data.users[p.UserID]
	return p
}

func (r *postRepo) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	unlock := r.st.lock()
	defer unlock()
	if !r.st.inTx {
		if err := r.st.fault(OpReplicaReadPost); err != nil {
			return nil, err
		}
	}
	p, ok := r.st.s.data.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p = r.withAuthor(p)
	return &p, nil
}

func (r *postRepo) ListPosts(ctx context.Context, opts models.ListPostsOptions) ([]models.Post, error) {
	unlock := r.st.lock()
	defer unlock()
	var out []models.Post
	for _, p := range r.st.s.data.posts {
		if opts.AuthorID != nil && p.UserID != *opts.AuthorID {
			continue
		}
		out = append(out, r.withAuthor(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, opts.Offset, opts.Limit), nil
}

func (r *postRepo) CountPostsByUser(ctx context.Context, userID uint) (int64, error) {
	unlock := r.st.lock()
	defer unlock()
	var n int64
	for _, p := range r.st.s.data.posts {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
