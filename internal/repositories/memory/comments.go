package memory

import (
	"context"
	"sort"

	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
)

type commentRepo struct{ st *Store }

func (r *commentRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	unlock := r.st.lock()
	defer unlock()
	if err := r.st.fault(OpCreateComment); err != nil {
		return err
	}
	d := r.st.s.data
	if _, ok := d.posts[comment.PostID]; !ok {
		return repositories.ErrNotFound
	}
	if comment.ParentID != nil {
		if _, ok := d.comments[*comment.ParentID]; !ok {
			return repositories.ErrNotFound
		}
	}
	comment.ID = d.nextID()
	comment.CreatedAt = r.st.now()
	stored := *comment
	stored.User = models.User{}
	d.comments[comment.ID] = stored
	return nil
}

func (r *commentRepo) withAuthor(c models.Comment) models.Comment {
	c.User = r.st.s.data.users[c.UserID]
	return c
}

func (r *commentRepo) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	unlock := r.st.lock()
	defer unlock()
	c, ok := r.st.s.data.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c = r.withAuthor(c)
	return &c, nil
}

func (r *commentRepo) GetTopLevelByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	unlock := r.st.lock()
	defer unlock()
	var out []models.Comment
	for _, c := range r.st.s.data.comments {
		if c.PostID == postID && c.ParentID == nil {
			out = append(out, r.withAuthor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *commentRepo) GetRepliesByParentIDs(ctx context.Context, parentIDs []uint) ([]models.Comment, error) {
	unlock := r.st.lock()
	defer unlock()
	want := idSet(parentIDs)
	var out []models.Comment
	for _, c := range r.st.s.data.comments {
		if c.ParentID != nil && want[*c.ParentID] {
			out = append(out, r.withAuthor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *commentRepo) GetCommentsCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	unlock := r.st.lock()
	defer unlock()
	want := idSet(postIDs)
	out := make(map[uint]int64)
	for _, c := range r.st.s.data.comments {
		if want[c.PostID] {
			out[c.PostID]++
		}
	}
	return out, nil
}

func (r *commentRepo) CountCommentsByUser(ctx context.Context, userID uint) (int64, error) {
	unlock := r.st.lock()
	defer unlock()
	var n int64
	for _, c := range r.st.s.data.comments {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}
