package memory

import (
	"context"
	"sort"

	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
)

type likeRepo struct{ st *Store }

func (r *likeRepo) CreateLike(ctx context.Context, userID, postID uint) (bool, error) {
	unlock := r.st.lock()
	defer unlock()
	if err := r.st.fault(OpCreateLike); err != nil {
		return false, err
	}
	d := r.st.s.data
	if _, ok := d.posts[postID]; !ok {
		return false, repositories.ErrNotFound
	}
	for _, l := range d.likes {
		if l.UserID == userID && l.PostID == postID {
			return false, nil
		}
	}
	d.likes = append(d.likes, models.Like{ID: d.nextID(), UserID: userID, PostID: postID, CreatedAt: r.st.now()})
	return true, nil
}

func (r *likeRepo) DeleteLike(ctx context.Context, userID, postID uint) (bool, error) {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	for i, l := range d.likes {
		if l.UserID == userID && l.PostID == postID {
			d.likes = append(d.likes[:i:i], d.likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *likeRepo) HasUserLikedPost(ctx context.Context, userID, postID uint) (bool, error) {
	unlock := r.st.lock()
	defer unlock()
	for _, l := range r.st.s.data.likes {
		if l.UserID == userID && l.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (r *likeRepo) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	counts, err := r.GetLikesCountByPostIDs(ctx, []uint{postID})
	return counts[postID], err
}

func (r *likeRepo) GetLikesCountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	unlock := r.st.lock()
	defer unlock()
	want := idSet(postIDs)
	out := make(map[uint]int64)
	for _, l := range r.st.s.data.likes {
		if want[l.PostID] {
			out[l.PostID]++
		}
	}
	return out, nil
}

func (r *likeRepo) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	unlock := r.st.lock()
	defer unlock()
	want := idSet(postIDs)
	out := make(map[uint]bool)
	for _, l := range r.st.s.data.likes {
		if l.UserID == userID && want[l.PostID] {
			out[l.PostID] = true
		}
	}
	return out, nil
}

func (r *likeRepo) CountLikesReceived(ctx context.Context, userID uint) (int64, error) {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	var n int64
	for _, l := range d.likes {
		if p, ok := d.posts[l.PostID]; ok && p.UserID == userID {
			n++
		}
	}
	return n, nil
}

type followRepo struct{ st *Store }

func (r *followRepo) CreateFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	if _, ok := d.users[followingID]; !ok {
		return false, repositories.ErrNotFound
	}
	for _, f := range d.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return false, nil
		}
	}
	d.follows = append(d.follows, models.Follow{ID: d.nextID(), FollowerID: followerID, FollowingID: followingID, CreatedAt: r.st.now()})
	return true, nil
}

func (r *followRepo) DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	for i, f := range d.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			d.follows = append(d.follows[:i:i], d.follows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *followRepo) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	m, err := r.GetFollowingAmong(ctx, followerID, []uint{followingID})
	return m[followingID], err
}

func (r *followRepo) GetFollowingAmong(ctx context.Context, followerID uint, candidateIDs []uint) (map[uint]bool, error) {
	unlock := r.st.lock()
	defer unlock()
	want := idSet(candidateIDs)
	out := make(map[uint]bool)
	for _, f := range r.st.s.data.follows {
		if f.FollowerID == followerID && want[f.FollowingID] {
			out[f.FollowingID] = true
		}
	}
	return out, nil
}

func (r *followRepo) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	unlock := r.st.lock()
	defer unlock()
	var n int64
	for _, f := range r.st.s.data.follows {
		if f.FollowingID == userID {
			n++
		}
	}
	return n, nil
}

func (r *followRepo) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	unlock := r.st.lock()
	defer unlock()
	var n int64
	for _, f := range r.st.s.data.follows {
		if f.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

type commentLikeRepo struct{ st *Store }

func (r *commentLikeRepo) CreateCommentLike(ctx context.Context, commentID, userID uint) (bool, error) {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	if _, ok := d.comments[commentID]; !ok {
		return false, repositories.ErrNotFound
	}
	for _, l := range d.commentLikes {
		if l.CommentID == commentID && l.UserID == userID {
			return false, nil
		}
	}
	d.commentLikes = append(d.commentLikes, models.CommentLike{ID: d.nextID(), CommentID: commentID, UserID: userID, CreatedAt: r.st.now()})
	return true, nil
}

func (r *commentLikeRepo) DeleteCommentLike(ctx context.Context, commentID, userID uint) (bool, error) {
	unlock := r.st.lock()
	defer unlock()
	d := r.st.s.data
	for i, l := range d.commentLikes {
		if l.CommentID == commentID && l.UserID == userID {
			d.commentLikes = append(d.commentLikes[:i:i], d.commentLikes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *commentLikeRepo) HasUserLikedComment(ctx context.Context, commentID, userID uint) (bool, error) {
	unlock := r.st.lock()
	defer unlock()
	for _, l := range r.st.s.data.commentLikes {
		if l.CommentID == commentID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *commentLikeRepo) GetLikerIDs(ctx context.Context, commentIDs []uint) (map[uint][]uint, error) {
	unlock := r.st.lock()
	defer unlock()
	want := idSet(commentIDs)
	likes := append([]models.CommentLike(nil), r.st.s.data.commentLikes...)
	sort.SliceStable(likes, func(i, j int) bool { return likes[i].CreatedAt.Before(likes[j].CreatedAt) })
	out := make(map[uint][]uint)
	for _, l := range likes {
		if want[l.CommentID] {
			out[l.CommentID] = append(out[l.CommentID], l.UserID)
		}
	}
	return out, nil
}

func idSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
