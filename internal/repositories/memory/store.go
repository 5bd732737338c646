// Package memory is an in-process implementation of repositories.Store.
// It backs the unit tests and the DB_DRIVER=memory development mode.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
)

// Operation names accepted by Store.Fail
const (
	OpCreateNotification = "notifications.create"
	OpDeleteNotification = "notifications.delete"
	OpCreateLike         = "likes.create"
	OpCreateComment      = "comments.create"
	// OpReplicaReadPost fails post reads made outside a transaction, the way a
	// lagging read replica would
	OpReplicaReadPost = "posts.read.replica"
)

type tables struct {
	users         map[uint]models.User
	posts         map[uint]models.Post
	likes         []models.Like
	follows       []models.Follow
	comments      map[uint]models.Comment
	commentLikes  []models.CommentLike
	notifications map[string]models.Notification
	seq           uint
}

func newTables() *tables {
	return &tables{
		users:         make(map[uint]models.User),
		posts:         make(map[uint]models.Post),
		comments:      make(map[uint]models.Comment),
		notifications: make(map[string]models.Notification),
	}
}

func (t *tables) clone() *tables {
	c := &tables{
		users:         make(map[uint]models.User, len(t.users)),
		posts:         make(map[uint]models.Post, len(t.posts)),
		likes:         append([]models.Like(nil), t.likes...),
		follows:       append([]models.Follow(nil), t.follows...),
		comments:      make(map[uint]models.Comment, len(t.comments)),
		commentLikes:  append([]models.CommentLike(nil), t.commentLikes...),
		notifications: make(map[string]models.Notification, len(t.notifications)),
		seq:           t.seq,
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.posts {
		c.posts[k] = v
	}
	for k, v := range t.comments {
		c.comments[k] = v
	}
	for k, v := range t.notifications {
		c.notifications[k] = v
	}
	return c
}

func (t *tables) nextID() uint {
	t.seq++
	return t.seq
}

type shared struct {
	mu     sync.Mutex
	data   *tables
	last   time.Time
	faults map[string]error
}

// Store keeps every table in memory behind a single mutex.
// Transactions hold the mutex for their whole duration and restore a
// snapshot when fn fails.
type Store struct {
	s    *shared
	inTx bool
}

// NewStore returns an empty Store
func NewStore() *Store {
	return &Store{s: &shared{data: newTables(), faults: make(map[string]error)}}
}

// Fail makes every later call of op return err until cleared with a nil err
func (st *Store) Fail(op string, err error) {
	unlock := st.lock()
	defer unlock()
	if err == nil {
		delete(st.s.faults, op)
		return
	}
	st.s.faults[op] = err
}

func (st *Store) fault(op string) error {
	return st.s.faults[op]
}

func (st *Store) lock() func() {
	if st.inTx {
		return func() {}
	}
	st.s.mu.Lock()
	return st.s.mu.Unlock
}

// now is strictly increasing so ordering by creation time is total
func (st *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(st.s.last) {
		t = st.s.last.Add(time.Microsecond)
	}
	st.s.last = t
	return t
}

func (st *Store) Users() repositories.UserRepository       { return &userRepo{st} }
func (st *Store) Posts() repositories.PostRepository       { return &postRepo{st} }
func (st *Store) Likes() repositories.LikeRepository       { return &likeRepo{st} }
func (st *Store) Follows() repositories.FollowRepository   { return &followRepo{st} }
func (st *Store) Comments() repositories.CommentRepository { return &commentRepo{st} }
func (st *Store) CommentLikes() repositories.CommentLikeRepository {
	return &commentLikeRepo{st}
}
func (st *Store) Notifications() repositories.NotificationRepository {
	return &notificationRepo{st}
}

// Transaction runs fn with exclusive access, discarding its writes when it fails
func (st *Store) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st.inTx {
		return fn(st)
	}
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	snapshot := st.s.data.clone()
	if err := fn(&Store{s: st.s, inTx: true}); err != nil {
		st.s.data = snapshot
		return err
	}
	return nil
}
