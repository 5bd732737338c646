// Package seed fills a store with the club's founding members and, optionally,
// generated members with posts, follows, likes and comments.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/clubhousefc/backend/internal/events"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/services"
	"github.com/clubhousefc/backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

const defaultAvatar = "/diverse-user-avatars.png"

// Members are always present after seeding, matched by email
var Members = []models.User{
	{
		Name:     "João Silva",
		Email:    "joao@clubhousefc.com",
		Image:    defaultAvatar,
		Bio:      "Torcedor apaixonado do ClubHouse FC há mais de 10 anos. Sempre presente nos jogos!",
		Location: "São Paulo, SP",
	},
	{
		Name:     "Maria Santos",
		Email:    "maria@clubhousefc.com",
		Image:    defaultAvatar,
		Bio:      "Defensora número 1 do nosso time. Vamos ClubHouse FC!",
		Location: "Rio de Janeiro, RJ",
	},
	{
		Name:     "Carlos Eduardo",
		Email:    "carlos@clubhousefc.com",
		Image:    defaultAvatar,
		Bio:      "Apaixonado por futebol e engajado na comunidade do clube.",
		Location: "Belo Horizonte, MG",
	},
}

type Options struct {
	// Password is set on every account created by the seeder
	Password string
	// FakeMembers is the number of generated members on top of Members
	FakeMembers  int
	PostsPerUser int
	// Seed makes generated data reproducible. Zero picks a random seed.
	Seed       int64
	BcryptCost int
}

type Result struct {
	MembersCreated int
	Posts          int
	Follows        int
	Likes          int
	Comments       int
}

func (r Result) String() string {
	return fmt.Sprintf("members=%d posts=%d follows=%d likes=%d comments=%d",
		r.MembersCreated, r.Posts, r.Follows, r.Likes, r.Comments)
}

// Run upserts Members and generates activity through the services, so
// notifications are created exactly as they would be through the API
func Run(ctx context.Context, store repositories.Store, pub events.Publisher, opts Options) (*Result, error) {
	if opts.Password == "" {
		return nil, errors.New("seed: password is required")
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if pub == nil {
		pub = events.Noop{}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}

	res := &Result{}
	var callers []session.Caller
	for _, m := range Members {
		c, created, err := upsert(ctx, store, m, string(hash))
		if err != nil {
			return res, err
		}
		if created {
			res.MembersCreated++
		}
		callers = append(callers, c)
	}

	if opts.FakeMembers == 0 {
		return res, nil
	}

	f := gofakeit.New(opts.Seed)
	for i := 0; i < opts.FakeMembers; i++ {
		first := f.FirstName()
		m := models.User{
			Name:     first + " " + f.LastName(),
			Email:    fmt.Sprintf("%s.%d.%d@clubhousefc.test", strings.ToLower(first), opts.Seed, i),
			Image:    defaultAvatar,
			Bio:      f.Sentence(12),
			Location: f.City() + ", " + f.StateAbr(),
		}
		c, created, err := upsert(ctx, store, m, string(hash))
		if err != nil {
			return res, err
		}
		if created {
			res.MembersCreated++
		}
		callers = append(callers, c)
	}

	posts := services.NewPostService(store, nil)
	follows := services.NewFollowService(store, pub)
	likes := services.NewLikeService(store, pub)
	comments := services.NewCommentService(store, pub)

	var postIDs []uint
	for _, c := range callers {
		for j := 0; j < opts.PostsPerUser; j++ {
			p, err := posts.Create(ctx, c, models.CreatePostRequest{Content: f.Paragraph(1, 3, 12, " ")})
			if err != nil {
				return res, fmt.Errorf("seed: post: %w", err)
			}
			postIDs = append(postIDs, p.ID)
			res.Posts++
		}
	}

	// Toggles flip state, so each pair is acted on at most once per run
	type pair struct{ a, b uint }
	seen := map[pair]bool{}
	for _, c := range callers {
		for k := 0; k < 3; k++ {
			target := callers[f.Number(0, len(callers)-1)]
			p := pair{c.UserID, target.UserID}
			if target.UserID == c.UserID || seen[p] {
				continue
			}
			seen[p] = true
			out, err := follows.ToggleFollow(ctx, c, target.UserID)
			if err != nil {
				return res, fmt.Errorf("seed: follow: %w", err)
			}
			if out.Following {
				res.Follows++
			}
		}
	}

	if len(postIDs) == 0 {
		return res, nil
	}
	liked := map[pair]bool{}
	for _, c := range callers {
		for k := 0; k < 5; k++ {
			postID := postIDs[f.Number(0, len(postIDs)-1)]
			p := pair{c.UserID, postID}
			if liked[p] {
				continue
			}
			liked[p] = true
			out, err := likes.ToggleLike(ctx, c, postID)
			if err != nil {
				return res, fmt.Errorf("seed: like: %w", err)
			}
			if out.Liked {
				res.Likes++
			}
		}

		postID := postIDs[f.Number(0, len(postIDs)-1)]
		top, err := comments.AddComment(ctx, c, models.CreateCommentRequest{PostID: postID, Content: f.Sentence(8)})
		if err != nil {
			return res, fmt.Errorf("seed: comment: %w", err)
		}
		res.Comments++

		if f.Bool() {
			replier := callers[f.Number(0, len(callers)-1)]
			parentID := top.ID
			if _, err := comments.AddComment(ctx, replier, models.CreateCommentRequest{
				PostID: postID, ParentID: &parentID, Content: f.Sentence(6),
			}); err != nil {
				return res, fmt.Errorf("seed: reply: %w", err)
			}
			res.Comments++
		}
	}

	return res, nil
}

func upsert(ctx context.Context, store repositories.Store, m models.User, hash string) (session.Caller, bool, error) {
	existing, err := store.Users().GetUserByEmail(ctx, m.Email)
	if err == nil {
		return session.Caller{UserID: existing.ID, Email: existing.Email}, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return session.Caller{}, false, fmt.Errorf("seed: lookup %s: %w", m.Email, err)
	}
	u := m
	u.Password = hash
	if err := store.Users().CreateUser(ctx, &u); err != nil {
		return session.Caller{}, false, fmt.Errorf("seed: create %s: %w", m.Email, err)
	}
	return session.Caller{UserID: u.ID, Email: u.Email}, true, nil
}
