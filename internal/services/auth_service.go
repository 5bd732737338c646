package services

import (
	"context"
	"errors"
	"strings"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/internal/models"
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens for users
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// AuthService registers and signs in users with a password or a Firebase ID token
type AuthService struct {
	store      repositories.Store
	tokens     TokenIssuer
	firebase   session.IDTokenVerifier
	bcryptCost int
}

// NewAuthService creates an AuthService. firebase may be nil, which disables FirebaseLogin.
func NewAuthService(store repositories.Store, tokens TokenIssuer, firebase session.IDTokenVerifier) *AuthService {
	return &AuthService{store: store, tokens: tokens, firebase: firebase, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost, tests use bcrypt.MinCost
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.store.Users().GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, wrap("auth.signup", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal("auth.hash", err)
	}
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
	}
	if err := s.store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, wrap("auth.signup", err)
	}
	return s.session(user)
}

func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthResult, error) {
	user, err := s.store.Users().GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, wrap("auth.signin", err)
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return s.session(user)
}

// FirebaseLogin exchanges a Firebase ID token for a local session, linking the
// Firebase account to an existing user by email or creating a new one
func (s *AuthService) FirebaseLogin(ctx context.Context, req models.FirebaseLoginRequest) (*models.AuthResult, error) {
	if s.firebase == nil {
		return nil, apperr.NotFound("firebase login is not enabled")
	}
	token, err := s.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	users := s.store.Users()
	user, err := users.GetUserByFirebaseUID(ctx, token.UID)
	switch {
	case err == nil:
		return s.session(user)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, wrap("auth.firebase", err)
	case email == "":
		return nil, apperr.Unauthorized("Firebase account has no email")
	}

	uid := token.UID
	user, err = users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		user.FirebaseUID = &uid
		if user.Image == "" {
			user.Image = picture
		}
		if err := users.UpdateUser(ctx, user); err != nil {
			return nil, wrap("auth.firebase", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		if name == "" {
			name, _, _ = strings.Cut(email, "@")
		}
		user = &models.User{Name: name, Email: email, FirebaseUID: &uid, Image: picture}
		if err := users.CreateUser(ctx, user); err != nil {
			return nil, wrap("auth.firebase", err)
		}
	default:
		return nil, wrap("auth.firebase", err)
	}
	return s.session(user)
}

func (s *AuthService) session(user *models.User) (*models.AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperr.Internal("auth.token", err)
	}
	return &models.AuthResult{Token: token, User: user.ToSummaryWithEmail()}, nil
}
