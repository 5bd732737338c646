package session

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/auth"
	"github.com/clubhousefc/backend/internal/repositories"
)

// IDTokenVerifier is the part of the Firebase auth client used here
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens of users that have already
// been linked through the firebase-login endpoint
type FirebaseVerifier struct {
	client IDTokenVerifier
	users  repositories.UserRepository
}

func NewFirebaseVerifier(client IDTokenVerifier, users repositories.UserRepository) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, users: users}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (Caller, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Caller{}, ErrInvalidToken
	}
	user, err := v.users.GetUserByFirebaseUID(ctx, token.UID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Caller{}, ErrInvalidToken
		}
		return Caller{}, err
	}
	return Caller{UserID: user.ID, Email: user.Email}, nil
}
