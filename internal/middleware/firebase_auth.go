package middleware

import (
	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/session"
)

// Verifiers builds the token verifier chain: local JWTs first, then Firebase
// ID tokens when a Firebase client is configured
func Verifiers(jwt *session.JWTManager, firebase session.IDTokenVerifier, users repositories.UserRepository) session.Chain {
	chain := session.Chain{jwt}
	if firebase != nil {
		chain = append(chain, session.NewFirebaseVerifier(firebase, users))
	}
	return chain
}
