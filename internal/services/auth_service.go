package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"busconductor/internal/domain"
	"busconductor/internal/domain/models"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier compares a stored credential with a supplied password.
type CredentialVerifier interface {
	Verify(stored, supplied string) bool
}

// PlaintextVerifier matches passwords stored in clear text.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptVerifier matches bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// VerifierForScheme maps AUTH_PASSWORD_SCHEME to a verifier.
func VerifierForScheme(scheme string) (CredentialVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "plain", "plaintext":
		return PlaintextVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", scheme)
}

type AuthService struct {
	Conductors ConductorStore
	Verifier   CredentialVerifier
	RequestID  string
}

// Login returns the conductor profile when username and password match.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s AuthService) Login(ctx context.Context, username, password string) (models.Conductor, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Conductor{}, domain.UnauthorizedError{}
	}

	conductor, err := s.Conductors.GetConductorByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Conductor{}, domain.UnauthorizedError{}
		}
		return models.Conductor{}, err
	}

	verifier := s.Verifier
	if verifier == nil {
		verifier = PlaintextVerifier{}
	}
	if !verifier.Verify(conductor.Password, password) {
		return models.Conductor{}, domain.UnauthorizedError{}
	}

	conductor.Password = ""
	return conductor, nil
}
