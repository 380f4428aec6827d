package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken covers malformed, badly signed and revoked tokens alike;
// callers map it to a single 401 response.
var ErrInvalidToken = errors.New("invalid token")

// Service issues and validates bearer tokens and keeps the process-wide
// revocation set. Revocations live for the process lifetime only; tokens
// revoked before a restart become valid again, a documented limitation.
type Service struct {
	secret []byte

	mu      sync.Mutex
	revoked map[string]struct{}
}

func NewService(secret string) *Service {
	return &Service{
		secret:  []byte(secret),
		revoked: make(map[string]struct{}),
	}
}

// Issue signs a token carrying the identity and issuing time.
func (s *Service) Issue(identity string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = identity
	claims["iat"] = time.Now().Unix()

	return token.SignedString(s.secret)
}

// Validate returns the identity the token was issued for.
func (s *Service) Validate(tokenString string) (string, error) {
	if s.isRevoked(tokenString) {
		return "", ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	identity, ok := claims["userId"].(string)
	if !ok || identity == "" {
		return "", ErrInvalidToken
	}

	return identity, nil
}

// Revoke adds the token to the revocation set.
func (s *Service) Revoke(tokenString string) {
	s.mu.Lock()
	s.revoked[tokenString] = struct{}{}
	s.mu.Unlock()
}

func (s *Service) isRevoked(tokenString string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenString]
	return ok
}
