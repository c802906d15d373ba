package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nautica/battleship-zk/internal/controller"
	"github.com/nautica/battleship-zk/internal/dto"
)

var _ controller.IdentityService = (*MemoryIdentityService)(nil)

// MemoryIdentityService manages users in memory and mints HS256 JWTs.
type MemoryIdentityService struct {
	mu    sync.RWMutex
	users map[string]dto.User // internal user ID -> User

	// identities links a platform identity ("source:extID") to an
	// internal user ID.
	identities map[string]string

	jwtSecret string
}

// NewIdentityService initializes the storage with the signing secret used
// for issued tokens.
func NewIdentityService(jwtSecret string) *MemoryIdentityService {
	if jwtSecret == "" {
		jwtSecret = "secret"
	}
	return &MemoryIdentityService{
		users:      make(map[string]dto.User),
		identities: make(map[string]string),
		jwtSecret:  jwtSecret,
	}
}

// LoginOrRegister finds an existing user by (source, extID) or creates a
// new one, then issues a 24h JWT naming the user as "sub".
func (s *MemoryIdentityService) LoginOrRegister(_ context.Context, username, source, extID string) (dto.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user dto.User
	lookupKey := fmt.Sprintf("%s:%s", source, extID)

	if internalID, exists := s.identities[lookupKey]; exists {
		user = s.users[internalID]
	} else {
		newUserID := fmt.Sprintf("user-%s", uuid.NewString())
		newUser := dto.User{ID: newUserID, Username: username}

		s.users[newUserID] = newUser
		s.identities[lookupKey] = newUserID
		user = newUser
	}

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Username,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: signedToken, User: user}, nil
}
