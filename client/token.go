package client

import (
	"context"
	"sync"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
)

// sessionCredentials holds the JWT obtained from the login call and attaches
// it as Bearer metadata to every outbound RPC. The token is owned by a single
// client instance, never persisted, and rewritten only by re-authentication.
type sessionCredentials struct {
	email    string
	password string
	internal api.InternalServiceClient

	mu  sync.RWMutex
	jwt string
}

// GetRequestMetadata implements credentials.PerRPCCredentials. It returns no
// metadata before the first login so the login call itself goes out bare.
func (s *sessionCredentials) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.jwt == "" {
		return nil, nil
	}
	return map[string]string{"authorization": "Bearer " + s.jwt}, nil
}

// RequireTransportSecurity implements credentials.PerRPCCredentials. The
// upstream endpoint is a plaintext channel.
func (s *sessionCredentials) RequireTransportSecurity() bool { return false }

// login exchanges the stored credentials for a fresh session token.
func (s *sessionCredentials) login(ctx context.Context) error {
	resp, err := s.internal.Login(ctx, &api.LoginRequest{
		Email:    s.email,
		Password: s.password,
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.jwt = resp.GetJwt()
	s.mu.Unlock()
	return nil
}

func (s *sessionCredentials) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jwt
}
