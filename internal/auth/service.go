package auth

import (
	"context"
	"errors"

	"nexus-backend/internal/domain"
	"nexus-backend/internal/invitations"
	"nexus-backend/internal/org"
	"nexus-backend/internal/tokens"
	"nexus-backend/internal/user"
	"nexus-backend/internal/user/policies"

	"github.com/redis/go-redis/v9"
)

const (
	FlowRegister = "register"
	FlowLogin    = "login"
	FlowInvite   = "invite"
)

// Service runs the three OAuth-backed flows and the token refresh operation.
type Service struct {
	Tokens      *tokens.Service
	Users       *user.Service
	Orgs        *org.Service
	Invitations *invitations.Service
	Provider    IdentityProvider
	Rdb         *redis.Client
}

// TokenPair is an access/refresh pair minted for one principal.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IssuePair mints both token kinds for the user.
func (s *Service) IssuePair(u *domain.User) (*TokenPair, error) {
	access, err := s.Tokens.Issue(u.ID, u.OrganizationID, tokens.Access)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Tokens.Issue(u.ID, u.OrganizationID, tokens.Refresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RegisterFlow creates a new organization with the verified identity as its
// founding admin. Conflict when the email already has an account anywhere.
func (s *Service) RegisterFlow(ctx context.Context, ident *Identity, orgName string) (*domain.User, error) {
	if orgName == "" {
		return nil, ErrOrgNameRequired
	}
	existing, err := s.Users.GetByEmail(ctx, ident.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}
	_, admin, err := s.Orgs.Register(ctx, orgName, ident.Email, ident.Name, ident.Picture)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// LoginFlow resolves the verified identity to an existing account and
// activates it on first sign-in.
func (s *Service) LoginFlow(ctx context.Context, ident *Identity) (*domain.User, error) {
	u, err := s.Users.GetByEmail(ctx, ident.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNoAccount
	}
	return s.Users.Activate(ctx, u, ident.Name, ident.Picture)
}

// InviteFlow redeems an invitation token with the verified identity.
func (s *Service) InviteFlow(ctx context.Context, invitationToken string, ident *Identity) (*domain.User, error) {
	if invitationToken == "" {
		return nil, ErrInviteTokenRequired
	}
	return s.Invitations.Accept(ctx, invitationToken, ident.Email, ident.Name, ident.Picture)
}

// Refresh verifies the refresh kind, re-resolves the user (so a deleted or
// revoked member cannot keep minting access tokens), and rotates the pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, *domain.User, error) {
	userID, _, issuedAt, err := s.Tokens.Verify(refreshToken, tokens.Refresh)
	if err != nil {
		return nil, nil, err
	}
	if policies.TokensInvalidatedSince(ctx, s.Rdb, userID.String(), issuedAt) {
		return nil, nil, tokens.ErrInvalidToken
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, policies.ErrUserNotFound) {
			return nil, nil, tokens.ErrInvalidToken
		}
		return nil, nil, err
	}
	pair, err := s.IssuePair(u)
	if err != nil {
		return nil, nil, err
	}
	return pair, u, nil
}
