package organization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/finbolt/payment-initiation-api/internal/organization/entity"
	"github.com/finbolt/payment-initiation-api/pkg/utilities"
)

// MsgUnauthorized is the fixed body message for every unauthenticated request.
const MsgUnauthorized = "Unauthorized access. Please provide a valid access token!"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrOrgNotFound     = errors.New("organization not found")
)

// Identity is a resolved caller: the user and the tenant it belongs to.
type Identity struct {
	OrganizationID string
	UserID         string
}

// UserStore is the persistence surface the service needs for users.
type UserStore interface {
	Create(ctx context.Context, u *entity.User) error
	GetByAccessToken(ctx context.Context, token string) (*entity.User, error)
}

// OrganizationStore is the persistence surface for organizations.
type OrganizationStore interface {
	Create(ctx context.Context, o *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
}

// Service resolves bearer tokens to identities and provisions tenants.
type Service struct {
	orgs  OrganizationStore
	users UserStore
}

func NewService(orgs OrganizationStore, users UserStore) *Service {
	return &Service{orgs: orgs, users: users}
}

// ResolveToken maps an opaque bearer token to a caller identity. An empty or
// unknown token yields ErrUnauthenticated; the lookup is an exact match.
func (s *Service) ResolveToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	u, err := s.users.GetByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	return &Identity{OrganizationID: u.OrganizationID, UserID: u.ID}, nil
}

// CreateOrganization provisions a new tenant.
func (s *Service) CreateOrganization(ctx context.Context, name string) (*entity.Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}
	o := &entity.Organization{ID: utilities.NewRecordID(), Name: strings.TrimSpace(name)}
	if err := s.orgs.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return o, nil
}

// CreateUser provisions a user inside an existing organization and mints its
// access token. The token is returned here and never readable again.
func (s *Service) CreateUser(ctx context.Context, orgID, name string) (*entity.User, error) {
	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("load organization: %w", err)
	}
	u := &entity.User{
		ID:             utilities.NewRecordID(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(name),
		AccessToken:    utilities.NewAccessToken(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// BearerToken extracts the bearer credential from an Authorization header.
// Returns "" when the header is absent or not a bearer scheme.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
