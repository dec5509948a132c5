package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/finbolt/payment-initiation-api/internal/account/entity"
	"github.com/finbolt/payment-initiation-api/pkg/utilities"
)

// MsgNotFound is the fixed body message for a missing or foreign-tenant IBAN.
// Both cases share it so callers cannot probe other tenants' accounts.
const MsgNotFound = "Your organization does not have an account with given IBAN!"

var (
	ErrNotFound      = errors.New("account not found")
	ErrDuplicateIBAN = errors.New("iban already registered")
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByIBANForOrganization(ctx context.Context, orgID, iban string) (*entity.Account, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*entity.Account, error)
}

// Service locates accounts strictly within the caller's organization.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// FindForOrganization resolves an IBAN inside one organization. An unknown
// IBAN and an IBAN owned by another organization both yield ErrNotFound.
func (s *Service) FindForOrganization(ctx context.Context, orgID, iban string) (*entity.Account, error) {
	a, err := s.store.GetByIBANForOrganization(ctx, orgID, iban)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

// ListForOrganization returns the caller's accounts.
func (s *Service) ListForOrganization(ctx context.Context, orgID string) ([]*entity.Account, error) {
	return s.store.ListByOrganization(ctx, orgID)
}

// Provision creates an account inside an organization. A duplicate IBAN,
// regardless of owner, yields ErrDuplicateIBAN.
func (s *Service) Provision(ctx context.Context, orgID string, a *entity.Account) (*entity.Account, error) {
	a.IBAN = strings.ToUpper(strings.TrimSpace(a.IBAN))
	if a.IBAN == "" {
		return nil, errors.New("iban is required")
	}
	a.ID = utilities.NewRecordID()
	a.OrganizationID = orgID
	if err := s.store.Create(ctx, a); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateIBAN
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}
