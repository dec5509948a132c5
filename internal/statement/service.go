package statement

import (
	"context"

	"github.com/finbolt/payment-initiation-api/internal/statement/entity"
)

// Pagination defaults applied by the handler when a parameter is absent.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Lister is the paginated retrieval operation over an account's statements.
type Lister interface {
	ListByAccount(ctx context.Context, accountID string, page, perPage int) ([]*entity.Statement, error)
}

// Service delegates statement listing to the underlying retrieval operation.
type Service struct {
	lister Lister
}

func NewService(lister Lister) *Service { return &Service{lister: lister} }

// List forwards page and perPage verbatim; no clamping or reinterpretation
// happens here. An account with no statements yields an empty slice.
func (s *Service) List(ctx context.Context, accountID string, page, perPage int) ([]*entity.Statement, error) {
	return s.lister.ListByAccount(ctx, accountID, page, perPage)
}
