package account

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/finbolt/payment-initiation-api/internal/account/entity"
)

type fakeStore struct {
	accounts []*entity.Account
}

func (s *fakeStore) Create(_ context.Context, a *entity.Account) error {
	s.accounts = append(s.accounts, a)
	return nil
}

func (s *fakeStore) GetByIBANForOrganization(_ context.Context, orgID, iban string) (*entity.Account, error) {
	for _, a := range s.accounts {
		if a.IBAN == iban && a.OrganizationID == orgID {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) ListByOrganization(_ context.Context, orgID string) ([]*entity.Account, error) {
	out := []*entity.Account{}
	for _, a := range s.accounts {
		if a.OrganizationID == orgID {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestFindForOrganization(t *testing.T) {
	store := &fakeStore{accounts: []*entity.Account{
		{ID: "a1", OrganizationID: "org-a", IBAN: "AL90208110080000001039531801"},
		{ID: "b1", OrganizationID: "org-b", IBAN: "DE89370400440532013000"},
	}}
	svc := NewService(store)

	got, err := svc.FindForOrganization(context.Background(), "org-a", "AL90208110080000001039531801")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "a1" {
		t.Fatalf("got %+v", got)
	}
}

func TestCrossTenantLooksLikeMissing(t *testing.T) {
	store := &fakeStore{accounts: []*entity.Account{
		{ID: "b1", OrganizationID: "org-b", IBAN: "DE89370400440532013000"},
	}}
	svc := NewService(store)

	// another tenant's account
	_, errForeign := svc.FindForOrganization(context.Background(), "org-a", "DE89370400440532013000")
	// no such account anywhere
	_, errMissing := svc.FindForOrganization(context.Background(), "org-a", "GB29NWBK60161331926819")

	if !errors.Is(errForeign, ErrNotFound) || !errors.Is(errMissing, ErrNotFound) {
		t.Fatalf("foreign=%v missing=%v, both must be ErrNotFound", errForeign, errMissing)
	}
	// the two outcomes must be fully indistinguishable
	if errForeign.Error() != errMissing.Error() {
		t.Fatalf("outcomes differ: %q vs %q", errForeign, errMissing)
	}
}

func TestProvisionRequiresIBAN(t *testing.T) {
	svc := NewService(&fakeStore{})
	if _, err := svc.Provision(context.Background(), "org-a", &entity.Account{IBAN: "  "}); err == nil {
		t.Fatal("want error for blank iban")
	}
}

func TestProvisionNormalizesIBAN(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	a, err := svc.Provision(context.Background(), "org-a", &entity.Account{IBAN: " al90208110080000001039531801 "})
	if err != nil {
		t.Fatal(err)
	}
	if a.IBAN != "AL90208110080000001039531801" {
		t.Fatalf("iban=%q", a.IBAN)
	}
	if a.ID == "" || a.OrganizationID != "org-a" {
		t.Fatalf("account=%+v", a)
	}
}
