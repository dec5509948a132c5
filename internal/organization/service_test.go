package organization

import (
	"context"
	"database/sql"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/finbolt/payment-initiation-api/internal/organization/entity"
)

type fakeUserStore struct {
	byToken map[string]*entity.User
}

func (s *fakeUserStore) Create(_ context.Context, u *entity.User) error {
	if s.byToken == nil {
		s.byToken = map[string]*entity.User{}
	}
	s.byToken[u.AccessToken] = u
	return nil
}

func (s *fakeUserStore) GetByAccessToken(_ context.Context, token string) (*entity.User, error) {
	if u, ok := s.byToken[token]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

type fakeOrgStore struct {
	byID map[string]*entity.Organization
}

func (s *fakeOrgStore) Create(_ context.Context, o *entity.Organization) error {
	if s.byID == nil {
		s.byID = map[string]*entity.Organization{}
	}
	s.byID[o.ID] = o
	return nil
}

func (s *fakeOrgStore) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	if o, ok := s.byID[id]; ok {
		return o, nil
	}
	return nil, sql.ErrNoRows
}

func TestResolveToken(t *testing.T) {
	users := &fakeUserStore{byToken: map[string]*entity.User{
		"tok-1": {ID: "u1", OrganizationID: "org-a", AccessToken: "tok-1"},
	}}
	svc := NewService(&fakeOrgStore{}, users)

	ident, err := svc.ResolveToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatal(err)
	}
	if ident.OrganizationID != "org-a" || ident.UserID != "u1" {
		t.Fatalf("identity=%+v", ident)
	}
}

func TestResolveTokenUnauthenticated(t *testing.T) {
	users := &fakeUserStore{byToken: map[string]*entity.User{
		"tok-1": {ID: "u1", OrganizationID: "org-a", AccessToken: "tok-1"},
	}}
	svc := NewService(&fakeOrgStore{}, users)

	for _, token := range []string{"", "nope", "TOK-1", "tok-1 "} {
		if _, err := svc.ResolveToken(context.Background(), token); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("token %q: err=%v want ErrUnauthenticated", token, err)
		}
	}
}

func TestCreateUserMintsToken(t *testing.T) {
	orgs := &fakeOrgStore{}
	users := &fakeUserStore{}
	svc := NewService(orgs, users)

	o, err := svc.CreateOrganization(context.Background(), "Acme GmbH")
	if err != nil {
		t.Fatal(err)
	}
	u, err := svc.CreateUser(context.Background(), o.ID, "Ops")
	if err != nil {
		t.Fatal(err)
	}
	if u.AccessToken == "" {
		t.Fatal("expected a minted access token")
	}
	ident, err := svc.ResolveToken(context.Background(), u.AccessToken)
	if err != nil || ident.OrganizationID != o.ID {
		t.Fatalf("minted token did not resolve: ident=%+v err=%v", ident, err)
	}
}

func TestCreateUserUnknownOrg(t *testing.T) {
	svc := NewService(&fakeOrgStore{}, &fakeUserStore{})
	if _, err := svc.CreateUser(context.Background(), "missing", "Ops"); !errors.Is(err, ErrOrgNotFound) {
		t.Fatalf("err=%v want ErrOrgNotFound", err)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer tok-1", "tok-1"},
		{"bearer tok-1", "tok-1"},
		{"Basic dXNlcg==", ""},
		{"Bearer", ""},
	}
	for _, c := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		if c.header != "" {
			r.Header.Set("Authorization", c.header)
		}
		if got := BearerToken(r); got != c.want {
			t.Fatalf("header %q: got %q want %q", c.header, got, c.want)
		}
	}
}
