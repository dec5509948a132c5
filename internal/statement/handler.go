package statement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/finbolt/payment-initiation-api/internal/account"
	"github.com/finbolt/payment-initiation-api/internal/organization"
)

// Handler exposes the statement listing endpoint. Statements share the same
// tenant authorization path as instruction initiation.
type Handler struct {
	ids      *organization.Service
	accounts *account.Service
	svc      *Service
	logger   *zap.SugaredLogger
}

func NewHandler(ids *organization.Service, accounts *account.Service, svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{ids: ids, accounts: accounts, svc: svc, logger: logger}
}

// List returns one page of statements for an account of the caller's
// organization.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident, err := h.ids.ResolveToken(r.Context(), organization.BearerToken(r))
	if err != nil {
		if errors.Is(err, organization.ErrUnauthenticated) {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"message": organization.MsgUnauthorized})
			return
		}
		h.logger.Errorw("resolve token failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	acct, err := h.accounts.FindForOrganization(r.Context(), ident.OrganizationID, r.PathValue("iban"))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"message": account.MsgNotFound})
			return
		}
		h.logger.Errorw("account lookup failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	page := queryInt(r, "page", DefaultPage)
	perPage := queryInt(r, "per_page", DefaultPerPage)

	stmts, err := h.svc.List(r.Context(), acct.ID, page, perPage)
	if err != nil {
		h.logger.Errorw("list statements failed", "account_id", acct.ID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	h.writeJSON(w, http.StatusOK, stmts)
}

// queryInt parses a positive integer query parameter, falling back to def
// when it is absent or not a positive integer.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
