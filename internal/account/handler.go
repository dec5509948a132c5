package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/finbolt/payment-initiation-api/internal/account/entity"
	"github.com/finbolt/payment-initiation-api/internal/auth"
	"github.com/finbolt/payment-initiation-api/internal/organization"
)

// Handler exposes account listing for tenants and account provisioning for
// the operator.
type Handler struct {
	ids    *organization.Service
	svc    *Service
	admin  *auth.Service
	logger *zap.SugaredLogger
}

func NewHandler(ids *organization.Service, svc *Service, admin *auth.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{ids: ids, svc: svc, admin: admin, logger: logger}
}

// List returns the accounts of the caller's organization.
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
	accounts, err := h.svc.ListForOrganization(r.Context(), ident.OrganizationID)
	if err != nil {
		h.logger.Errorw("list accounts failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	h.writeJSON(w, http.StatusOK, accounts)
}

// CreateRequest is the payload for provisioning an account.
type CreateRequest struct {
	IBAN               string `json:"iban"`
	Name               string `json:"name"`
	CreditorIdentifier string `json:"creditor_identifier"`
	Activated          bool   `json:"activated"`
}

// Create provisions an account inside the organization from the path.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.VerifyRequest(r); err != nil {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid admin token"})
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	a, err := h.svc.Provision(r.Context(), r.PathValue("id"), &entity.Account{
		IBAN:               req.IBAN,
		Name:               req.Name,
		CreditorIdentifier: req.CreditorIdentifier,
		Activated:          req.Activated,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateIBAN) {
			h.writeJSON(w, http.StatusConflict, map[string]string{"error": "iban already registered"})
			return
		}
		h.logger.Warnw("provision account failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create failed"})
		return
	}
	h.writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
