package instruction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/finbolt/payment-initiation-api/internal/account"
	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
	"github.com/finbolt/payment-initiation-api/internal/organization"
)

// Handler exposes the debit and credit initiation endpoints. Every request
// runs the same pipeline: resolve identity, locate the account inside the
// caller's organization, validate the payload, fill defaults, initiate.
type Handler struct {
	ids      *organization.Service
	accounts *account.Service
	svc      *Service
	clock    clockwork.Clock
	logger   *zap.SugaredLogger
}

func NewHandler(ids *organization.Service, accounts *account.Service, svc *Service, clock clockwork.Clock, logger *zap.SugaredLogger) *Handler {
	return &Handler{ids: ids, accounts: accounts, svc: svc, clock: clock, logger: logger}
}

func (h *Handler) InitiateDebit(w http.ResponseWriter, r *http.Request) {
	h.initiate(w, r, entity.TypeDebit, MsgDebitInitiated)
}

func (h *Handler) InitiateCredit(w http.ResponseWriter, r *http.Request) {
	h.initiate(w, r, entity.TypeCredit, MsgCreditInitiated)
}

func (h *Handler) initiate(w http.ResponseWriter, r *http.Request, typ entity.Type, successMsg string) {
	ident, err := h.ids.ResolveToken(r.Context(), organization.BearerToken(r))
	if err != nil {
		if errors.Is(err, organization.ErrUnauthenticated) {
			h.writeJSON(w, http.StatusUnauthorized, map[string]any{"message": organization.MsgUnauthorized})
			return
		}
		h.logger.Errorw("resolve token failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}

	// The account must resolve before the payload is even parsed, so an
	// invalid-account request never learns anything about validation.
	acct, err := h.accounts.FindForOrganization(r.Context(), ident.OrganizationID, r.PathValue("iban"))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]any{"message": account.MsgNotFound})
			return
		}
		h.logger.Errorw("account lookup failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": MsgValidationFailed,
			"errors":  FieldErrors{"payload": {"must be a JSON object"}},
		})
		return
	}
	draft, ferrs := ValidatePayload(raw, typ)
	if ferrs != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": MsgValidationFailed,
			"errors":  ferrs,
		})
		return
	}

	ApplyDefaults(draft, typ, h.clock)

	inst, err := h.svc.Initiate(r.Context(), acct, draft, typ)
	if err != nil {
		h.logger.Errorw("initiate instruction failed",
			"type", typ, "account_id", acct.ID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"message": successMsg,
		"id":      inst.ID,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
