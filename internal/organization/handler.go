package organization

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/finbolt/payment-initiation-api/internal/auth"
)

// Handler exposes the management endpoints for tenant provisioning.
type Handler struct {
	svc    *Service
	admin  *auth.Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, admin *auth.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, admin: admin, logger: logger}
}

// CreateRequest is the payload for creating an organization.
type CreateRequest struct {
	Name string `json:"name"`
}

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
	o, err := h.svc.CreateOrganization(r.Context(), req.Name)
	if err != nil {
		h.logger.Warnw("create organization failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create failed"})
		return
	}
	h.writeJSON(w, http.StatusCreated, o)
}

// CreateUserRequest is the payload for creating a user inside an organization.
type CreateUserRequest struct {
	Name string `json:"name"`
}

// CreateUserResponse carries the freshly minted access token. This is the only
// place the token is ever readable.
type CreateUserResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	AccessToken    string `json:"access_token"`
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.VerifyRequest(r); err != nil {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid admin token"})
		return
	}
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	u, err := h.svc.CreateUser(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		if errors.Is(err, ErrOrgNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "organization not found"})
			return
		}
		h.logger.Warnw("create user failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "create failed"})
		return
	}
	h.writeJSON(w, http.StatusCreated, CreateUserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Name:           u.Name,
		AccessToken:    u.AccessToken,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
