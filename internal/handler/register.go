package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/accountd/accountd/internal/handler/dto"
	"github.com/accountd/accountd/internal/service"
)

// RegisterHandler handles the registration/session endpoint.
type RegisterHandler struct {
	svc    *service.RegistrationService
	logger *slog.Logger
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc *service.RegistrationService, logger *slog.Logger) *RegisterHandler {
	return &RegisterHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/v1/register.
//
// A request carrying an Authorization header is a session lookup: the token
// resolves to the user id it was issued for. Anything else is treated as a
// new-registration payload.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		h.resolve(w, r, token)
		return
	}

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}

	result, err := h.svc.Register(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("registration_completed",
		"user_id", result.User.ID,
	)

	writeJSON(w, http.StatusOK, dto.RegisterResponse{
		Success: "true",
		UserID:  result.User.ID,
		Token:   result.Token,
	})
}

// resolve answers the lookup path: token in, user id out.
func (h *RegisterHandler) resolve(w http.ResponseWriter, r *http.Request, token string) {
	userID, err := h.svc.Resolve(r.Context(), token)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{ID: userID})
}

// bearerToken extracts the token from the Authorization header.
// A "Bearer " prefix is tolerated but not required; legacy clients send
// the bare token.
func bearerToken(r *http.Request) string {
	value := strings.TrimSpace(r.Header.Get("Authorization"))
	if after, ok := strings.CutPrefix(value, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return value
}

// handleServiceError maps service errors to HTTP responses.
func (h *RegisterHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrIncompleteForm):
		h.writeError(w, http.StatusBadRequest, "INCOMPLETE_FORM", "Email, name and password are required")
	case errors.Is(err, service.ErrEmailTaken):
		h.writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, service.ErrUnauthorized):
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
	default:
		// Persistence and token failures collapse to one generic client
		// response; the cause goes to the log only.
		h.logger.Error("registration_failed", "error", err)
		h.writeError(w, http.StatusBadRequest, "REGISTRATION_FAILED", "Unable to register")
	}
}

// writeError writes an error response.
func (h *RegisterHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
