package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/isdelr/newsfeed-be/internal/auth"
	"github.com/isdelr/newsfeed-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for registration, login and
// preference management.
type UserHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.TokenService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenService) *UserHandler {
	return &UserHandler{
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// SignupPayload defines the structure for registration requests.
// Preferences stay raw so a non-array value can be rejected with a
// specific message rather than a generic decode failure.
type SignupPayload struct {
	Name        string          `json:"name" validate:"required,min=4,max=20"`
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=6"`
	Preferences json.RawMessage `json:"preferences"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PreferencesPayload defines the structure for preference updates.
type PreferencesPayload struct {
	Preferences json.RawMessage `json:"preferences"`
}

// Validation messages keyed by struct field, checked in declaration order.
var signupMessages = map[string]map[string]string{
	"Name": {
		"max": "Name must be at most 20 characters.",
		"":    "Name must be at least 4 characters.",
	},
	"Email": {
		"": "Invalid email format.",
	},
	"Password": {
		"": "Password must be at least 6 characters.",
	},
}

// Signup handles new user registration.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			writeError(w, http.StatusBadRequest, signupMessage(fieldErrs[0]), nil)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	preferences, ok := decodePreferences(payload.Preferences)
	if !ok {
		writeError(w, http.StatusBadRequest, "Preferences must be an array of strings.", nil)
		return
	}

	user, err := h.service.CreateUser(payload.Name, payload.Email, payload.Password, preferences)
	if err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// Login handles user authentication and token issuance. The response
// carries only the token, not the user profile.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, services.ErrInvalidPassword):
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			writeError(w, http.StatusUnauthorized, "Invalid password", nil)
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Login failed")
			writeError(w, http.StatusInternalServerError, "Login failed", err)
		}
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "User logged in successfully",
		"token":   token,
	})
}

// GetPreferences returns the caller's stored preference list.
func (h *UserHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	user, err := h.service.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found", nil)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch user preferences")
		writeError(w, http.StatusBadRequest, "Failed to fetch user preferences", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "User preferences fetched successfully",
		"preferences": user.Preferences,
	})
}

// UpdatePreferences replaces the caller's preference list wholesale.
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var payload PreferencesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	preferences, ok := decodePreferences(payload.Preferences)
	if !ok {
		writeError(w, http.StatusBadRequest, "Preferences must be an array of strings.", nil)
		return
	}

	user, err := h.service.UpdatePreferences(userID, preferences)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found", nil)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update user preferences")
		writeError(w, http.StatusBadRequest, "Failed to update user preferences", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "User preferences updated successfully",
		"preferences": user.Preferences,
	})
}

func signupMessage(fe validator.FieldError) string {
	byTag, ok := signupMessages[fe.StructField()]
	if !ok {
		return "Invalid request body"
	}
	if msg, ok := byTag[fe.Tag()]; ok {
		return msg
	}
	return byTag[""]
}

// decodePreferences unmarshals an optional preference array. An absent or
// null field counts as no preferences.
func decodePreferences(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	var preferences []string
	if err := json.Unmarshal(raw, &preferences); err != nil {
		return nil, false
	}
	return preferences, true
}
