package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/promostock/internal/api/middleware"
	"github.com/example/promostock/internal/auth"
	"github.com/example/promostock/internal/infrastructure/store"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	catalog    store.CatalogStore
	jwtService *auth.JWTService
}

// NewAuthHandlers creates a new AuthHandlers instance
func NewAuthHandlers(catalog store.CatalogStore, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{
		catalog:    catalog,
		jwtService: jwtService,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Initials string `json:"initials"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Message  string           `json:"message,omitempty"`
}

// EmployeeResponse represents employee data in responses
type EmployeeResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Initials  string    `json:"initials"`
	CreatedAt time.Time `json:"created_at"`
}

// Register handles employee registration
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FullName == "" || req.Initials == "" {
		respondJSONError(w, "Full name and initials are required", http.StatusBadRequest)
		return
	}

	if _, err := h.catalog.EmployeeByName(r.Context(), req.FullName); err == nil {
		respondJSONError(w, "Employee already registered", http.StatusConflict)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			respondJSONError(w, "Password must be at least 8 characters", http.StatusBadRequest)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	employee := &store.Employee{
		FullName:     req.FullName,
		Initials:     req.Initials,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := h.catalog.CreateEmployee(r.Context(), employee); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			respondJSONError(w, "Employee already registered", http.StatusConflict)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setAuthCookies(w, r, employee)

	respondJSON(w, http.StatusCreated, AuthResponse{
		Employee: employeeResponse(employee),
		Message:  "Registration successful",
	})
}

// Login handles employee login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	employee, err := h.catalog.EmployeeByName(r.Context(), req.FullName)
	if err != nil {
		respondJSONError(w, "Invalid name or password", http.StatusUnauthorized)
		return
	}

	if !employee.IsActive {
		respondJSONError(w, "Account is deactivated", http.StatusForbidden)
		return
	}

	if !auth.CheckPassword(req.Password, employee.PasswordHash) {
		respondJSONError(w, "Invalid name or password", http.StatusUnauthorized)
		return
	}

	h.setAuthCookies(w, r, employee)

	respondJSON(w, http.StatusOK, AuthResponse{
		Employee: employeeResponse(employee),
		Message:  "Login successful",
	})
}

// Logout handles employee logout
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Logout successful",
	})
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshCookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondJSONError(w, "No refresh token", http.StatusUnauthorized)
		return
	}

	employeeID, err := h.jwtService.ValidateRefreshToken(refreshCookie.Value)
	if err != nil {
		h.clearAuthCookies(w)
		respondJSONError(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	employee, err := h.catalog.EmployeeByID(r.Context(), employeeID)
	if err != nil {
		h.clearAuthCookies(w)
		respondJSONError(w, "Employee not found", http.StatusUnauthorized)
		return
	}
	if !employee.IsActive {
		h.clearAuthCookies(w)
		respondJSONError(w, "Account is deactivated", http.StatusForbidden)
		return
	}

	h.setAuthCookies(w, r, employee)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Token refreshed",
	})
}

// Me returns the current authenticated employee's information
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetEmployeeFromContext(r.Context())
	if !ok {
		respondJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	employee, err := h.catalog.EmployeeByID(r.Context(), claims.EmployeeID)
	if err != nil {
		respondJSONError(w, "Employee not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, employeeResponse(employee))
}

// Helper methods

func employeeResponse(e *store.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		FullName:  e.FullName,
		Initials:  e.Initials,
		CreatedAt: e.CreatedAt,
	}
}

func (h *AuthHandlers) setAuthCookies(w http.ResponseWriter, r *http.Request, employee *store.Employee) {
	accessToken, accessExpiry, _ := h.jwtService.GenerateAccessToken(employee.ID, employee.FullName, employee.Initials)
	refreshToken, refreshExpiry, _ := h.jwtService.GenerateRefreshToken(employee.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/api/auth/refresh",
		Expires:  refreshExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandlers) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/auth/refresh",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
