package httpx

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ariefcatur/go-pos-register.git/internal/auth"
	"github.com/ariefcatur/go-pos-register.git/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// AuthHandler: login gate dashboard. Satu cashier yang dikonfigurasi via env;
// token JWT 24 jam, dicatat juga di Redis supaya bisa dicabut.
type AuthHandler struct {
	Redis *redis.Client

	JWTSecret       string
	CashierEmail    string
	CashierPassHash string
	CashierRole     string
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response shape ngikutin kontrak client: {success, message, data:{user,token}}.
type loginResp struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    loginData `json:"data"`
}

type loginData struct {
	User  loginUser `json:"user"`
	Token string    `json:"token"`
}

type loginUser struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "missing email or password"})
		return
	}

	role := h.CashierRole
	if role == "" {
		role = "cashier"
	}
	if !strings.EqualFold(req.Email, h.CashierEmail) ||
		auth.VerifyPassword(h.CashierPassHash, req.Password) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, h.CashierEmail, role)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "could not issue token"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	key := fmt.Sprintf(redisx.KeyAuthToken, token)
	if err := h.Redis.Set(ctx, key, h.CashierEmail, redisx.TTLAuthToken).Err(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "could not persist session"})
		return
	}

	writeJSON(w, http.StatusOK, loginResp{
		Success: true,
		Message: "login successful",
		Data: loginData{
			User:  loginUser{Email: h.CashierEmail, Role: role},
			Token: token,
		},
	})
}

// RequireAuth: Bearer token harus valid (JWT) dan masih tercatat di Redis.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}
		token := parts[1]

		if _, err := auth.ValidateToken(h.JWTSecret, token); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
		key := fmt.Sprintf(redisx.KeyAuthToken, token)
		ok, err := redisx.Exists(r.Context(), h.Redis, key)
		if err != nil || !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "session expired"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
