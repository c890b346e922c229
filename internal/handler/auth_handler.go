package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"authblogCPT/internal/middleware"
	"authblogCPT/internal/repository"
	"authblogCPT/internal/service"
)

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SigninResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// регистрируем пользователя
	_, err := h.AuthService.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			WriteError(w, "Имя пользователя уже существует", http.StatusBadRequest)
		} else {
			WriteError(w, "Не удалось создать пользователя", http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пользователь успешно создан"}, http.StatusOK)
}

func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	accessToken, err := h.AuthService.Signin(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, "Неверное имя пользователя или пароль", http.StatusUnauthorized)
		} else {
			WriteError(w, "Не удалось выполнить вход", http.StatusInternalServerError)
		}
		return
	}

	// forming the response
	response := SigninResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, map[string]string{"user": username}, http.StatusOK)
}
