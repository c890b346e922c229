package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"authblogCPT/internal/config"
	"authblogCPT/internal/service"
)

type Middleware func(http.Handler) http.Handler

// contextKey - свой тип ключа, чтобы не пересекаться с другими пакетами
type contextKey string

// UsernameKey - ключ, под которым в контексте запроса лежит
// имя аутентифицированного пользователя
const UsernameKey contextKey = "username"

// UsernameFromContext возвращает имя текущего пользователя,
// положенное в контекст auth middleware
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

var publicPostPath = regexp.MustCompile(`^/posts/\d+$`)

// isPublicRoute - эндпоинты, доступные без токена
func isPublicRoute(r *http.Request) bool {
	// preflight-запросы закрывает CORS middleware
	if r.Method == http.MethodOptions {
		return true
	}

	switch r.URL.Path {
	case "/signup", "/signin", "/health":
		return true
	}

	if r.Method == http.MethodGet && (r.URL.Path == "/posts" || publicPostPath.MatchString(r.URL.Path)) {
		return true
	}

	return false
}

// AuthMiddleware проверяет bearer-токен и кладет subject в контекст запроса
func AuthMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicRoute(r) {
				next.ServeHTTP(w, r)
				return
			}

			// извлекаем токен из заголовка
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, "Требуется авторизация", http.StatusUnauthorized)
				return
			}

			// проверяем формат "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, "Неверный формат токена", http.StatusUnauthorized)
				return
			}

			claims, err := service.VerifyAccessToken(cfg.JWTSecretKey, parts[1])
			if err != nil {
				// клиенту отвечаем одинаково, различие оставляем в логе
				if errors.Is(err, service.ErrTokenExpired) {
					log.Printf("Отклонен просроченный токен: %s %s", r.Method, r.URL.Path)
				} else {
					log.Printf("Отклонен недействительный токен: %s %s", r.Method, r.URL.Path)
				}
				writeError(w, "Недействительный или просроченный токен", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CORSMiddleware отвечает заголовками только для origin из конфига
func CORSMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && slices.Contains(cfg.AllowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware помечает запрос request id и пишет его в лог и в ответ
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		log.Printf("[%s] %s %s за %s", requestID, r.Method, r.RequestURI, time.Since(start))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

// writeError - локальная копия JSON-ответа с ошибкой, чтобы не
// тянуть пакет handlers и не создавать цикл импортов
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
