package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authblogCPT/internal/config"
	"authblogCPT/internal/hasher"
	"authblogCPT/internal/models"
	"authblogCPT/internal/repository"
)

var (
	// ErrInvalidCredentials - единый ответ для неизвестного пользователя
	// и неверного пароля, чтобы нельзя было перебирать имена
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	// ErrTokenExpired - подпись верна, но срок действия истек
	ErrTokenExpired = errors.New("срок действия токена истек")
	// ErrTokenInvalid - токен подделан или не разбирается
	ErrTokenInvalid = errors.New("недействительный токен")
)

// Claims - полезная нагрузка токена: Subject хранит username
type Claims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Signin(ctx context.Context, username, password string) (string, error)
	IssueToken(username string) (string, error)
	VerifyToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Signup(ctx context.Context, username, password string) (*models.User, error) {
	passwordHash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	// уникальность username обеспечивает constraint в БД,
	// предварительная проверка оставляла бы гонку
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Signin(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// не раскрываем, существует ли пользователь
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user.Username)
}

func (s *authService) IssueToken(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) VerifyToken(tokenString string) (*Claims, error) {
	return VerifyAccessToken(s.cfg.JWTSecretKey, tokenString)
}

// VerifyAccessToken разбирает и проверяет токен; используется
// и сервисом, и auth middleware. Сначала проверяется подпись,
// затем срок действия.
func VerifyAccessToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenInvalid
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
