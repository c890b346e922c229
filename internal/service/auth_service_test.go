package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"authblogCPT/internal/config"
	"authblogCPT/internal/hasher"
	"authblogCPT/internal/models"
	"authblogCPT/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:        "test-secret-key",
		AccessTokenDuration: 30 * time.Minute,
	}
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешная регистрация", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		var saved *models.User
		userRepo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*models.User)
				saved.ID = 1
			}).
			Return(nil)

		user, err := svc.Signup(ctx, "alice", "password123")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, int64(1), user.ID)

		// в БД уходит хеш, а не исходный пароль
		require.NotNil(t, saved)
		assert.NotEqual(t, "password123", saved.PasswordHash)
		assert.True(t, hasher.Verify("password123", saved.PasswordHash))

		userRepo.AssertExpectations(t)
	})

	t.Run("Имя пользователя занято", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, testConfig())

		userRepo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
			Return(repository.ErrUsernameTaken)

		user, err := svc.Signup(ctx, "alice", "password123")

		assert.ErrorIs(t, err, repository.ErrUsernameTaken)
		assert.Nil(t, user)
	})
}

func TestAuthService_Signin(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	passwordHash, err := hasher.Hash("password123")
	require.NoError(t, err)

	t.Run("Успешный вход возвращает рабочий токен", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, cfg)

		userRepo.On("GetUserByUsername", ctx, "alice").
			Return(&models.User{ID: 1, Username: "alice", PasswordHash: passwordHash}, nil)

		token, err := svc.Signin(ctx, "alice", "password123")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
	})

	t.Run("Неизвестный пользователь и неверный пароль неразличимы", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, cfg)

		userRepo.On("GetUserByUsername", ctx, "ghost").
			Return(nil, repository.ErrUserNotFound)
		userRepo.On("GetUserByUsername", ctx, "alice").
			Return(&models.User{ID: 1, Username: "alice", PasswordHash: passwordHash}, nil)

		_, errGhost := svc.Signin(ctx, "ghost", "password123")
		_, errWrongPass := svc.Signin(ctx, "alice", "wrong-password")

		assert.ErrorIs(t, errGhost, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
		assert.Equal(t, errGhost.Error(), errWrongPass.Error())
	})

	t.Run("Ошибка базы данных не превращается в 401", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, cfg)

		userRepo.On("GetUserByUsername", ctx, "alice").
			Return(nil, errors.New("connection failed"))

		_, err := svc.Signin(ctx, "alice", "password123")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Tokens(t *testing.T) {
	cfg := testConfig()

	t.Run("Выданный токен проходит проверку", func(t *testing.T) {
		svc := NewAuthService(nil, cfg)

		token, err := svc.IssueToken("alice")
		require.NoError(t, err)

		claims, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
	})

	t.Run("Просроченный токен дает ErrTokenExpired", func(t *testing.T) {
		expiredCfg := &config.Config{
			JWTSecretKey:        cfg.JWTSecretKey,
			AccessTokenDuration: -time.Minute,
		}
		svc := NewAuthService(nil, expiredCfg)

		token, err := svc.IssueToken("alice")
		require.NoError(t, err)

		claims, err := svc.VerifyToken(token)

		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.Nil(t, claims)
	})

	t.Run("Токен с чужим секретом дает ErrTokenInvalid", func(t *testing.T) {
		svc := NewAuthService(nil, cfg)

		otherCfg := &config.Config{
			JWTSecretKey:        "another-secret",
			AccessTokenDuration: 30 * time.Minute,
		}
		otherSvc := NewAuthService(nil, otherCfg)

		token, err := otherSvc.IssueToken("alice")
		require.NoError(t, err)

		claims, err := svc.VerifyToken(token)

		assert.ErrorIs(t, err, ErrTokenInvalid)
		assert.Nil(t, claims)
	})

	t.Run("Подделанный токен дает ErrTokenInvalid", func(t *testing.T) {
		svc := NewAuthService(nil, cfg)

		token, err := svc.IssueToken("alice")
		require.NoError(t, err)

		tampered := token[:len(token)-2] + "xx"

		claims, err := svc.VerifyToken(tampered)

		assert.ErrorIs(t, err, ErrTokenInvalid)
		assert.Nil(t, claims)
	})

	t.Run("Мусор вместо токена дает ErrTokenInvalid", func(t *testing.T) {
		svc := NewAuthService(nil, cfg)

		claims, err := svc.VerifyToken("not-a-jwt-at-all")

		assert.ErrorIs(t, err, ErrTokenInvalid)
		assert.Nil(t, claims)
	})
}
