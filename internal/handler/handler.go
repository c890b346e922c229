package handlers

import (
	"github.com/go-playground/validator/v10"

	"authblogCPT/internal/config"
	"authblogCPT/internal/database"
	"authblogCPT/internal/repository"
	"authblogCPT/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	UserRepo    repository.UserRepository
	PostRepo    repository.PostRepository
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(db *database.DB, repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: service.Auth,
		PostService: service.Post,
		UserRepo:    repo.User,
		PostRepo:    repo.Post,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}
