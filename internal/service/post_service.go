package service

import (
	"context"
	"errors"
	"io"
	"log"

	"authblogCPT/internal/config"
	"authblogCPT/internal/models"
	"authblogCPT/internal/repository"
	"authblogCPT/internal/storage"
)

// ErrNotPostAuthor - аутентифицированный пользователь пытается
// изменить или удалить чужой пост
var ErrNotPostAuthor = errors.New("доступ к чужому посту запрещен")

type PostService interface {
	CreatePost(ctx context.Context, actor, title, content string) (*models.Post, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error)
	UpdatePost(ctx context.Context, actor string, postID int64, title, content string) (*models.Post, error)
	DeletePost(ctx context.Context, actor string, postID int64) error
	AttachImage(ctx context.Context, actor string, postID int64, fileName string, file io.Reader, size int64) (*models.Image, error)
	RemoveImage(ctx context.Context, actor string, postID int64, imageID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	cfg       *config.Config
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository,
	imageRepo repository.ImageRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		imageRepo: imageRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, actor, title, content string) (*models.Post, error) {
	// subject токена сопоставляем со строкой пользователя
	user, err := p.userRepo.GetUserByUsername(ctx, actor)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: user.ID,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (p *postService) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return p.postRepo.List(ctx, limit, offset)
}

// getOwnedPost возвращает пост, только если actor - его автор.
// Порядок ошибок фиксирован: сначала not found, потом forbidden.
func (p *postService) getOwnedPost(ctx context.Context, actor string, postID int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	user, err := p.userRepo.GetUserByUsername(ctx, actor)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != user.ID {
		return nil, ErrNotPostAuthor
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, actor string, postID int64, title, content string) (*models.Post, error) {
	post, err := p.getOwnedPost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, actor string, postID int64) error {
	if _, err := p.getOwnedPost(ctx, actor, postID); err != nil {
		return err
	}

	// снимок изображений до удаления: строки в БД уйдут каскадом
	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	for _, image := range images {
		if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить объект %s из MinIO: %v", image.ObjectName, err)
		}
	}

	return nil
}

func (p *postService) AttachImage(ctx context.Context, actor string, postID int64, fileName string, file io.Reader, size int64) (*models.Image, error) {
	post, err := p.getOwnedPost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, post.ID, fileName, file, size)
	if err != nil {
		return nil, err
	}

	image := &models.Image{
		PostID:     post.ID,
		ObjectName: objectName,
		ImageURL:   imageURL,
	}

	if err := p.imageRepo.Create(ctx, image); err != nil {
		// строка не записалась - убираем уже загруженный объект
		if delErr := p.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Предупреждение: не удалось удалить объект %s из MinIO: %v", objectName, delErr)
		}
		return nil, err
	}

	return image, nil
}

func (p *postService) RemoveImage(ctx context.Context, actor string, postID int64, imageID string) error {
	if _, err := p.getOwnedPost(ctx, actor, postID); err != nil {
		return err
	}

	image, err := p.imageRepo.GetByImageID(ctx, imageID)
	if err != nil {
		return err
	}

	// изображение должно принадлежать именно этому посту
	if image.PostID != postID {
		return repository.ErrImageNotFound
	}

	if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить объект %s из MinIO: %v", image.ObjectName, err)
	}

	return p.imageRepo.Delete(ctx, imageID)
}
