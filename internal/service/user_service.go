package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	Repo    *repository.UserRepository
	Storage *StorageService
}

func NewUserService(repo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{Repo: repo, Storage: storage}
}

type ProfileReq struct {
	Name   *string `json:"name"`
	Gender *string `json:"gender"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileReq) (*model.User, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (*model.User, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	objectName := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.Repo.FindByID(userID)
}

func (s *UserService) ListClassmates(user *model.User) ([]model.User, error) {
	if user.DepartmentID == nil {
		return nil, nil
	}
	return s.Repo.ListStudentsByDepartment(*user.DepartmentID)
}
