package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type PostService struct {
	Repo *repository.PostRepository
}

func NewPostService(repo *repository.PostRepository) *PostService {
	return &PostService{Repo: repo}
}

type PostReq struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *PostService) Create(ownerID, classroomID uint, req PostReq) (*model.Post, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}

	post := &model.Post{
		OwnerID:     ownerID,
		ClassroomID: classroomID,
		Title:       *req.Title,
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	if err := s.Repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Update(postID, userID uint, req PostReq) (*model.Post, error) {
	post, err := s.Repo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != userID {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	if err := s.Repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(postID, userID uint) error {
	post, err := s.Repo.FindByID(postID)
	if err != nil {
		return err
	}
	if post.OwnerID != userID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(postID)
}

func (s *PostService) ListByClassroom(classroomID uint) ([]model.Post, error) {
	return s.Repo.ListByClassroom(classroomID)
}
