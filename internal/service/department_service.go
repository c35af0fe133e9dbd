package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

type DepartmentService struct {
	Repo *repository.DepartmentRepository
}

func NewDepartmentService(repo *repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{Repo: repo}
}

func (s *DepartmentService) CreateBatch(year string) (*model.Batch, error) {
	if len(year) != 4 {
		return nil, errors.New("year must be 4 digits")
	}
	batch := &model.Batch{Year: year}
	if err := s.Repo.CreateBatch(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *DepartmentService) ListBatches() ([]model.Batch, error) {
	return s.Repo.ListBatches()
}

type DepartmentReq struct {
	BatchID     uint   `json:"batchId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *DepartmentService) Create(req DepartmentReq) (*model.Department, error) {
	dept := &model.Department{
		BatchID:     req.BatchID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.Repo.Create(dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) List() ([]model.Department, error) {
	return s.Repo.List()
}
