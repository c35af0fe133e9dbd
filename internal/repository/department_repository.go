package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type DepartmentRepository struct {
	DB *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{DB: db}
}

func (r *DepartmentRepository) CreateBatch(batch *model.Batch) error {
	return r.DB.Create(batch).Error
}

func (r *DepartmentRepository) ListBatches() ([]model.Batch, error) {
	var batches []model.Batch
	err := r.DB.Order("year desc").Find(&batches).Error
	return batches, err
}

func (r *DepartmentRepository) Create(dept *model.Department) error {
	return r.DB.Create(dept).Error
}

func (r *DepartmentRepository) FindByID(id uint) (*model.Department, error) {
	var dept model.Department
	err := r.DB.Preload("Batch").First(&dept, id).Error
	return &dept, err
}

func (r *DepartmentRepository) List() ([]model.Department, error) {
	var depts []model.Department
	err := r.DB.Preload("Batch").Order("name asc").Find(&depts).Error
	return depts, err
}
