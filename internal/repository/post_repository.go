package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, id).Error
	return &post, err
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *PostRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Post{}, id).Error
}

func (r *PostRepository) ListByClassroom(classroomID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.Where("classroom_id = ?", classroomID).
		Order("created_at desc").Find(&posts).Error
	return posts, err
}
