package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ClassroomRepository struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{DB: db}
}

func (r *ClassroomRepository) Create(classroom *model.Classroom) error {
	return r.DB.Create(classroom).Error
}

func (r *ClassroomRepository) FindByID(id uint) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.DB.Preload("Owner").Preload("Department").First(&classroom, id).Error
	return &classroom, err
}

func (r *ClassroomRepository) Update(classroom *model.Classroom) error {
	return r.DB.Save(classroom).Error
}

// Delete 级联删除课堂的公告、会议、作业与测验及其全部子树
func (r *ClassroomRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("classroom_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("classroom_id = ?", id).Delete(&model.Meeting{}).Error; err != nil {
			return err
		}

		var assignmentIDs []uint
		if err := tx.Model(&model.Assignment{}).Where("classroom_id = ?", id).
			Pluck("id", &assignmentIDs).Error; err != nil {
			return err
		}
		if len(assignmentIDs) > 0 {
			if err := tx.Where("assignment_id IN ?", assignmentIDs).
				Delete(&model.AssignmentSubmission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("classroom_id = ?", id).Delete(&model.Assignment{}).Error; err != nil {
				return err
			}
		}

		var quizIDs []uint
		if err := tx.Model(&model.Quiz{}).Where("classroom_id = ?", id).
			Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		for _, quizID := range quizIDs {
			if err := deleteQuizTree(tx, quizID); err != nil {
				return err
			}
		}

		return tx.Delete(&model.Classroom{}, id).Error
	})
}

func (r *ClassroomRepository) ListByOwner(ownerID uint) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.DB.Preload("Department").Where("owner_id = ?", ownerID).
		Order("created_at desc").Find(&classrooms).Error
	return classrooms, err
}

func (r *ClassroomRepository) ListByDepartment(departmentID uint) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.DB.Preload("Owner").Where("department_id = ?", departmentID).
		Order("created_at desc").Find(&classrooms).Error
	return classrooms, err
}
