package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type MeetingRepository struct {
	DB *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

func (r *MeetingRepository) Create(meeting *model.Meeting) error {
	return r.DB.Create(meeting).Error
}

func (r *MeetingRepository) FindByID(id uint) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.DB.First(&meeting, id).Error
	return &meeting, err
}

func (r *MeetingRepository) Update(meeting *model.Meeting) error {
	return r.DB.Save(meeting).Error
}

func (r *MeetingRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Meeting{}, id).Error
}

func (r *MeetingRepository) ListByClassroom(classroomID uint) ([]model.Meeting, error) {
	var meetings []model.Meeting
	err := r.DB.Where("classroom_id = ?", classroomID).
		Order("start asc").Find(&meetings).Error
	return meetings, err
}

func (r *MeetingRepository) ListByClassrooms(classroomIDs []uint, from, to time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if len(classroomIDs) == 0 {
		return meetings, nil
	}
	err := r.DB.Where("classroom_id IN ? AND start >= ? AND start < ?", classroomIDs, from, to).
		Order("start asc").Find(&meetings).Error
	return meetings, err
}
