package service

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type MeetingService struct {
	Repo *repository.MeetingRepository
}

func NewMeetingService(repo *repository.MeetingRepository) *MeetingService {
	return &MeetingService{Repo: repo}
}

type MeetingReq struct {
	Topic    *string    `json:"topic"`
	Start    *time.Time `json:"start"`
	Duration *int       `json:"duration"`
	JoinURL  *string    `json:"joinUrl"`
}

func (s *MeetingService) Create(ownerID, classroomID uint, req MeetingReq) (*model.Meeting, error) {
	if req.Topic == nil || *req.Topic == "" {
		return nil, errors.New("topic is required")
	}
	if req.Start == nil {
		return nil, errors.New("start is required")
	}

	meeting := &model.Meeting{
		OwnerID:     ownerID,
		ClassroomID: classroomID,
		Topic:       *req.Topic,
		Start:       *req.Start,
		Duration:    60,
	}
	if req.Duration != nil {
		meeting.Duration = *req.Duration
	}
	if req.JoinURL != nil {
		meeting.JoinURL = *req.JoinURL
	}

	if err := s.Repo.Create(meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *MeetingService) Update(meetingID, userID uint, req MeetingReq) (*model.Meeting, error) {
	meeting, err := s.Repo.FindByID(meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.OwnerID != userID {
		return nil, util.ErrPermissionDenied
	}

	if req.Topic != nil {
		meeting.Topic = *req.Topic
	}
	if req.Start != nil {
		meeting.Start = *req.Start
	}
	if req.Duration != nil {
		meeting.Duration = *req.Duration
	}
	if req.JoinURL != nil {
		meeting.JoinURL = *req.JoinURL
	}

	if err := s.Repo.Update(meeting); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *MeetingService) Delete(meetingID, userID uint) error {
	meeting, err := s.Repo.FindByID(meetingID)
	if err != nil {
		return err
	}
	if meeting.OwnerID != userID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(meetingID)
}

func (s *MeetingService) ListByClassroom(classroomID uint) ([]model.Meeting, error) {
	return s.Repo.ListByClassroom(classroomID)
}
