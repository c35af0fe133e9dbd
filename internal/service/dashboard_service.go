package service

import (
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type DashboardService struct {
	ClassroomRepo  *repository.ClassroomRepository
	AssignmentRepo *repository.AssignmentRepository
	MeetingRepo    *repository.MeetingRepository
	QuizRepo       *repository.QuizRepository
	ResponseRepo   *repository.QuizResponseRepository
}

func NewDashboardService(
	classroomRepo *repository.ClassroomRepository,
	assignmentRepo *repository.AssignmentRepository,
	meetingRepo *repository.MeetingRepository,
	quizRepo *repository.QuizRepository,
	responseRepo *repository.QuizResponseRepository,
) *DashboardService {
	return &DashboardService{
		ClassroomRepo:  classroomRepo,
		AssignmentRepo: assignmentRepo,
		MeetingRepo:    meetingRepo,
		QuizRepo:       quizRepo,
		ResponseRepo:   responseRepo,
	}
}

// StudentDashboard 学生首页聚合：按院系课堂汇总今日会议、
// 今日/即将开始的测验、待交与缺交的作业。
type StudentDashboard struct {
	Classrooms         int                `json:"classrooms"`
	PendingAssignments []model.Assignment `json:"pendingAssignments"`
	MissingAssignments []model.Assignment `json:"missingAssignments"`
	TodayMeetings      []model.Meeting    `json:"todayMeetings"`
	TodayQuizzes       []model.Quiz       `json:"todayQuizzes"`
	UpcomingQuizzes    []model.Quiz       `json:"upcomingQuizzes"`
	MissedQuizzes      []model.Quiz       `json:"missedQuizzes"`
}

func (s *DashboardService) ForStudent(user *model.User) (*StudentDashboard, error) {
	dashboard := &StudentDashboard{}
	if user.DepartmentID == nil {
		return dashboard, nil
	}

	classrooms, err := s.ClassroomRepo.ListByDepartment(*user.DepartmentID)
	if err != nil {
		return nil, err
	}
	dashboard.Classrooms = len(classrooms)

	classroomIDs := make([]uint, 0, len(classrooms))
	for _, c := range classrooms {
		classroomIDs = append(classroomIDs, c.ID)
	}

	now := time.Now()

	assignments, err := s.AssignmentRepo.ListByClassrooms(classroomIDs)
	if err != nil {
		return nil, err
	}
	submitted := make(map[uint]bool)
	submissions, err := s.AssignmentRepo.ListSubmissionsByStudent(user.ID)
	if err != nil {
		return nil, err
	}
	for _, sub := range submissions {
		submitted[sub.AssignmentID] = true
	}
	for _, a := range assignments {
		if submitted[a.ID] {
			continue
		}
		if a.DateDue.After(now) {
			dashboard.PendingAssignments = append(dashboard.PendingAssignments, a)
		} else {
			dashboard.MissingAssignments = append(dashboard.MissingAssignments, a)
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	dashboard.TodayMeetings, err = s.MeetingRepo.ListByClassrooms(classroomIDs, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.QuizRepo.ListByClassrooms(classroomIDs)
	if err != nil {
		return nil, err
	}
	answered := make(map[uint]bool)
	responses, err := s.ResponseRepo.ListByStudent(user.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range responses {
		answered[r.QuizID] = true
	}
	for _, q := range quizzes {
		if !q.Start.Before(dayStart) && q.Start.Before(dayEnd) {
			dashboard.TodayQuizzes = append(dashboard.TodayQuizzes, q)
		} else if q.Start.After(now) {
			dashboard.UpcomingQuizzes = append(dashboard.UpcomingQuizzes, q)
		}
		// 已到期且从未作答记为缺考
		if q.State(now) == model.QuizExpired && !answered[q.ID] {
			dashboard.MissedQuizzes = append(dashboard.MissedQuizzes, q)
		}
	}

	return dashboard, nil
}

// LecturerDashboard 讲师首页聚合
type LecturerDashboard struct {
	Classrooms         int                `json:"classrooms"`
	OngoingAssignments []model.Assignment `json:"ongoingAssignments"`
	PendingReview      []model.Assignment `json:"pendingReview"`
	TodayMeetings      []model.Meeting    `json:"todayMeetings"`
	TodayQuizzes       []model.Quiz       `json:"todayQuizzes"`
	UpcomingQuizzes    []model.Quiz       `json:"upcomingQuizzes"`
}

func (s *DashboardService) ForLecturer(user *model.User) (*LecturerDashboard, error) {
	classrooms, err := s.ClassroomRepo.ListByOwner(user.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &LecturerDashboard{Classrooms: len(classrooms)}

	classroomIDs := make([]uint, 0, len(classrooms))
	for _, c := range classrooms {
		classroomIDs = append(classroomIDs, c.ID)
	}

	now := time.Now()

	assignments, err := s.AssignmentRepo.ListByClassrooms(classroomIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.ReviewComplete {
			continue
		}
		if a.DateDue.After(now) {
			dashboard.OngoingAssignments = append(dashboard.OngoingAssignments, a)
		} else {
			dashboard.PendingReview = append(dashboard.PendingReview, a)
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	dashboard.TodayMeetings, err = s.MeetingRepo.ListByClassrooms(classroomIDs, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.QuizRepo.ListByClassrooms(classroomIDs)
	if err != nil {
		return nil, err
	}
	for _, q := range quizzes {
		if !q.Start.Before(dayStart) && q.Start.Before(dayEnd) {
			dashboard.TodayQuizzes = append(dashboard.TodayQuizzes, q)
		} else if q.Start.After(now) {
			dashboard.UpcomingQuizzes = append(dashboard.UpcomingQuizzes, q)
		}
	}

	return dashboard, nil
}

// ForUser 按显式角色分派
func (s *DashboardService) ForUser(user *model.User) (interface{}, error) {
	switch {
	case user.IsLecturer():
		return s.ForLecturer(user)
	case user.IsStudent():
		return s.ForStudent(user)
	default:
		return nil, util.ErrPermissionDenied
	}
}
