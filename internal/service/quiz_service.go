package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const studentQuizCacheTTL = 30 * time.Second

type QuizService struct {
	Repo          *repository.QuizRepository
	ClassroomRepo *repository.ClassroomRepository
	RDB           *redis.Client
}

func NewQuizService(repo *repository.QuizRepository, classroomRepo *repository.ClassroomRepository, rdb *redis.Client) *QuizService {
	return &QuizService{Repo: repo, ClassroomRepo: classroomRepo, RDB: rdb}
}

type QuizReq struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	Start              *time.Time `json:"start"`
	Duration           *int       `json:"duration"`
	AcceptAfterExpired *bool      `json:"acceptAfterExpired"`
	AcceptingAnswers   *bool      `json:"acceptingAnswers"`
}

type AnswerReq struct {
	Letter  string `json:"letter" binding:"required"`
	Text    string `json:"text" binding:"required"`
	Correct bool   `json:"correct"`
}

type QuestionReq struct {
	Number  int         `json:"number" binding:"required"`
	Text    string      `json:"text" binding:"required"`
	Answers []AnswerReq `json:"answers" binding:"required,dive"`
}

func (s *QuizService) CreateQuiz(ownerID, classroomID uint, req QuizReq) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Start == nil {
		return nil, errors.New("start is required")
	}

	// 同一课堂内标题唯一
	if _, err := s.Repo.FindByClassroomAndTitle(classroomID, *req.Title); err == nil {
		return nil, util.ErrQuizTitleTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quiz := &model.Quiz{
		ClassroomID:      classroomID,
		OwnerID:          ownerID,
		Title:            *req.Title,
		Start:            *req.Start,
		AcceptingAnswers: true,
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Duration != nil {
		quiz.Duration = *req.Duration
	} else {
		quiz.Duration = 30
	}
	if req.AcceptAfterExpired != nil {
		quiz.AcceptAfterExpired = *req.AcceptAfterExpired
	}
	if req.AcceptingAnswers != nil {
		quiz.AcceptingAnswers = *req.AcceptingAnswers
	}

	if err := s.Repo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) UpdateQuiz(quizID uint, req QuizReq) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != quiz.Title {
		if _, err := s.Repo.FindByClassroomAndTitle(quiz.ClassroomID, *req.Title); err == nil {
			return nil, util.ErrQuizTitleTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.Start != nil {
		quiz.Start = *req.Start
	}
	if req.Duration != nil {
		quiz.Duration = *req.Duration
	}
	if req.AcceptAfterExpired != nil {
		quiz.AcceptAfterExpired = *req.AcceptAfterExpired
	}
	if req.AcceptingAnswers != nil {
		quiz.AcceptingAnswers = *req.AcceptingAnswers
	}

	if err := s.Repo.Update(quiz); err != nil {
		return nil, err
	}
	s.invalidateStudentCache(quizID)
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	if err := s.Repo.Delete(quizID); err != nil {
		return err
	}
	s.invalidateStudentCache(quizID)
	return nil
}

func (s *QuizService) GetQuiz(quizID uint) (*model.Quiz, error) {
	return s.Repo.FindByID(quizID)
}

func (s *QuizService) ListByClassroom(classroomID uint) ([]model.Quiz, error) {
	return s.Repo.ListByClassroom(classroomID)
}

// CanAuthor 出题守卫：测验一旦有作答记录，题目结构永久冻结。
// 到期与否不影响出题权限。
func (s *QuizService) CanAuthor(quizID uint) (bool, error) {
	locked, err := s.Repo.IsLocked(quizID)
	if err != nil {
		return false, err
	}
	return !locked, nil
}

// ReplaceQuestions 整体替换测验的题目与答案。题号、字母原样保存，
// 不去重也不重排；重复字母属调用方错误。
func (s *QuizService) ReplaceQuestions(quizID uint, reqs []QuestionReq) ([]model.QuizQuestion, error) {
	if _, err := s.Repo.FindByID(quizID); err != nil {
		return nil, err
	}

	ok, err := s.CanAuthor(quizID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrAuthoringLocked
	}

	questions := make([]model.QuizQuestion, 0, len(reqs))
	for _, qr := range reqs {
		q := model.QuizQuestion{
			Number: qr.Number,
			Text:   qr.Text,
		}
		for _, ar := range qr.Answers {
			q.Answers = append(q.Answers, model.QuizAnswer{
				Letter:  ar.Letter,
				Text:    ar.Text,
				Correct: ar.Correct,
			})
		}
		questions = append(questions, q)
	}

	// 事务内部会再次检查作答数
	if err := s.Repo.ReplaceQuestions(quizID, questions); err != nil {
		return nil, err
	}

	s.invalidateStudentCache(quizID)
	return s.Repo.ListQuestions(quizID)
}

func (s *QuizService) ListQuestions(quizID uint) ([]model.QuizQuestion, error) {
	return s.Repo.ListQuestions(quizID)
}

// StudentQuizView 学生侧题面，不带 correct 标志
type StudentQuizView struct {
	Quiz      *model.Quiz           `json:"quiz"`
	State     model.QuizState       `json:"state"`
	Questions []StudentQuestionView `json:"questions"`
}

type StudentQuestionView struct {
	Number  int                 `json:"number"`
	Text    string              `json:"text"`
	Answers []StudentAnswerView `json:"answers"`
}

type StudentAnswerView struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// GetQuizForStudent 学生请求题面：仅限测验所属课堂院系的学生，
// 未开始的测验不可见，到期后仅在 AcceptAfterExpired 时放行。
// 题面短暂缓存于 Redis，出题变更时失效。
func (s *QuizService) GetQuizForStudent(ctx context.Context, quizID uint, student *model.User) (*StudentQuizView, error) {
	quiz, err := s.Repo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.checkMembership(quiz, student); err != nil {
		return nil, err
	}

	now := time.Now()
	switch quiz.State(now) {
	case model.QuizScheduled:
		return nil, util.ErrQuizNotStarted
	case model.QuizExpired:
		if !quiz.AcceptAfterExpired {
			return nil, util.ErrQuizNotSubmittable
		}
	}

	if view, ok := s.cachedStudentView(ctx, quizID); ok {
		view.State = quiz.State(now)
		return view, nil
	}

	questions, err := s.Repo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	view := &StudentQuizView{Quiz: quiz, State: quiz.State(now)}
	for _, q := range questions {
		qv := StudentQuestionView{Number: q.Number, Text: q.Text}
		for _, a := range q.Answers {
			qv.Answers = append(qv.Answers, StudentAnswerView{Letter: a.Letter, Text: a.Text})
		}
		view.Questions = append(view.Questions, qv)
	}

	s.cacheStudentView(ctx, quizID, view)
	return view, nil
}

// checkMembership 院系是多租户边界：学生只能接触本院系课堂的测验
func (s *QuizService) checkMembership(quiz *model.Quiz, student *model.User) error {
	classroom, err := s.ClassroomRepo.FindByID(quiz.ClassroomID)
	if err != nil {
		return err
	}
	if student.DepartmentID == nil || *student.DepartmentID != classroom.DepartmentID {
		return util.ErrPermissionDenied
	}
	return nil
}

func studentQuizCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:student_view:%d", quizID)
}

func (s *QuizService) cachedStudentView(ctx context.Context, quizID uint) (*StudentQuizView, bool) {
	if s.RDB == nil {
		return nil, false
	}
	data, err := s.RDB.Get(ctx, studentQuizCacheKey(quizID)).Bytes()
	if err != nil {
		return nil, false
	}
	var view StudentQuizView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, false
	}
	return &view, true
}

func (s *QuizService) cacheStudentView(ctx context.Context, quizID uint, view *StudentQuizView) {
	if s.RDB == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.RDB.Set(ctx, studentQuizCacheKey(quizID), data, studentQuizCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache student quiz view", zap.Uint("quizId", quizID), zap.Error(err))
	}
}

func (s *QuizService) invalidateStudentCache(quizID uint) {
	if s.RDB == nil {
		return
	}
	if err := s.RDB.Del(context.Background(), studentQuizCacheKey(quizID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate quiz cache", zap.Uint("quizId", quizID), zap.Error(err))
	}
}
