package service

import (
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv 基于内存 SQLite 的服务层测试环境
type testEnv struct {
	db        *gorm.DB
	quizRepo  *repository.QuizRepository
	respRepo  *repository.QuizResponseRepository
	classRepo *repository.ClassroomRepository

	quizService *QuizService
	respService *QuizResponseService

	batch     *model.Batch
	lecturer  *model.User
	student   *model.User
	classroom *model.Classroom
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库每个连接各自独立，收敛到单连接
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:        db,
		quizRepo:  repository.NewQuizRepository(db),
		respRepo:  repository.NewQuizResponseRepository(db),
		classRepo: repository.NewClassroomRepository(db),
	}

	env.quizService = NewQuizService(env.quizRepo, env.classRepo, nil)
	env.respService = NewQuizResponseService(env.respRepo, env.quizRepo, env.classRepo, nil)

	batch := &model.Batch{Year: "2026"}
	require.NoError(t, db.Create(batch).Error)
	env.batch = batch

	dept := &model.Department{BatchID: batch.ID, Name: "Computer Science"}
	require.NoError(t, db.Create(dept).Error)

	env.lecturer = &model.User{Name: "Lena", Email: "lena@example.com", Password: "x", Role: model.Lecturer}
	require.NoError(t, db.Create(env.lecturer).Error)

	env.student = &model.User{Name: "Sam", Email: "sam@example.com", Password: "x", Role: model.Student, DepartmentID: &dept.ID}
	require.NoError(t, db.Create(env.student).Error)

	env.classroom = &model.Classroom{OwnerID: env.lecturer.ID, DepartmentID: dept.ID, Name: "Algorithms"}
	require.NoError(t, db.Create(env.classroom).Error)

	return env
}

// createOutsider 另建一个院系及其学生，用于跨院系访问场景
func (env *testEnv) createOutsider(t *testing.T) *model.User {
	t.Helper()

	dept := &model.Department{BatchID: env.batch.ID, Name: "History"}
	require.NoError(t, env.db.Create(dept).Error)

	outsider := &model.User{Name: "Omar", Email: "omar@example.com", Password: "x", Role: model.Student, DepartmentID: &dept.ID}
	require.NoError(t, env.db.Create(outsider).Error)
	return outsider
}

// createQuiz 建一个正处于 live 状态的测验
func (env *testEnv) createQuiz(t *testing.T, title string) *model.Quiz {
	t.Helper()

	start := time.Now().Add(-5 * time.Minute)
	duration := 30
	quiz, err := env.quizService.CreateQuiz(env.lecturer.ID, env.classroom.ID, QuizReq{
		Title:    &title,
		Start:    &start,
		Duration: &duration,
	})
	require.NoError(t, err)
	return quiz
}

// seedQuestions 两道题：第 1 题 A 对 B 错，第 2 题 A、C 对 B 错
func (env *testEnv) seedQuestions(t *testing.T, quizID uint) {
	t.Helper()

	_, err := env.quizService.ReplaceQuestions(quizID, []QuestionReq{
		{
			Number: 1,
			Text:   "What is a stable sort?",
			Answers: []AnswerReq{
				{Letter: "A", Text: "Preserves order of equal keys", Correct: true},
				{Letter: "B", Text: "Always O(n)", Correct: false},
			},
		},
		{
			Number: 2,
			Text:   "Which are comparison sorts?",
			Answers: []AnswerReq{
				{Letter: "A", Text: "Merge sort", Correct: true},
				{Letter: "B", Text: "Counting sort", Correct: false},
				{Letter: "C", Text: "Heap sort", Correct: true},
			},
		},
	})
	require.NoError(t, err)
}
