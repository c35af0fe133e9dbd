package service

import (
	"context"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuizTitleUniquePerClassroom(t *testing.T) {
	env := newTestEnv(t)

	env.createQuiz(t, "Midterm")

	title := "Midterm"
	start := time.Now()
	_, err := env.quizService.CreateQuiz(env.lecturer.ID, env.classroom.ID, QuizReq{Title: &title, Start: &start})
	assert.ErrorIs(t, err, util.ErrQuizTitleTaken)

	// 另一个课堂可以重名
	other := &model.Classroom{OwnerID: env.lecturer.ID, DepartmentID: env.classroom.DepartmentID, Name: "Databases"}
	require.NoError(t, env.db.Create(other).Error)
	_, err = env.quizService.CreateQuiz(env.lecturer.ID, other.ID, QuizReq{Title: &title, Start: &start})
	assert.NoError(t, err)
}

func TestUpdateQuizTitleConflict(t *testing.T) {
	env := newTestEnv(t)

	env.createQuiz(t, "Midterm")
	quiz := env.createQuiz(t, "Final")

	taken := "Midterm"
	_, err := env.quizService.UpdateQuiz(quiz.ID, QuizReq{Title: &taken})
	assert.ErrorIs(t, err, util.ErrQuizTitleTaken)

	// 标题不变的更新不触发冲突检查
	same := "Final"
	accepting := false
	updated, err := env.quizService.UpdateQuiz(quiz.ID, QuizReq{Title: &same, AcceptingAnswers: &accepting})
	require.NoError(t, err)
	assert.False(t, updated.AcceptingAnswers)
}

func TestReplaceQuestionsRoundtrip(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	questions, err := env.quizService.ListQuestions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, 1, questions[0].Number)
	assert.Equal(t, 2, questions[1].Number)
	require.Len(t, questions[0].Answers, 2)
	require.Len(t, questions[1].Answers, 3)

	assert.Equal(t, "A", questions[0].Answers[0].Letter)
	assert.True(t, questions[0].Answers[0].Correct)
	assert.Equal(t, "B", questions[0].Answers[1].Letter)
	assert.False(t, questions[0].Answers[1].Correct)

	// 整体替换：旧题目消失
	_, err = env.quizService.ReplaceQuestions(quiz.ID, []QuestionReq{
		{
			Number: 7,
			Text:   "Single question now",
			Answers: []AnswerReq{
				{Letter: "A", Text: "yes", Correct: true},
			},
		},
	})
	require.NoError(t, err)

	questions, err = env.quizService.ListQuestions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 7, questions[0].Number)

	var orphans int64
	require.NoError(t, env.db.Model(&model.QuizAnswer{}).Count(&orphans).Error)
	assert.EqualValues(t, 1, orphans, "replaced answers should be gone")
}

func TestReplaceQuestionsLockedAfterFirstResponse(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	_, err := env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	require.NoError(t, err)

	canAuthor, err := env.quizService.CanAuthor(quiz.ID)
	require.NoError(t, err)
	assert.False(t, canAuthor)

	_, err = env.quizService.ReplaceQuestions(quiz.ID, []QuestionReq{
		{Number: 1, Text: "changed", Answers: []AnswerReq{{Letter: "A", Text: "x", Correct: true}}},
	})
	assert.ErrorIs(t, err, util.ErrAuthoringLocked)

	// 冻结拒绝后题目原封不动
	questions, err := env.quizService.ListQuestions(quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is a stable sort?", questions[0].Text)
}

func TestAuthoringAllowedAfterExpiry(t *testing.T) {
	env := newTestEnv(t)

	title := "Old quiz"
	start := time.Now().Add(-24 * time.Hour)
	quiz, err := env.quizService.CreateQuiz(env.lecturer.ID, env.classroom.ID, QuizReq{Title: &title, Start: &start})
	require.NoError(t, err)

	// 到期但无人作答，出题仍然开放
	_, err = env.quizService.ReplaceQuestions(quiz.ID, []QuestionReq{
		{Number: 1, Text: "late edit", Answers: []AnswerReq{{Letter: "A", Text: "x", Correct: true}}},
	})
	assert.NoError(t, err)
}

func TestGetQuizForStudent(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	view, err := env.quizService.GetQuizForStudent(context.Background(), quiz.ID, env.student)
	require.NoError(t, err)
	assert.Equal(t, model.QuizLive, view.State)
	require.Len(t, view.Questions, 2)
	assert.Equal(t, "A", view.Questions[0].Answers[0].Letter)
}

func TestGetQuizForStudentOtherDepartment(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	outsider := env.createOutsider(t)
	_, err := env.quizService.GetQuizForStudent(context.Background(), quiz.ID, outsider)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestGetQuizForStudentNotStarted(t *testing.T) {
	env := newTestEnv(t)

	title := "Future quiz"
	start := time.Now().Add(time.Hour)
	quiz, err := env.quizService.CreateQuiz(env.lecturer.ID, env.classroom.ID, QuizReq{Title: &title, Start: &start})
	require.NoError(t, err)

	_, err = env.quizService.GetQuizForStudent(context.Background(), quiz.ID, env.student)
	assert.ErrorIs(t, err, util.ErrQuizNotStarted)
}

func TestGetQuizForStudentExpired(t *testing.T) {
	env := newTestEnv(t)

	title := "Expired quiz"
	start := time.Now().Add(-24 * time.Hour)
	quiz, err := env.quizService.CreateQuiz(env.lecturer.ID, env.classroom.ID, QuizReq{Title: &title, Start: &start})
	require.NoError(t, err)

	_, err = env.quizService.GetQuizForStudent(context.Background(), quiz.ID, env.student)
	assert.ErrorIs(t, err, util.ErrQuizNotSubmittable)

	// 开启补交后放行
	grace := true
	_, err = env.quizService.UpdateQuiz(quiz.ID, QuizReq{AcceptAfterExpired: &grace})
	require.NoError(t, err)

	view, err := env.quizService.GetQuizForStudent(context.Background(), quiz.ID, env.student)
	require.NoError(t, err)
	assert.Equal(t, model.QuizExpired, view.State)
}

func TestDeleteQuizRemovesTree(t *testing.T) {
	env := newTestEnv(t)
	quiz := env.createQuiz(t, "Midterm")
	env.seedQuestions(t, quiz.ID)

	_, err := env.respService.Submit(context.Background(), quiz.ID, env.student, []SelectionReq{
		{Number: 1, Letters: []string{"A"}},
	})
	require.NoError(t, err)

	require.NoError(t, env.quizService.DeleteQuiz(quiz.ID))

	for _, m := range []interface{}{
		&model.Quiz{}, &model.QuizQuestion{}, &model.QuizAnswer{},
		&model.QuizResponse{}, &model.QuizResponseQuestion{}, &model.QuizResponseAnswer{},
	} {
		var count int64
		require.NoError(t, env.db.Model(m).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}
}
