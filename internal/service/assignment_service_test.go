package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignmentService(t *testing.T, env *testEnv) *AssignmentService {
	t.Helper()
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}
	return NewAssignmentService(repository.NewAssignmentRepository(env.db), env.classRepo, storage)
}

func makeFileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSubmitWorkOncePerStudent(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssignmentService(t, env)

	title := "Essay"
	due := time.Now().Add(48 * time.Hour)
	assignment, err := svc.Create(env.lecturer.ID, env.classroom.ID, AssignmentReq{Title: &title, DateDue: &due})
	require.NoError(t, err)

	submission, err := svc.SubmitWork(context.Background(), assignment.ID, env.student, makeFileHeader(t, "essay.pdf", "draft one"))
	require.NoError(t, err)
	assert.Equal(t, "Not Graded", submission.Grade)
	assert.NotEmpty(t, submission.FileURL)

	_, err = svc.SubmitWork(context.Background(), assignment.ID, env.student, makeFileHeader(t, "essay.pdf", "draft two"))
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
}

func TestSubmitWorkOtherDepartmentRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssignmentService(t, env)

	title := "Essay"
	due := time.Now().Add(48 * time.Hour)
	assignment, err := svc.Create(env.lecturer.ID, env.classroom.ID, AssignmentReq{Title: &title, DateDue: &due})
	require.NoError(t, err)

	outsider := env.createOutsider(t)
	_, err = svc.SubmitWork(context.Background(), assignment.ID, outsider, makeFileHeader(t, "essay.pdf", "not my class"))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	var count int64
	require.NoError(t, env.db.Model(&model.AssignmentSubmission{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGradeSubmissionOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := newAssignmentService(t, env)

	title := "Essay"
	due := time.Now().Add(48 * time.Hour)
	assignment, err := svc.Create(env.lecturer.ID, env.classroom.ID, AssignmentReq{Title: &title, DateDue: &due})
	require.NoError(t, err)

	submission, err := svc.SubmitWork(context.Background(), assignment.ID, env.student, makeFileHeader(t, "essay.pdf", "final"))
	require.NoError(t, err)

	stranger := &model.User{Name: "Nora", Email: "nora2@example.com", Password: "x", Role: model.Lecturer}
	require.NoError(t, env.db.Create(stranger).Error)

	_, err = svc.GradeSubmission(submission.ID, stranger.ID, "A")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	graded, err := svc.GradeSubmission(submission.ID, env.lecturer.ID, "A")
	require.NoError(t, err)
	assert.True(t, graded.Graded)
	assert.Equal(t, "A", graded.Grade)
}
