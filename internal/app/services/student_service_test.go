package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/app/repositories"
	"github.com/wiseman/studentrecords/internal/docstore"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
)

type studentFixture struct {
	store       *docstore.MemoryStore
	repos       *repositories.Repositories
	students    StudentService
	enrollments EnrollmentService
	modules     ModuleService
}

func newStudentFixture(t *testing.T) *studentFixture {
	t.Helper()
	store := docstore.NewMemoryStore()
	repos := repositories.NewRepositories(store)
	return &studentFixture{
		store:       store,
		repos:       repos,
		students:    NewStudentService(repos.UserRepository, repos.ModuleRepository, repos.EnrollmentRepository, zerolog.Nop()),
		enrollments: NewEnrollmentService(repos.EnrollmentRepository, repos.UserRepository, zerolog.Nop()),
		modules:     NewModuleService(repos.ModuleRepository),
	}
}

func (f *studentFixture) addModule(t *testing.T, name, code string, semester int, lecturer string) *models.Module {
	t.Helper()
	module, err := f.modules.AddModule(context.Background(), &dto.CreateModuleRequest{
		Name:     name,
		Code:     code,
		Semester: semester,
		Lecturer: lecturer,
	})
	require.NoError(t, err)
	return module
}

func TestStudentDetail(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	seedStudent(t, f.repos, "s1init")
	f.addModule(t, "Software Design", "CS101", 1, "Dr. A")

	_, err := f.enrollments.Enroll(ctx, "s1init", []string{"CS101"})
	require.NoError(t, err)

	detail, err := f.students.StudentDetail(ctx, "s1init")
	require.NoError(t, err)

	require.NotNil(t, detail.User)
	assert.Equal(t, "s1init", detail.User.Username)

	require.Len(t, detail.EnrolledModules, 1)
	row := detail.EnrolledModules[0]
	assert.Equal(t, "CS101", row.ModuleCode)
	assert.Equal(t, "Software Design", row.ModuleName)
	assert.Equal(t, "Dr. A", row.Lecturer)
	assert.Equal(t, 1, row.Semester)
	assert.Zero(t, row.SemesterMark)
	assert.Zero(t, row.ExamMark)
	assert.Zero(t, row.FinalMark)
}

func TestStudentDetailUnknownStudent(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.students.StudentDetail(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestStudentDetailNoEnrollments(t *testing.T) {
	f := newStudentFixture(t)
	seedStudent(t, f.repos, "s1init")

	detail, err := f.students.StudentDetail(context.Background(), "s1init")
	require.NoError(t, err)
	assert.NotNil(t, detail.EnrolledModules)
	assert.Empty(t, detail.EnrolledModules)
}

func TestStudentDetailSkipsUnknownModule(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	seedStudent(t, f.repos, "s1init")
	f.addModule(t, "Software Design", "CS101", 1, "Dr. A")

	// CS999 has no catalog entry; its enrollment must be skipped, not
	// fail the whole view
	_, err := f.enrollments.Enroll(ctx, "s1init", []string{"CS101", "CS999"})
	require.NoError(t, err)

	detail, err := f.students.StudentDetail(ctx, "s1init")
	require.NoError(t, err)
	require.Len(t, detail.EnrolledModules, 1)
	assert.Equal(t, "CS101", detail.EnrolledModules[0].ModuleCode)
}

func TestStudentDetailExcludesDeregistered(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	seedStudent(t, f.repos, "s1init")
	f.addModule(t, "Software Design", "CS101", 1, "Dr. A")
	f.addModule(t, "Databases", "CS102", 1, "Dr. B")

	enrolled, err := f.enrollments.Enroll(ctx, "s1init", []string{"CS101", "CS102"})
	require.NoError(t, err)

	var cs101ID string
	for _, e := range enrolled {
		if e.ModuleID == "CS101" {
			cs101ID = e.ID
		}
	}
	require.NotEmpty(t, cs101ID)
	require.NoError(t, f.enrollments.Deregister(ctx, cs101ID))

	detail, err := f.students.StudentDetail(ctx, "s1init")
	require.NoError(t, err)
	require.Len(t, detail.EnrolledModules, 1)
	assert.Equal(t, "CS102", detail.EnrolledModules[0].ModuleCode)
}

func TestStudentDetailReflectsMarkUpdates(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	seedStudent(t, f.repos, "s1init")
	f.addModule(t, "Software Design", "CS101", 1, "Dr. A")

	enrolled, err := f.enrollments.Enroll(ctx, "s1init", []string{"CS101"})
	require.NoError(t, err)

	sem, exam, final := 61.5, 55.0, 58.2
	_, err = f.enrollments.UpdateMarks(ctx, enrolled[0].ID, &dto.UpdateMarksRequest{
		SemesterMark: &sem,
		ExamMark:     &exam,
		FinalMark:    &final,
	})
	require.NoError(t, err)

	detail, err := f.students.StudentDetail(ctx, "s1init")
	require.NoError(t, err)
	require.Len(t, detail.EnrolledModules, 1)

	row := detail.EnrolledModules[0]
	assert.Equal(t, 61.5, row.SemesterMark)
	assert.Equal(t, 55.0, row.ExamMark)
	assert.Equal(t, 58.2, row.FinalMark)
}

func TestStudentDetailIsolatesStudents(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	seedStudent(t, f.repos, "s1init")
	seedStudent(t, f.repos, "s2init")
	f.addModule(t, "Software Design", "CS101", 1, "Dr. A")
	f.addModule(t, "Databases", "CS102", 1, "Dr. B")

	_, err := f.enrollments.Enroll(ctx, "s1init", []string{"CS101"})
	require.NoError(t, err)
	_, err = f.enrollments.Enroll(ctx, "s2init", []string{"CS102"})
	require.NoError(t, err)

	detail, err := f.students.StudentDetail(ctx, "s1init")
	require.NoError(t, err)
	require.Len(t, detail.EnrolledModules, 1)
	assert.Equal(t, "CS101", detail.EnrolledModules[0].ModuleCode)
}

func TestStudentDetailBlankUsername(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.students.StudentDetail(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
