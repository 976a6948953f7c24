package services

import (
	"strings"
	"testing"

	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type taskServiceTestEnv struct {
	db         *gorm.DB
	taskSvc    *TaskService
	meetingSvc *MeetingService
	project    *models.Project
}

func setupTaskServiceTestEnv(t *testing.T) taskServiceTestEnv {
	t.Helper()

	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "taskowner")

	project, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "testproject",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)

	taskRepo := repository.NewTaskRepository(env.db)
	meetingRepo := repository.NewMeetingRepository(env.db)
	projectRepo := repository.NewProjectRepository(env.db)

	return taskServiceTestEnv{
		db:         env.db,
		taskSvc:    NewTaskService(taskRepo, projectRepo),
		meetingSvc: NewMeetingService(meetingRepo, projectRepo),
		project:    project,
	}
}

func TestTaskService_CreateTask_WithinProjectBounds(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	// Boundary equality on both ends is valid
	task, err := env.taskSvc.CreateTask(CreateTaskInput{
		Name:      "task",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
		ProjectID: env.project.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusNotStarted, task.Status)
}

func TestTaskService_CreateTask_BeforeProjectStartRejected(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, err := env.taskSvc.CreateTask(CreateTaskInput{
		Name:      "task",
		StartDate: mustDate(t, "2022-12-31"),
		EndDate:   mustDate(t, "2023-01-01"),
		ProjectID: env.project.ID,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "start_date")
}

func TestTaskService_CreateTask_AfterProjectEndRejected(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, err := env.taskSvc.CreateTask(CreateTaskInput{
		Name:      "task",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-03"),
		ProjectID: env.project.ID,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "end_date")
}

func TestTaskService_CreateTask_NameRules(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	tests := []struct {
		name     string
		taskName string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"leading whitespace", " task"},
		{"trailing whitespace", "task "},
		{"too long", strings.Repeat("a", 101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.taskSvc.CreateTask(CreateTaskInput{
				Name:      tt.taskName,
				StartDate: mustDate(t, "2023-01-01"),
				EndDate:   mustDate(t, "2023-01-02"),
				ProjectID: env.project.ID,
			})
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Contains(t, validationErr.Fields, "name")
		})
	}
}

func TestTaskService_CreateTask_NameLengthCountsRunes(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	// 60 runes but 120 bytes; the limit is characters, not bytes.
	task, err := env.taskSvc.CreateTask(CreateTaskInput{
		Name:      strings.Repeat("é", 60),
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
		ProjectID: env.project.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 60, len([]rune(task.Name)))

	_, err = env.taskSvc.CreateTask(CreateTaskInput{
		Name:      strings.Repeat("é", 101),
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
		ProjectID: env.project.ID,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "name")
}

func TestTaskService_CreateTask_DatePresenceAndOrder(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	t.Run("start without end", func(t *testing.T) {
		_, err := env.taskSvc.CreateTask(CreateTaskInput{
			Name:      "task",
			StartDate: mustDate(t, "2023-01-01"),
			ProjectID: env.project.ID,
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Contains(t, validationErr.Fields, "end_date")
	})

	t.Run("end without start", func(t *testing.T) {
		_, err := env.taskSvc.CreateTask(CreateTaskInput{
			Name:      "task",
			EndDate:   mustDate(t, "2023-01-02"),
			ProjectID: env.project.ID,
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Contains(t, validationErr.Fields, "start_date")
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := env.taskSvc.CreateTask(CreateTaskInput{
			Name:      "task",
			StartDate: mustDate(t, "2023-01-02"),
			EndDate:   mustDate(t, "2023-01-01"),
			ProjectID: env.project.ID,
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Contains(t, validationErr.Fields, "start_date")
	})
}

func TestTaskService_CreateTask_InvalidStatusRejected(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, err := env.taskSvc.CreateTask(CreateTaskInput{
		Name:      "task",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
		Status:    models.TaskStatus("blocked"),
		ProjectID: env.project.ID,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "status")
}

func TestTaskService_CreateTask_MissingProject(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	_, err := env.taskSvc.CreateTask(CreateTaskInput{
		Name:      "task",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "project")

	_, err = env.taskSvc.CreateTask(CreateTaskInput{
		Name:      "task",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
		ProjectID: 9999,
	})
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestTaskService_UpdateTask_RevalidatesBounds(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	task, err := env.taskSvc.CreateTask(CreateTaskInput{
		Name:      "task",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
		ProjectID: env.project.ID,
	})
	require.NoError(t, err)

	badEnd := mustDate(t, "2023-02-01")
	_, err = env.taskSvc.UpdateTask(task.ID, UpdateTaskInput{
		EndDate: &badEnd,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "end_date")

	// The stored row is untouched
	stored, err := env.taskSvc.GetTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, "2023-01-02", stored.EndDate.Format("2006-01-02"))
}

func TestTaskService_UpdateTask_StatusTransition(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	task, err := env.taskSvc.CreateTask(CreateTaskInput{
		Name:      "task",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-01-02"),
		ProjectID: env.project.ID,
	})
	require.NoError(t, err)

	done := models.TaskStatusDone
	updated, err := env.taskSvc.UpdateTask(task.ID, UpdateTaskInput{Status: &done})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusDone, updated.Status)
}

func TestMeetingService_CreateMeeting(t *testing.T) {
	env := setupTaskServiceTestEnv(t)

	t.Run("within bounds", func(t *testing.T) {
		meeting, err := env.meetingSvc.CreateMeeting(CreateMeetingInput{
			Name:      "kickoff",
			Date:      mustDate(t, "2023-01-01"),
			ProjectID: env.project.ID,
		})
		require.NoError(t, err)
		require.Equal(t, env.project.ID, meeting.ProjectID)
	})

	t.Run("outside bounds rejected", func(t *testing.T) {
		_, err := env.meetingSvc.CreateMeeting(CreateMeetingInput{
			Name:      "late",
			Date:      mustDate(t, "2023-02-01"),
			ProjectID: env.project.ID,
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Contains(t, validationErr.Fields, "date")
	})

	t.Run("missing date rejected", func(t *testing.T) {
		_, err := env.meetingSvc.CreateMeeting(CreateMeetingInput{
			Name:      "undated",
			ProjectID: env.project.ID,
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Contains(t, validationErr.Fields, "date")
	})
}
