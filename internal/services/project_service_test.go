package services

import (
	"strings"
	"testing"
	"time"

	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/steamtrack/project-tracking-api/internal/repository"
	"github.com/steamtrack/project-tracking-api/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type projectServiceTestEnv struct {
	db          *gorm.DB
	projectSvc  *ProjectService
	projectRepo repository.ProjectRepository
}

func setupProjectServiceTestEnv(t *testing.T) projectServiceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Meeting{},
		&models.Resource{},
	)
	require.NoError(t, err)

	projectRepo := repository.NewProjectRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectSvc := NewProjectService(projectRepo, userRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return projectServiceTestEnv{
		db:          db,
		projectSvc:  projectSvc,
		projectRepo: projectRepo,
	}
}

func createServiceTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestProjectService_CreateProject_LongAccentedNameAccepted(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")

	// 255 runes but 510 bytes; the limit is characters, not bytes.
	_, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      strings.Repeat("é", 255),
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)
}

func TestProjectService_CreateProject_GeneratesFiveCharKey(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")

	project, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "testproject",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)
	require.Len(t, project.Key, 5)
	require.Equal(t, owner.ID, project.OwnerID)

	for _, ch := range project.Key {
		require.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", string(ch))
	}
}

func TestProjectService_CreateProject_KeysAreDistinct(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")

	keys := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		project, err := env.projectSvc.CreateProject(CreateProjectInput{
			Name:      "project",
			StartDate: mustDate(t, "2023-01-01"),
			EndDate:   mustDate(t, "2023-06-01"),
			OwnerID:   owner.ID,
		})
		require.NoError(t, err)
		keys[project.Key] = struct{}{}
	}
	require.Len(t, keys, 20)
}

func TestProjectService_CreateProject_ValidationErrors(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")

	tests := []struct {
		name  string
		input CreateProjectInput
		field string
	}{
		{
			name: "empty name",
			input: CreateProjectInput{
				Name:      "",
				StartDate: mustDate(t, "2023-01-01"),
				EndDate:   mustDate(t, "2023-06-01"),
				OwnerID:   owner.ID,
			},
			field: "name",
		},
		{
			name: "name too long",
			input: CreateProjectInput{
				Name:      strings.Repeat("a", 256),
				StartDate: mustDate(t, "2023-01-01"),
				EndDate:   mustDate(t, "2023-06-01"),
				OwnerID:   owner.ID,
			},
			field: "name",
		},
		{
			name: "name length counted in runes",
			input: CreateProjectInput{
				Name:      strings.Repeat("é", 256),
				StartDate: mustDate(t, "2023-01-01"),
				EndDate:   mustDate(t, "2023-06-01"),
				OwnerID:   owner.ID,
			},
			field: "name",
		},
		{
			name: "start after end",
			input: CreateProjectInput{
				Name:      "project",
				StartDate: mustDate(t, "2023-06-01"),
				EndDate:   mustDate(t, "2023-01-01"),
				OwnerID:   owner.ID,
			},
			field: "start_date",
		},
		{
			name: "equal dates rejected",
			input: CreateProjectInput{
				Name:      "project",
				StartDate: mustDate(t, "2023-01-01"),
				EndDate:   mustDate(t, "2023-01-01"),
				OwnerID:   owner.ID,
			},
			field: "start_date",
		},
		{
			name: "missing owner",
			input: CreateProjectInput{
				Name:      "project",
				StartDate: mustDate(t, "2023-01-01"),
				EndDate:   mustDate(t, "2023-06-01"),
			},
			field: "owner",
		},
		{
			name: "owner in members",
			input: CreateProjectInput{
				Name:      "project",
				StartDate: mustDate(t, "2023-01-01"),
				EndDate:   mustDate(t, "2023-06-01"),
				OwnerID:   owner.ID,
				MemberIDs: []uint64{owner.ID},
			},
			field: "members",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.projectSvc.CreateProject(tt.input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Contains(t, validationErr.Fields, tt.field)
		})
	}
}

func TestProjectService_UpdateProject_OwnerInMembersRejected(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")
	member := createServiceTestUser(t, env.db, "member")

	project, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "project",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)

	memberIDs := []uint64{member.ID, owner.ID}
	_, err = env.projectSvc.UpdateProject(project.ID, UpdateProjectInput{
		MemberIDs: &memberIDs,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "members")

	// Nothing was written
	count, err := env.projectRepo.CountMembers(project.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestProjectService_UpdateProject_DuplicateMemberIDsCollapse(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")
	member := createServiceTestUser(t, env.db, "member")

	project, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "project",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)

	memberIDs := []uint64{member.ID, member.ID}
	_, err = env.projectSvc.UpdateProject(project.ID, UpdateProjectInput{
		MemberIDs: &memberIDs,
	})
	require.NoError(t, err)

	count, err := env.projectRepo.CountMembers(project.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestProjectService_UpdateProject_KeyIsNeverRegenerated(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")

	project, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "project",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)
	originalKey := project.Key

	newName := "renamed"
	updated, err := env.projectSvc.UpdateProject(project.ID, UpdateProjectInput{
		Name: &newName,
	})
	require.NoError(t, err)
	require.Equal(t, originalKey, updated.Key)
}

func TestProjectService_RegisterByKey(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")
	joiner := createServiceTestUser(t, env.db, "joiner")

	project, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "project",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)

	t.Run("unknown key mutates nothing", func(t *testing.T) {
		_, _, err := env.projectSvc.RegisterByKey(joiner.ID, "ZZZZZ")
		require.ErrorIs(t, err, ErrInvalidJoinKey)

		count, err := env.projectRepo.CountMembers(project.ID)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("valid key joins", func(t *testing.T) {
		joined, result, err := env.projectSvc.RegisterByKey(joiner.ID, project.Key)
		require.NoError(t, err)
		require.Equal(t, RegisterJoined, result)
		require.Equal(t, project.ID, joined.ID)

		count, err := env.projectRepo.CountMembers(project.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
	})

	t.Run("repeat registration is a no-op", func(t *testing.T) {
		_, result, err := env.projectSvc.RegisterByKey(joiner.ID, project.Key)
		require.NoError(t, err)
		require.Equal(t, RegisterAlreadyMember, result)

		count, err := env.projectRepo.CountMembers(project.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
	})

	t.Run("owner redeeming own key is a no-op", func(t *testing.T) {
		_, result, err := env.projectSvc.RegisterByKey(owner.ID, project.Key)
		require.NoError(t, err)
		require.Equal(t, RegisterAlreadyMember, result)

		count, err := env.projectRepo.CountMembers(project.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
	})
}

func TestProjectService_DeleteProject_Cascades(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")
	member := createServiceTestUser(t, env.db, "member")

	project, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "project",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   owner.ID,
		MemberIDs: []uint64{member.ID},
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Create(&models.Task{
		Name:      "task",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-02-01"),
		Status:    models.TaskStatusNotStarted,
		ProjectID: project.ID,
	}).Error)
	require.NoError(t, env.db.Create(&models.Meeting{
		Name:      "meeting",
		Date:      mustDate(t, "2023-01-15"),
		ProjectID: project.ID,
	}).Error)
	require.NoError(t, env.db.Create(&models.Resource{
		Name:      "resource",
		ProjectID: project.ID,
	}).Error)

	require.NoError(t, env.projectSvc.DeleteProject(project.ID))

	var taskCount, meetingCount, resourceCount, memberCount int64
	require.NoError(t, env.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount).Error)
	require.NoError(t, env.db.Model(&models.Meeting{}).Where("project_id = ?", project.ID).Count(&meetingCount).Error)
	require.NoError(t, env.db.Model(&models.Resource{}).Where("project_id = ?", project.ID).Count(&resourceCount).Error)
	require.NoError(t, env.db.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&memberCount).Error)
	require.Zero(t, taskCount)
	require.Zero(t, meetingCount)
	require.Zero(t, resourceCount)
	require.Zero(t, memberCount)

	err = env.projectSvc.DeleteProject(project.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_ListProjectsForUser(t *testing.T) {
	env := setupProjectServiceTestEnv(t)
	owner := createServiceTestUser(t, env.db, "owner")
	member := createServiceTestUser(t, env.db, "member")
	outsider := createServiceTestUser(t, env.db, "outsider")
	staff := createServiceTestUser(t, env.db, "staff")
	staff.IsStaff = true
	require.NoError(t, env.db.Save(staff).Error)

	owned, err := env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "owned",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   owner.ID,
		MemberIDs: []uint64{member.ID},
	})
	require.NoError(t, err)

	_, err = env.projectSvc.CreateProject(CreateProjectInput{
		Name:      "other",
		StartDate: mustDate(t, "2023-01-01"),
		EndDate:   mustDate(t, "2023-06-01"),
		OwnerID:   staff.ID,
	})
	require.NoError(t, err)

	params := utils.PaginationParams{Page: 1, Limit: 20}

	ownerProjects, total, err := env.projectSvc.ListProjectsForUser(owner, params)
	require.NoError(t, err)
	require.Len(t, ownerProjects, 1)
	require.Equal(t, int64(1), total)
	require.Equal(t, owned.ID, ownerProjects[0].ID)

	memberProjects, total, err := env.projectSvc.ListProjectsForUser(member, params)
	require.NoError(t, err)
	require.Len(t, memberProjects, 1)
	require.Equal(t, int64(1), total)

	outsiderProjects, total, err := env.projectSvc.ListProjectsForUser(outsider, params)
	require.NoError(t, err)
	require.Empty(t, outsiderProjects)
	require.Equal(t, int64(0), total)

	staffProjects, total, err := env.projectSvc.ListProjectsForUser(staff, params)
	require.NoError(t, err)
	require.Len(t, staffProjects, 2)
	require.Equal(t, int64(2), total)
}
