package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/steamtrack/project-tracking-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockRepo(t *testing.T) (ProjectRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return NewProjectRepository(db), mock
}

// A collision on the unique key index must surface as gorm.ErrDuplicatedKey
// so the caller can generate a fresh key and retry the insert.
func TestProjectRepository_Create_DuplicateKeyTranslated(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `projects`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ABCDE' for key 'idx_projects_key'"})
	mock.ExpectRollback()

	project := &models.Project{
		Name:      "testproject",
		Key:       "ABCDE",
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		OwnerID:   1,
	}

	err := repo.Create(project)
	require.Error(t, err)
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Create_RetrySucceeds(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `projects`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ABCDE' for key 'idx_projects_key'"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `projects`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	project := &models.Project{
		Name:      "testproject",
		Key:       "ABCDE",
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		OwnerID:   1,
	}

	err := repo.Create(project)
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	project.Key = "FGHIJ"
	require.NoError(t, repo.Create(project))
	require.NoError(t, mock.ExpectationsWereMet())
}
