package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func assertAPIError(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.Status)
}

// TaskServiceTestSuite exercises the ownership-aware task operations.
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService

	admin   *models.User
	manager *models.User
	report  *models.User
	outside *models.User
}

func (suite *TaskServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Category{}, &models.Task{})
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	ownership := NewOwnershipService(userRepo)
	suite.service = NewTaskService(taskRepo, userRepo, ownership, zap.NewNop())

	suite.admin = suite.createUser("admin@example.com", models.RoleAdmin, nil)
	suite.manager = suite.createUser("manager@example.com", models.RoleManager, nil)
	suite.report = suite.createUser("report@example.com", models.RoleUser, &suite.manager.ID)
	suite.outside = suite.createUser("outside@example.com", models.RoleUser, nil)
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createUser(email string, role models.Role, managerID *uint64) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashed",
		Role:         role,
		IsActive:     true,
		ManagerID:    managerID,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskServiceTestSuite) createTask(title string, ownerID, creatorID uint64) *models.Task {
	task := &models.Task{
		Title:         title,
		Status:        models.TaskStatusTodo,
		OwnerUserID:   ownerID,
		CreatorUserID: creatorID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *TaskServiceTestSuite) actor(u *models.User) models.Actor {
	return models.ActorFromUser(u)
}

func (suite *TaskServiceTestSuite) TestCreateManagerTask_Success() {
	task, err := suite.service.CreateManagerTask(suite.actor(suite.manager), suite.report.ID, CreateTaskInput{
		Title: "Prepare quarterly report",
	})
	suite.Require().NoError(err)
	suite.Equal(suite.report.ID, task.OwnerUserID)
	suite.Equal(suite.manager.ID, task.CreatorUserID)
	suite.True(task.Delegated())
}

func (suite *TaskServiceTestSuite) TestCreateManagerTask_NotTeamMember() {
	_, err := suite.service.CreateManagerTask(suite.actor(suite.manager), suite.outside.ID, CreateTaskInput{
		Title: "Prepare quarterly report",
	})
	assertAPIError(suite.T(), err, http.StatusForbidden)
}

func (suite *TaskServiceTestSuite) TestCreateManagerTask_NonManagerActor() {
	_, err := suite.service.CreateManagerTask(suite.actor(suite.outside), suite.report.ID, CreateTaskInput{
		Title: "Prepare quarterly report",
	})
	assertAPIError(suite.T(), err, http.StatusForbidden)
}

func (suite *TaskServiceTestSuite) TestCreateManagerTask_CategoryOfOtherOwner() {
	category := &models.Category{
		Name:          "manager private",
		OwnerUserID:   suite.manager.ID,
		CreatorUserID: suite.manager.ID,
	}
	suite.Require().NoError(suite.db.Create(category).Error)

	_, err := suite.service.CreateManagerTask(suite.actor(suite.manager), suite.report.ID, CreateTaskInput{
		Title:      "Prepare quarterly report",
		CategoryID: &category.ID,
	})
	assertAPIError(suite.T(), err, http.StatusBadRequest)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_LockedStructuralField() {
	task := suite.createTask("delegated", suite.report.ID, suite.manager.ID)

	newTitle := "renamed"
	_, err := suite.service.UpdateTask(suite.actor(suite.report), task.ID, UpdateTaskInput{
		Title: &newTitle,
	})
	assertAPIError(suite.T(), err, http.StatusForbidden)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_LockedStatusAllowed() {
	task := suite.createTask("delegated", suite.report.ID, suite.manager.ID)

	status := models.TaskStatusDone
	updated, err := suite.service.UpdateTask(suite.actor(suite.report), task.ID, UpdateTaskInput{
		Status: &status,
	})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusDone, updated.Status)
	suite.NotNil(updated.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_SelfAuthoredNotLocked() {
	task := suite.createTask("own", suite.report.ID, suite.report.ID)

	newTitle := "renamed"
	updated, err := suite.service.UpdateTask(suite.actor(suite.report), task.ID, UpdateTaskInput{
		Title: &newTitle,
	})
	suite.Require().NoError(err)
	suite.Equal("renamed", updated.Title)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_ManagerEditsDelegated() {
	task := suite.createTask("delegated", suite.report.ID, suite.manager.ID)

	newTitle := "renamed by manager"
	updated, err := suite.service.UpdateTask(suite.actor(suite.manager), task.ID, UpdateTaskInput{
		Title: &newTitle,
	})
	suite.Require().NoError(err)
	suite.Equal("renamed by manager", updated.Title)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_DefaultsCompletedAt() {
	task := suite.createTask("own", suite.report.ID, suite.report.ID)

	before := time.Now().Add(-time.Second)
	updated, err := suite.service.UpdateTaskStatus(suite.actor(suite.report), task.ID, models.TaskStatusDone, nil, false)
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.CompletedAt)
	suite.True(updated.CompletedAt.After(before))
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_ExplicitCompletedAt() {
	task := suite.createTask("own", suite.report.ID, suite.report.ID)

	explicit := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	updated, err := suite.service.UpdateTaskStatus(suite.actor(suite.report), task.ID, models.TaskStatusDone, &explicit, false)
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.CompletedAt)
	suite.True(explicit.Equal(*updated.CompletedAt))
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_ExplicitClear() {
	task := suite.createTask("own", suite.report.ID, suite.report.ID)

	updated, err := suite.service.UpdateTaskStatus(suite.actor(suite.report), task.ID, models.TaskStatusDone, nil, true)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusDone, updated.Status)
	suite.Nil(updated.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_LeavingDoneClears() {
	task := suite.createTask("own", suite.report.ID, suite.report.ID)

	_, err := suite.service.UpdateTaskStatus(suite.actor(suite.report), task.ID, models.TaskStatusDone, nil, false)
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateTaskStatus(suite.actor(suite.report), task.ID, models.TaskStatusTodo, nil, false)
	suite.Require().NoError(err)
	suite.Nil(updated.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskStatus_OutsiderForbidden() {
	task := suite.createTask("own", suite.report.ID, suite.report.ID)

	_, err := suite.service.UpdateTaskStatus(suite.actor(suite.outside), task.ID, models.TaskStatusDone, nil, false)
	assertAPIError(suite.T(), err, http.StatusForbidden)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_OwnTask() {
	task := suite.createTask("own", suite.report.ID, suite.report.ID)

	err := suite.service.DeleteTask(suite.actor(suite.report), task.ID)
	suite.NoError(err)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	suite.EqualValues(0, count)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_DelegatedForbiddenForOwner() {
	task := suite.createTask("delegated", suite.report.ID, suite.manager.ID)

	err := suite.service.DeleteTask(suite.actor(suite.report), task.ID)
	assertAPIError(suite.T(), err, http.StatusForbidden)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	suite.EqualValues(1, count)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_ManagerDeletesReportTask() {
	task := suite.createTask("own", suite.report.ID, suite.report.ID)

	err := suite.service.DeleteTask(suite.actor(suite.manager), task.ID)
	suite.NoError(err)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_ManagerOutsideTeamForbidden() {
	task := suite.createTask("own", suite.outside.ID, suite.outside.ID)

	err := suite.service.DeleteTask(suite.actor(suite.manager), task.ID)
	assertAPIError(suite.T(), err, http.StatusForbidden)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_AdminDeletesAnything() {
	task := suite.createTask("delegated", suite.report.ID, suite.manager.ID)

	err := suite.service.DeleteTask(suite.actor(suite.admin), task.ID)
	suite.NoError(err)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_NotFound() {
	err := suite.service.DeleteTask(suite.actor(suite.admin), 9999)
	assertAPIError(suite.T(), err, http.StatusNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
