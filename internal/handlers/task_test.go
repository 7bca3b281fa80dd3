package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/sakurada-dev/team-productivity-api/internal/constants"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
	"github.com/sakurada-dev/team-productivity-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler

	manager *models.User
	report  *models.User
	outside *models.User
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Category{}, &models.Task{})
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	ownership := services.NewOwnershipService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, ownership, zap.NewNop())
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)

	suite.manager = suite.createTestUser("manager@example.com", models.RoleManager, nil)
	suite.report = suite.createTestUser("report@example.com", models.RoleUser, &suite.manager.ID)
	suite.outside = suite.createTestUser("outside@example.com", models.RoleUser, nil)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email string, role models.Role, managerID *uint64) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
		IsActive:     true,
		ManagerID:    managerID,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, ownerID, creatorID uint64) *models.Task {
	task := &models.Task{
		Title:         title,
		Description:   "Test Description",
		Status:        models.TaskStatusTodo,
		OwnerUserID:   ownerID,
		CreatorUserID: creatorID,
	}
	suite.db.Create(task)
	return task
}

// createActorContext builds a request context with a resolved Actor, as the
// auth middleware would.
func (suite *TaskHandlerTestSuite) createActorContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if user != nil {
		c.Set(constants.ContextKeyActor, models.ActorFromUser(user))
	}

	return c, w
}

func setIDParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

// TestCreateTask_Success tests self-authored task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	body, _ := json.Marshal(map[string]interface{}{
		"title":       "New Task",
		"description": "Task Description",
	})

	c, w := suite.createActorContext("POST", "/api/tasks", body, suite.report)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Task", response.Title)
	assert.Equal(suite.T(), suite.report.ID, response.OwnerUserID)
	assert.Equal(suite.T(), suite.report.ID, response.CreatorUserID)
}

// TestCreateTask_Unauthorized tests creation without a resolved actor
func (suite *TaskHandlerTestSuite) TestCreateTask_Unauthorized() {
	body, _ := json.Marshal(map[string]interface{}{"title": "New Task"})
	c, w := suite.createActorContext("POST", "/api/tasks", body, nil)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestCreateTeamTask_Success tests a manager creating a task for a report
func (suite *TaskHandlerTestSuite) TestCreateTeamTask_Success() {
	body, _ := json.Marshal(map[string]interface{}{
		"user_id": suite.report.ID,
		"title":   "Delegated Task",
	})

	c, w := suite.createActorContext("POST", "/api/team/tasks", body, suite.manager)

	suite.handler.CreateTeamTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.report.ID, response.OwnerUserID)
	assert.Equal(suite.T(), suite.manager.ID, response.CreatorUserID)
}

// TestCreateTeamTask_NotTeamMember tests delegation outside the team
func (suite *TaskHandlerTestSuite) TestCreateTeamTask_NotTeamMember() {
	body, _ := json.Marshal(map[string]interface{}{
		"user_id": suite.outside.ID,
		"title":   "Delegated Task",
	})

	c, w := suite.createActorContext("POST", "/api/team/tasks", body, suite.manager)

	suite.handler.CreateTeamTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestUpdateTaskStatus_DelegatedTaskAllowed tests the creation-lock exemption
func (suite *TaskHandlerTestSuite) TestUpdateTaskStatus_DelegatedTaskAllowed() {
	task := suite.createTestTask("Delegated", suite.report.ID, suite.manager.ID)

	body, _ := json.Marshal(map[string]interface{}{"status": "done"})
	c, w := suite.createActorContext("PATCH", "/api/tasks/1/status", body, suite.report)
	setIDParam(c, task.ID)

	suite.handler.UpdateTaskStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Task
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusDone, response.Status)
	assert.NotNil(suite.T(), response.CompletedAt)
}

// TestUpdateTask_DelegatedTitleForbidden tests the creation lock on structure
func (suite *TaskHandlerTestSuite) TestUpdateTask_DelegatedTitleForbidden() {
	task := suite.createTestTask("Delegated", suite.report.ID, suite.manager.ID)

	body, _ := json.Marshal(map[string]interface{}{"title": "Renamed"})
	c, w := suite.createActorContext("PATCH", "/api/tasks/1", body, suite.report)
	setIDParam(c, task.ID)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "details")
}

// TestDeleteTask_OwnTask tests a user deleting a self-authored task
func (suite *TaskHandlerTestSuite) TestDeleteTask_OwnTask() {
	task := suite.createTestTask("Own", suite.report.ID, suite.report.ID)

	c, w := suite.createActorContext("DELETE", "/api/tasks/1", nil, suite.report)
	setIDParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestDeleteTask_DelegatedForbidden tests a user deleting a manager-authored task
func (suite *TaskHandlerTestSuite) TestDeleteTask_DelegatedForbidden() {
	task := suite.createTestTask("Delegated", suite.report.ID, suite.manager.ID)

	c, w := suite.createActorContext("DELETE", "/api/tasks/1", nil, suite.report)
	setIDParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestGetTask_CrossUserForbidden tests reading another user's task
func (suite *TaskHandlerTestSuite) TestGetTask_CrossUserForbidden() {
	task := suite.createTestTask("Private", suite.report.ID, suite.report.ID)

	c, w := suite.createActorContext("GET", "/api/tasks/1", nil, suite.outside)
	setIDParam(c, task.ID)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestListTasks_ManagerListsReport tests a manager listing a report's tasks
func (suite *TaskHandlerTestSuite) TestListTasks_ManagerListsReport() {
	suite.createTestTask("Report task", suite.report.ID, suite.report.ID)
	suite.createTestTask("Outside task", suite.outside.ID, suite.outside.ID)

	c, w := suite.createActorContext("GET", "/api/tasks", nil, suite.manager)
	c.Request.URL.RawQuery = "user_id=" + strconv.FormatUint(suite.report.ID, 10)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)
}

// TestListTasks_CrossUserForbidden tests listing someone else's tasks
func (suite *TaskHandlerTestSuite) TestListTasks_CrossUserForbidden() {
	c, w := suite.createActorContext("GET", "/api/tasks", nil, suite.outside)
	c.Request.URL.RawQuery = "user_id=" + strconv.FormatUint(suite.report.ID, 10)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
