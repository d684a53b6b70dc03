package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard/internal/domain"
	"taskboard/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	projects service.ProjectService
	tasks    service.TaskService
	verifier TokenVerifier
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, projects service.ProjectService, tasks service.TaskService, verifier TokenVerifier, logger *logrus.Logger) *Handler {
	return &Handler{
		users:    users,
		projects: projects,
		tasks:    tasks,
		verifier: verifier,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	secured := api.Group("", requireAuth(h.verifier))
	{
		secured.POST("/auth/logout", h.logout)
		secured.GET("/user", h.currentUser)
		secured.PUT("/user", h.updateProfile)
		secured.PUT("/user/password", h.changePassword)
		secured.POST("/user/verify-email", h.verifyEmail)

		secured.GET("/projects", h.listProjects)
		secured.POST("/projects", h.createProject)
		secured.GET("/projects/:id", h.getProject)
		secured.PUT("/projects/:id", h.updateProject)
		secured.PATCH("/projects/:id/status", h.updateProjectStatus)
		secured.DELETE("/projects/:id", h.deleteProject)

		secured.GET("/projects/:id/tasks", h.listTasks)
		secured.POST("/projects/:id/tasks", h.createTask)
		secured.GET("/projects/:id/tasks/:taskID", h.getTask)
		secured.PUT("/projects/:id/tasks/:taskID", h.updateTask)
		secured.PATCH("/projects/:id/tasks/:taskID/status", h.updateTaskStatus)
		secured.DELETE("/projects/:id/tasks/:taskID", h.deleteTask)
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type taskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": userToResponse(user)})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  userToResponse(result.User),
		"token": result.Token,
	})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) currentUser(c *gin.Context) {
	user, err := h.users.GetUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUserID(c), req.Name, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}

func (h *Handler) changePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *Handler) verifyEmail(c *gin.Context) {
	user, err := h.users.VerifyEmail(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.projects.GetUserProjects(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ProjectResponse, len(projects))
	for i := range projects {
		resp[i] = projectToResponse(projects[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": projectToResponse(project)})
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetProjectByID(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projectToResponse(project)})
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.UpdateProject(c.Request.Context(), id, service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projectToResponse(project)})
}

func (h *Handler) updateProjectStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.UpdateProjectStatus(c.Request.Context(), id, req.Status, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projectToResponse(project)})
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.projects.DeleteProject(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listTasks(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.GetProjectTasks(c.Request.Context(), projectID, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if tasks == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = taskToResponse(tasks[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *Handler) createTask(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}, projectID, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": taskToResponse(task)})
}

// taskInProject loads a task by path ids and hides tasks that live in a
// different project than the one addressed.
func (h *Handler) taskInProject(c *gin.Context) (*domain.Task, int64, bool) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return nil, 0, false
	}
	taskID, ok := pathID(c, "taskID")
	if !ok {
		return nil, 0, false
	}

	task, err := h.tasks.GetTaskByID(c.Request.Context(), taskID, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return nil, 0, false
	}
	if task == nil || task.ProjectID().Int64() != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return nil, 0, false
	}
	return task, taskID, true
}

func (h *Handler) getTask(c *gin.Context) {
	task, _, ok := h.taskInProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(task)})
}

func (h *Handler) updateTask(c *gin.Context) {
	_, taskID, ok := h.taskInProject(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), taskID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(task)})
}

func (h *Handler) updateTaskStatus(c *gin.Context) {
	_, taskID, ok := h.taskInProject(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c.Request.Context(), taskID, req.Status, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(task)})
}

func (h *Handler) deleteTask(c *gin.Context) {
	_, taskID, ok := h.taskInProject(c)
	if !ok {
		return
	}

	deleted, err := h.tasks.DeleteTask(c.Request.Context(), taskID, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": taskID})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

type UserResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	EmailVerifiedAt *string `json:"email_verified_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ProjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	UserID      int64  `json:"user_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date,omitempty"`
	ProjectID   int64   `json:"project_id"`
	UserID      int64   `json:"user_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID().Int64(),
		Name:      user.Name(),
		Email:     user.Email().String(),
		CreatedAt: user.CreatedAt().Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt().Format(time.RFC3339),
	}
	if user.EmailVerifiedAt() != nil {
		v := user.EmailVerifiedAt().Format(time.RFC3339)
		resp.EmailVerifiedAt = &v
	}
	return resp
}

func projectToResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID().Int64(),
		Name:        project.Name(),
		Description: project.Description(),
		Status:      string(project.Status()),
		UserID:      project.OwnerID().Int64(),
		CreatedAt:   project.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   project.UpdatedAt().Format(time.RFC3339),
	}
}

func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID().Int64(),
		Title:       task.Title(),
		Description: task.Description(),
		Status:      string(task.Status()),
		ProjectID:   task.ProjectID().Int64(),
		UserID:      task.OwnerID().Int64(),
		CreatedAt:   task.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt().Format(time.RFC3339),
	}
	if task.DueDate() != nil {
		v := task.DueDate().Format("2006-01-02")
		resp.DueDate = &v
	}
	return resp
}
