package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"user-resource-api/internal/application/ports"
	domain "user-resource-api/internal/domain/user"
	"user-resource-api/internal/infrastructure/jwt"
	"user-resource-api/internal/interface/api/rest/dto/user"
	"user-resource-api/internal/interface/api/rest/middleware"
	"user-resource-api/internal/interface/api/rest/validator"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgInvalidName   = "Name must contain only letters"
	msgEmailExists   = "Email already exists"
	msgUserNotFound  = "User not found"
	msgInternalError = "Internal Server Error"
	msgUserCreated   = "User created successfully with ID: %d"
	msgUserUpdated   = "User updated successfully"
	msgUserDeleted   = "User deleted successfully"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	uc.register(r.Group(RouteUsers), uc.pipeline(jwtService)...)

	return uc
}

// pipeline guards the identified-resource routes. Order matters: every
// stage relies on the ones before it.
func (uc *UserController) pipeline(jwtService *jwt.Service) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.NumericID(ParamID),
		middleware.UserExists(uc.userService, uc.logger),
		middleware.AuthMiddleware(jwtService),
		middleware.HasPermissions(),
	}
}

func (uc *UserController) register(r gin.IRoutes, pipeline ...gin.HandlerFunc) {
	r.POST(RouteCreate, uc.CreateUserHandler)
	r.GET(RouteAllUsers, uc.GetAllUsersHandler)
	r.GET(RouteFindUsers, uc.FindUsersHandler)
	r.POST(RouteBulkCreate, uc.BulkCreateHandler)

	guarded := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clip(pipeline), h)
	}
	r.GET(RouteUser, guarded(uc.GetUserHandler)...)
	r.PUT(RouteUser, guarded(uc.UpdateUserHandler)...)
	r.DELETE(RouteUser, guarded(uc.DeleteUserHandler)...)
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := uc.userService.CreateUser(c.Request.Context(), user.ToCreateInput(req))
	if err != nil {
		uc.writeError(c, "CreateUser", err)
		return
	}

	c.JSON(http.StatusOK, fmt.Sprintf(msgUserCreated, u.ID))
}

func (uc *UserController) GetAllUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindActiveUsers(c.Request.Context())
	if err != nil {
		uc.writeError(c, "FindActiveUsers", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) FindUsersHandler(c *gin.Context) {
	p := domain.SearchParams{
		Eliminados:         validator.QueryParam(c.GetQuery("eliminados")),
		Nombre:             c.Query("nombre"),
		FechaInicioAntes:   c.Query("fechaInicioAntes"),
		FechaInicioDespues: c.Query("fechaInicioDespues"),
		Status:             validator.QueryParam(c.GetQuery("status")),
	}

	users, err := uc.userService.SearchUsers(c.Request.Context(), p)
	if err != nil {
		uc.writeError(c, "SearchUsers", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) BulkCreateHandler(c *gin.Context) {
	var req user.BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msgInvalidBody)
		return
	}

	items := make([]user.CreateRequest, 0, len(req.Users))
	var malformed int
	for _, raw := range req.Users {
		var item user.CreateRequest
		if err := binding.JSON.BindBody(raw, &item); err != nil {
			malformed++
			continue
		}
		items = append(items, item)
	}

	res := uc.userService.BulkCreateUsers(c.Request.Context(), user.ToCreateInputs(items))
	res.FailedCount += malformed

	c.JSON(http.StatusOK, user.ToBulkCreateResponse(res))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, ok := uc.targetID(c)
	if !ok {
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		uc.writeError(c, "FindUserByID", err)
		return
	}

	if u == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	id, ok := uc.targetID(c)
	if !ok {
		return
	}

	var req user.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := uc.userService.UpdateUser(c.Request.Context(), id, user.ToUpdateInput(req)); err != nil {
		uc.writeError(c, "UpdateUser", err)
		return
	}

	c.JSON(http.StatusOK, msgUserUpdated)
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, ok := uc.targetID(c)
	if !ok {
		return
	}

	if err := uc.userService.DeleteUser(c.Request.Context(), id); err != nil {
		uc.writeError(c, "DeleteUser", err)
		return
	}

	c.JSON(http.StatusOK, msgUserDeleted)
}

// targetID prefers the id parsed by the pipeline and falls back to the path.
func (uc *UserController) targetID(c *gin.Context) (domain.ID, bool) {
	if id, ok := middleware.TargetID(c); ok {
		return id, true
	}
	id, ok := validator.ParseID(c.Param(ParamID))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ParamID + " must be a number"})
		return 0, false
	}

	return id, true
}

func (uc *UserController) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidName):
		c.JSON(http.StatusBadRequest, msgInvalidName)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, msgEmailExists)
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, msgUserNotFound)
	default:
		uc.logger.Error(op+"() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, msgInternalError)
	}
}
