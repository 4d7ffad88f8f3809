package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pmartins-dev/roster-api/internal/adapter/handler/dto/request"
	"github.com/pmartins-dev/roster-api/internal/adapter/handler/dto/response"
	"github.com/pmartins-dev/roster-api/internal/pkg/authz"
	"github.com/pmartins-dev/roster-api/internal/pkg/httputil"
	"github.com/pmartins-dev/roster-api/internal/usecase/user"
)

type UserHandler struct {
	userSvc UserService
}

func NewUserHandler(userSvc UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func caller(c *gin.Context) authz.Caller {
	return authz.Caller{
		ID:   httputil.GetUserID(c),
		Role: httputil.GetUserRole(c),
	}
}

// targetID parses the path id for the access decision only. An unparseable
// id yields uuid.Nil, which can never match the caller, so non-instructors
// are denied before the service reports the syntax error.
func targetID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Create godoc
//
//	@Summary		Create a user
//	@Description	Register a new user account; no credential is required
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.CreateUserRequest	true	"User data"
//	@Success		201		{object}	httputil.Envelope{data=response.UserResponse}
//	@Failure		400		{object}	httputil.Envelope	"Validation failure or email already in use"
//	@Router			/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.userSvc.Create(c.Request.Context(), user.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.Created(c, "successfully created the user", response.UserFromEntity(created))
}

// List godoc
//
//	@Summary		List users
//	@Description	List users, optionally filtered by name, email or role
//	@Tags			users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			name	query		string	false	"Filter by exact name"
//	@Param			email	query		string	false	"Filter by exact email"
//	@Param			role	query		string	false	"Filter by role"
//	@Success		200		{object}	httputil.Envelope{data=[]response.UserResponse}
//	@Failure		401		{object}	httputil.Envelope
//	@Failure		403		{object}	httputil.Envelope
//	@Router			/users [get]
func (h *UserHandler) List(c *gin.Context) {
	if !authz.Allowed(authz.OpReadAll, caller(c), uuid.Nil) {
		httputil.Error(c, http.StatusForbidden, "forbidden")
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), user.Filter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Role:  c.Query("role"),
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	message := fmt.Sprintf("successfully retrieved %d users", len(users))
	httputil.OK(c, message, response.UsersFromEntities(users))
}

// Get godoc
//
//	@Summary		Get a user
//	@Tags			users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	httputil.Envelope{data=response.UserResponse}
//	@Failure		400	{object}	httputil.Envelope
//	@Failure		401	{object}	httputil.Envelope
//	@Failure		403	{object}	httputil.Envelope
//	@Failure		404	{object}	httputil.Envelope
//	@Router			/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	if !authz.Allowed(authz.OpRead, caller(c), targetID(c)) {
		httputil.Error(c, http.StatusForbidden, "forbidden")
		return
	}

	found, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, "successfully retrieved the user", response.UserFromEntity(found))
}

// Update godoc
//
//	@Summary		Update a user
//	@Description	Partial update; only supplied fields are validated and changed
//	@Tags			users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		request.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	httputil.Envelope{data=response.UserResponse}
//	@Failure		400		{object}	httputil.Envelope
//	@Failure		401		{object}	httputil.Envelope
//	@Failure		403		{object}	httputil.Envelope
//	@Failure		404		{object}	httputil.Envelope
//	@Router			/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	if !authz.Allowed(authz.OpUpdate, caller(c), targetID(c)) {
		httputil.Error(c, http.StatusForbidden, "forbidden")
		return
	}

	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), user.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, "successfully updated the user", response.UserFromEntity(updated))
}

// Delete godoc
//
//	@Summary		Delete a user
//	@Description	Permanently remove the user and return the removed record
//	@Tags			users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	httputil.Envelope{data=response.UserResponse}
//	@Failure		400	{object}	httputil.Envelope
//	@Failure		401	{object}	httputil.Envelope
//	@Failure		403	{object}	httputil.Envelope
//	@Failure		404	{object}	httputil.Envelope
//	@Router			/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if !authz.Allowed(authz.OpDelete, caller(c), targetID(c)) {
		httputil.Error(c, http.StatusForbidden, "forbidden")
		return
	}

	deleted, err := h.userSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, "successfully deleted the user", response.UserFromEntity(deleted))
}
