package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmartins-dev/roster-api/internal/adapter/handler/dto/response"
	"github.com/pmartins-dev/roster-api/internal/pkg/authz"
	"github.com/pmartins-dev/roster-api/internal/pkg/httputil"
	"github.com/pmartins-dev/roster-api/internal/usecase/avatar"
)

const maxAvatarBytes = 5 << 20

type AvatarHandler struct {
	avatarSvc AvatarService
}

func NewAvatarHandler(avatarSvc AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarSvc: avatarSvc}
}

// Upload godoc
//
//	@Summary		Upload a profile avatar
//	@Description	Replace the user's avatar with the uploaded image
//	@Tags			users
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"User ID"
//	@Param			avatar	formData	file	true	"Image file"
//	@Success		200		{object}	httputil.Envelope{data=response.UserResponse}
//	@Failure		400		{object}	httputil.Envelope
//	@Failure		401		{object}	httputil.Envelope
//	@Failure		403		{object}	httputil.Envelope
//	@Failure		404		{object}	httputil.Envelope
//	@Router			/users/{id}/avatar [post]
func (h *AvatarHandler) Upload(c *gin.Context) {
	// Changing an avatar is an update to the account.
	if !authz.Allowed(authz.OpUpdate, caller(c), targetID(c)) {
		httputil.Error(c, http.StatusForbidden, "forbidden")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		httputil.Error(c, http.StatusBadRequest, "avatar file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.InternalError(c)
		return
	}
	defer file.Close()

	updated, err := h.avatarSvc.Upload(c.Request.Context(), avatar.UploadInput{
		UserID: c.Param("id"),
		File:   file,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, "successfully updated the avatar", response.UserFromEntity(updated))
}

// Remove godoc
//
//	@Summary		Remove a profile avatar
//	@Tags			users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	httputil.Envelope{data=response.UserResponse}
//	@Failure		400	{object}	httputil.Envelope
//	@Failure		401	{object}	httputil.Envelope
//	@Failure		403	{object}	httputil.Envelope
//	@Failure		404	{object}	httputil.Envelope
//	@Router			/users/{id}/avatar [delete]
func (h *AvatarHandler) Remove(c *gin.Context) {
	if !authz.Allowed(authz.OpUpdate, caller(c), targetID(c)) {
		httputil.Error(c, http.StatusForbidden, "forbidden")
		return
	}

	updated, err := h.avatarSvc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, "successfully removed the avatar", response.UserFromEntity(updated))
}
