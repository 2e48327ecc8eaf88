package waitlist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/framp/framp-backend/internal/controller"
	"github.com/framp/framp-backend/internal/utils/logger"
	"github.com/framp/framp-backend/internal/view"
)

type JoinRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type handler struct {
	controller controller.IController
	logger     *logger.Logger
}

func New(controller controller.IController, logger *logger.Logger) IHandler {
	return &handler{
		controller: controller,
		logger:     logger,
	}
}

// Join godoc
// @Summary Join the waitlist
// @id joinWaitlist
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param request body JoinRequest true "Signup"
// @Success 201 {object} view.Response[model.WaitlistEntry]
// @Failure 400 {object} view.Response[any]
// @Failure 409 {object} view.Response[any]
// @Router /waitlist [post]
func (h *handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	entry, err := h.controller.JoinWaitlist(req.Email, req.Name)
	if err != nil {
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, req, "failed to join waitlist"))
		return
	}

	c.JSON(http.StatusCreated, view.CreateResponse[any](entry, nil, nil, "joined waitlist"))
}

// List godoc
// @Summary List waitlist entries
// @id listWaitlist
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} view.Response[[]model.WaitlistEntry]
// @Router /admin/waitlist [get]
func (h *handler) List(c *gin.Context) {
	entries, err := h.controller.ListWaitlist(c.Query("status"))
	if err != nil {
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, nil, "failed to list waitlist"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](entries, nil, nil, ""))
}

// UpdateStatus godoc
// @Summary Update a waitlist entry status
// @id updateWaitlistStatus
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} view.Response[model.WaitlistEntry]
// @Failure 400 {object} view.Response[any]
// @Failure 404 {object} view.Response[any]
// @Router /admin/waitlist/{id} [patch]
func (h *handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	entry, err := h.controller.UpdateWaitlistStatus(c.Param("id"), req.Status)
	if err != nil {
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, req, "failed to update waitlist entry"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](entry, nil, nil, ""))
}
