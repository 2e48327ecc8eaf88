package offramp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/controller"
	"github.com/framp/framp-backend/internal/telemetry"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
	"github.com/framp/framp-backend/internal/view"
)

type handler struct {
	controller controller.IController
	telemetry  telemetry.ITelemetry
	logger     *logger.Logger
	appConfig  *config.AppConfig
}

func New(controller controller.IController, telemetry telemetry.ITelemetry, logger *logger.Logger, appConfig *config.AppConfig) IHandler {
	return &handler{
		controller: controller,
		telemetry:  telemetry,
		logger:     logger,
		appConfig:  appConfig,
	}
}

// CreateRequest godoc
// @Summary Create off-ramp request
// @Description Stores a new off-ramp request with status pending
// @id createOffRampRequest
// @Tags OffRamp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOffRampRequest true "Off-ramp request"
// @Success 201 {object} view.Response[controller.CreateOffRampRequestResult]
// @Failure 400 {object} view.Response[any]
// @Failure 500 {object} view.Response[any]
// @Router /offramp/requests [post]
func (h *handler) CreateRequest(c *gin.Context) {
	var req CreateOffRampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("[CreateRequest][ShouldBindJSON]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	input := controller.CreateOffRampRequestInput{
		Wallet:            req.Wallet,
		Token:             req.Token,
		Amount:            req.Amount,
		BankAccountNumber: req.BankAccountNumber,
		BankCode:          req.BankCode,
		BankName:          req.BankName,
		Currency:          req.Currency,
		SignedTransaction: req.SignedTransaction,
	}
	if userID := c.GetString(consts.ContextKeyUserID); userID != "" {
		input.UserID = &userID
	}

	result, err := h.controller.CreateOffRampRequest(input)
	if err != nil {
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, req, "failed to create off-ramp request"))
		return
	}

	c.JSON(http.StatusCreated, view.CreateResponse[any](result, nil, nil, "off-ramp request created"))
}

// GetRequest godoc
// @Summary Get off-ramp request
// @id getOffRampRequest
// @Tags OffRamp
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} view.Response[model.OffRampRequest]
// @Failure 404 {object} view.Response[any]
// @Failure 500 {object} view.Response[any]
// @Router /offramp/requests/{id} [get]
func (h *handler) GetRequest(c *gin.Context) {
	request, err := h.controller.GetRequest(c.Param("id"))
	if err != nil {
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, nil, "failed to get off-ramp request"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](request, nil, nil, ""))
}

// Quote godoc
// @Summary Quote an off-ramp
// @Description Returns the fee breakdown for an amount
// @id quoteOffRamp
// @Tags OffRamp
// @Produce json
// @Param token query string true "Token symbol"
// @Param amount query number true "Token amount"
// @Success 200 {object} view.Response[controller.Quote]
// @Failure 400 {object} view.Response[any]
// @Router /offramp/quote [get]
func (h *handler) Quote(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, consts.ErrValidation, nil, "amount must be a number"))
		return
	}

	quote, err := h.controller.Quote(c.Query("token"), amount)
	if err != nil {
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, nil, "failed to quote"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](quote, nil, nil, ""))
}

// ListRequests godoc
// @Summary List off-ramp requests
// @Description Admin listing joined with user identity, newest first
// @id listOffRampRequests
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches user name, email, bank name, account number or payout reference"
// @Param status query string false "all, pending_all, or a status value"
// @Success 200 {object} view.Response[[]controller.OffRampRequestItem]
// @Failure 500 {object} view.Response[any]
// @Router /admin/offramp/requests [get]
func (h *handler) ListRequests(c *gin.Context) {
	items, err := h.controller.ListRequests(controller.ListRequestsFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, nil, "failed to list off-ramp requests"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](items, nil, nil, ""))
}

// UpdateStatus godoc
// @Summary Edit request status
// @id updateOffRampStatus
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} view.Response[model.OffRampRequest]
// @Failure 400 {object} view.Response[any]
// @Failure 404 {object} view.Response[any]
// @Router /admin/offramp/requests/{id}/status [patch]
func (h *handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	request, err := h.controller.UpdateStatus(c.Param("id"), req.Status, req.AdminNote)
	if err != nil {
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, req, "failed to update status"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](request, nil, nil, "status updated"))
}

// Approve godoc
// @Summary Approve and pay out a request
// @Description Only pending or processing requests can be approved
// @id approveOffRamp
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ApproveRequest true "Approval"
// @Success 200 {object} view.Response[controller.PayoutResult]
// @Failure 400 {object} view.Response[any]
// @Failure 404 {object} view.Response[any]
// @Failure 500 {object} view.Response[any]
// @Router /admin/offramp/approve [post]
func (h *handler) Approve(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	result, err := h.controller.ApproveRequest(c.Request.Context(), req.RequestID, req.AdminNote)
	if err != nil {
		h.logger.Error("[Approve][ApproveRequest]", map[string]string{
			"request_id": req.RequestID,
			"error":      err.Error(),
		})
		c.JSON(view.StatusFromError(err), view.CreateResponse[any](nil, err, req, "failed to approve request"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](result, nil, nil, "payout sent"))
}

// TriggerPayout godoc
// @Summary Trigger payout for a request
// @Description Refuses requests already marked as successfully disbursed
// @id triggerPayout
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TriggerPayoutRequest true "Payout"
// @Success 200 {object} view.Response[controller.PayoutResult]
// @Failure 400 {object} view.Response[any]
// @Failure 404 {object} view.Response[any]
// @Failure 500 {object} view.Response[any]
// @Failure 502 {object} view.Response[any]
// @Router /admin/offramp/trigger-payout [post]
func (h *handler) TriggerPayout(c *gin.Context) {
	var req TriggerPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	result, err := h.controller.TriggerPayout(c.Request.Context(), req.RequestID)
	if err != nil {
		h.logger.Error("[TriggerPayout][TriggerPayout]", map[string]string{
			"request_id": req.RequestID,
			"error":      err.Error(),
		})
		status := view.StatusFromError(err)
		if errors.Is(err, consts.ErrPayoutFailed) {
			status = http.StatusBadGateway
		}
		c.JSON(status, view.CreateResponse[any](nil, err, req, "failed to trigger payout"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](result, nil, nil, "payout sent"))
}

// Verify godoc
// @Summary Run the verification sweep
// @Description Confirms pending SOL requests that have a matching transfer to the treasury
// @id verifyOffRamp
// @Tags OffRamp
// @Produce json
// @Success 200 {object} view.Response[VerifyResponse]
// @Failure 500 {object} view.Response[any]
// @Router /offramp/verify [get]
func (h *handler) Verify(c *gin.Context) {
	confirmed, err := h.telemetry.VerifyPendingRequests(c.Request.Context())
	if err != nil {
		h.logger.Error("[Verify][VerifyPendingRequests]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, view.CreateResponse[any](nil, err, nil, "verification failed"))
		return
	}
	if confirmed == nil {
		confirmed = []string{}
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](VerifyResponse{
		Confirmed: confirmed,
		Count:     len(confirmed),
	}, nil, nil, ""))
}
