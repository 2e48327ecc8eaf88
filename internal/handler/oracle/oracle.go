package oracle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/framp/framp-backend/internal/oracle"
	"github.com/framp/framp-backend/internal/solrpc"
	"github.com/framp/framp-backend/internal/utils/logger"
	"github.com/framp/framp-backend/internal/view"
)

type handler struct {
	oracle oracle.IOracle
	logger *logger.Logger
}

func New(oracle oracle.IOracle, logger *logger.Logger) IHandler {
	return &handler{
		oracle: oracle,
		logger: logger,
	}
}

// GetWalletBalance godoc
// @Summary Get wallet SOL balance
// @Description Best-effort balance check, cached for a short time
// @id getWalletBalance
// @Tags Oracle
// @Produce json
// @Param address path string true "Base58 wallet address"
// @Success 200 {object} view.Response[oracle.WalletBalance]
// @Failure 400 {object} view.Response[any]
// @Failure 500 {object} view.Response[any]
// @Router /wallets/{address}/balance [get]
func (h *handler) GetWalletBalance(c *gin.Context) {
	address := c.Param("address")
	if !solrpc.IsValidAddress(address) {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, solrpc.ErrInvalidAddress, nil, "invalid wallet address"))
		return
	}

	balance, err := h.oracle.GetWalletBalance(c.Request.Context(), address)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, solrpc.ErrInvalidAddress) {
			status = http.StatusBadRequest
		}
		c.JSON(status, view.CreateResponse[any](nil, err, nil, "can't get wallet balance"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](balance, nil, nil, ""))
}

// GetTreasuryBalance godoc
// @Summary Get treasury SOL balance
// @id getTreasuryBalance
// @Tags Oracle
// @Produce json
// @Security BearerAuth
// @Success 200 {object} view.Response[oracle.WalletBalance]
// @Failure 500 {object} view.Response[any]
// @Router /admin/treasury/balance [get]
func (h *handler) GetTreasuryBalance(c *gin.Context) {
	balance, err := h.oracle.GetTreasuryBalance(c.Request.Context())
	if err != nil {
		h.logger.Error("[GetTreasuryBalance][GetTreasuryBalance]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, view.CreateResponse[any](nil, err, nil, "can't get treasury balance"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](balance, nil, nil, ""))
}
