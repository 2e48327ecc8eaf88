package oracle

import "github.com/gin-gonic/gin"

type IHandler interface {
	GetWalletBalance(c *gin.Context)
	GetTreasuryBalance(c *gin.Context)
}
