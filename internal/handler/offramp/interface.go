package offramp

import "github.com/gin-gonic/gin"

type IHandler interface {
	CreateRequest(c *gin.Context)
	GetRequest(c *gin.Context)
	Quote(c *gin.Context)
	ListRequests(c *gin.Context)
	UpdateStatus(c *gin.Context)
	Approve(c *gin.Context)
	TriggerPayout(c *gin.Context)
	Verify(c *gin.Context)
}
