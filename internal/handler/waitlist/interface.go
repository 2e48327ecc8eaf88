package waitlist

import "github.com/gin-gonic/gin"

type IHandler interface {
	Join(c *gin.Context)
	List(c *gin.Context)
	UpdateStatus(c *gin.Context)
}
