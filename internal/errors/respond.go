package errors

import "github.com/gin-gonic/gin"

// Respond writes err through Map as the request's JSON error body and aborts
// the handler chain.
func Respond(c *gin.Context, err error) {
	api := Map(err)
	c.AbortWithStatusJSON(api.Status, gin.H{"error": api.Message})
}
