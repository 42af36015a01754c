package match

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hatemates/internal/app"
	svcErr "hatemates/internal/errors"
	"hatemates/internal/matching"
	"hatemates/internal/server"
)

const defaultPageSize = 20

// Registrar ties the match service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the match service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Mount attaches the match endpoints. All of them require a bearer token.
func (r *Registrar) Mount(_, authed *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	// full engine pass: compute candidates, reconcile, return all pairs
	authed.GET("/matches", func(c *gin.Context) {
		results, err := svc.RefreshMatches(c.Request.Context(), server.AuthedUserID(c))
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		if results == nil {
			results = []MatchResult{}
		}
		c.JSON(http.StatusOK, gin.H{"matches": results})
	})

	authed.GET("/matches/accepted", func(c *gin.Context) {
		limit := defaultPageSize
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}
		var token *string
		if raw := c.Query("pageToken"); raw != "" {
			token = &raw
		}

		results, nextToken, err := svc.ListAcceptedMatches(c.Request.Context(), server.AuthedUserID(c), token, limit)
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		resp := gin.H{"matches": results}
		if nextToken != nil {
			resp["nextPageToken"] = *nextToken
		}
		c.JSON(http.StatusOK, resp)
	})

	authed.GET("/matches/count", func(c *gin.Context) {
		count, err := svc.CountAcceptedMatches(c.Request.Context(), server.AuthedUserID(c))
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	})

	authed.PUT("/matches/:otherUserId/status", func(c *gin.Context) {
		otherID, err := strconv.ParseUint(c.Param("otherUserId"), 10, 64)
		if err != nil || otherID == 0 {
			svcErr.Respond(c, svcErr.InvalidArgument("otherUserId must be a positive integer"))
			return
		}

		var body struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			svcErr.Respond(c, svcErr.InvalidArgument("status is required"))
			return
		}

		result, err := svc.UpdatePairStatus(c.Request.Context(),
			server.AuthedUserID(c), otherID, matching.Status(body.Status))
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})
}
