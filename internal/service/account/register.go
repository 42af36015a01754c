package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hatemates/internal/app"
	svcErr "hatemates/internal/errors"
	"hatemates/internal/server"
)

// Registrar ties the account service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the account service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Mount attaches the account endpoints: registration and sign-in are
// public, the profile/preference/dislike writes require a bearer token.
func (r *Registrar) Mount(public, authed *gin.RouterGroup) {
	svc := NewService(r.appCtx)

	public.POST("/auth/register", func(c *gin.Context) {
		var in RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			svcErr.Respond(c, svcErr.InvalidArgument("first name, email and password are required fields"))
			return
		}
		user, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"userId":    user.ID,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		})
	})

	public.POST("/auth/sign-in", func(c *gin.Context) {
		var in struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			svcErr.Respond(c, svcErr.InvalidArgument("email and password are required fields"))
			return
		}
		token, user, err := svc.SignIn(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  gin.H{"userId": user.ID, "email": user.Email},
		})
	})

	authed.POST("/auth/profile-info", func(c *gin.Context) {
		var in ProfileInput
		if err := c.ShouldBindJSON(&in); err != nil {
			svcErr.Respond(c, svcErr.InvalidArgument("birthday, gender and contact are required fields"))
			return
		}
		profile, err := svc.SaveProfileInfo(c.Request.Context(), server.AuthedUserID(c), in)
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, profile)
	})

	authed.POST("/auth/friend-preferences", func(c *gin.Context) {
		var in PreferenceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			svcErr.Respond(c, svcErr.InvalidArgument(
				"city, zip code, latitude, longitude, mile radius, friend gender and friend age are required fields"))
			return
		}
		pref, err := svc.SavePreferences(c.Request.Context(), server.AuthedUserID(c), in)
		if err != nil {
			svcErr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, pref)
	})

	authed.POST("/auth/hates", func(c *gin.Context) {
		var in []DislikeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			svcErr.Respond(c, svcErr.InvalidArgument("a list of category/selection pairs is required"))
			return
		}
		if err := svc.SaveDislikes(c.Request.Context(), server.AuthedUserID(c), in); err != nil {
			svcErr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"saved": len(in)})
	})
}
