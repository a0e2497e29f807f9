package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mockchat/model"
	"mockchat/platform"
	"mockchat/service"
)

// AuthController ...
type AuthController struct{}

var tokenService = new(service.TokenService)

var logger = platform.Logger

// TokenValid resolves the "self" participant from the access token and
// attaches it to the request context.
func (a AuthController) TokenValid(c *gin.Context) {
	self, err := tokenService.ExtractParticipant(c.Request)
	if err != nil {
		//Token either expired or not valid
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
		return
	}
	c.Set("self", *self)
}

// IssueToken mints a dev token for an arbitrary identity. The mock service
// has no user database, so whoever asks is whoever they claim to be.
func (a AuthController) IssueToken(c *gin.Context) {
	logger.Infof("[%s] Handling token request", c.GetString("requestId"))

	var input struct {
		UserID   int64  `json:"user_id" binding:"required"`
		Username string `json:"username" binding:"required"`
		Avatar   string `json:"avatar"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	td, err := tokenService.CreateToken(model.Participant{
		ID:       input.UserID,
		Username: input.Username,
		Avatar:   input.Avatar,
	})
	if err != nil {
		logger.Warnf("[%s] Failed to create token for user %d: %s", c.GetString("requestId"), input.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	logger.Infof("[%s] Issued token for user %d", c.GetString("requestId"), input.UserID)
	c.JSON(http.StatusOK, gin.H{"token": td.AccessToken})
}

// selfFrom returns the participant the auth middleware attached.
func selfFrom(c *gin.Context) model.Participant {
	if v, ok := c.Get("self"); ok {
		if p, ok := v.(model.Participant); ok {
			return p
		}
	}
	return model.Participant{}
}
