package handler

import (
	"net/http"

	"github.com/kartik0x00/Budget-Formula/internal/auth"
	"github.com/kartik0x00/Budget-Formula/internal/middleware"
	"github.com/kartik0x00/Budget-Formula/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责登录和 token 校验接口
type AuthHandler struct {
	Gate *auth.Gate
}

func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{Gate: gate}
}

type loginReq struct {
	Pin      string `json:"pin"`
	UserName string `json:"userName"`
}

type verifyReq struct {
	Token string `json:"token"`
}

// Login issues a token for the configured identity.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, util.NewValidationError("PIN and username are required"))
		return
	}

	token, err := h.Gate.Login(req.Pin, req.UserName)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"name": req.UserName,
		},
	})
}

// Verify checks a stored token, for client-side session restoration.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		util.Error(c, util.NewValidationError("Token is required"))
		return
	}

	identity, err := h.Gate.Check(req.Token)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"name": identity.UserName,
		},
	})
}

// Me returns the authenticated identity (requires AuthMiddleware).
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, util.NewAuthenticationError(""))
		return
	}

	util.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"name": identity.UserName,
		},
	})
}
