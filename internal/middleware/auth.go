package middleware

import (
	"github.com/kartik0x00/Budget-Formula/internal/auth"
	"github.com/kartik0x00/Budget-Formula/internal/util"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is where AuthMiddleware stores the authenticated identity.
const CurrentUserKey = "currentUser"

// AuthMiddleware 校验 Bearer token，并在 context 里放入当前身份。
// 除了 Authorization 头，还接受 ?token= 查询参数，
// 用于 xlsx/csv 下载这类没法自定义 Header 的场景。
func AuthMiddleware(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			identity auth.Identity
			err      error
		)

		if token := c.Query("token"); token != "" && c.GetHeader("Authorization") == "" {
			identity, err = gate.Check(token)
		} else {
			identity, err = gate.Authenticate(c.GetHeader("Authorization"))
		}
		if err != nil {
			util.Error(c, err)
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, identity)
		c.Next()
	}
}

// CurrentUser returns the identity placed by AuthMiddleware.
func CurrentUser(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}
