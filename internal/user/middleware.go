package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName   = "user-id"
	CookieMaxAge = 365 * 24 * 60 * 60
	UserIDKey    = "userID"
)

// EnsureUserCookieMiddleware 确保请求带有一个格式正确的user-id cookie。
// 如果没有或格式不正确，生成一个新的临时ID并设置cookie。
// 无论哪种情况，最终生效的用户ID都会被放入Gin上下文。
func EnsureUserCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := c.Cookie(CookieName)

		if err != nil || !IsValidUUID(userID) {
			if err != nil && err != http.ErrNoCookie {
				fmt.Printf("检测到无效的用户Cookie: %s, err: %v\n", userID, err)
			}
			provisionalUserID, genErr := CreateProvisionalUser()
			if genErr != nil {
				fmt.Printf("创建临时用户ID时发生错误: %v\n", genErr)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "无法分配用户身份"})
				c.Abort()
				return
			}
			c.SetCookie(CookieName, provisionalUserID, CookieMaxAge, "/", "", false, true)
			userID = provisionalUserID
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// LoadUserMiddleware 读取cookie并将其值放入Gin上下文中，不做任何分发。
// 用于只读接口：没有身份的请求会拿到空的userID，由handler自行处理。
func LoadUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Cookie(CookieName)
		if !IsValidUUID(userID) {
			userID = ""
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
