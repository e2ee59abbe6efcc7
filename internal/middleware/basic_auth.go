package middleware

import (
	"crypto/subtle"
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tutorbot-admin/pkg/config"
	appErrors "github.com/noah-isme/tutorbot-admin/pkg/errors"
	"github.com/noah-isme/tutorbot-admin/pkg/response"
)

// BasicAuth protects routes with the single admin credential. A configured bcrypt hash takes
// precedence over the plain password. The authenticated name is stored under gin.AuthUserKey.
func BasicAuth(admin config.AdminConfig, realm string) gin.HandlerFunc {
	if realm == "" {
		realm = "Admin"
	}
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !validCredentials(admin, username, password) {
			c.Header("WWW-Authenticate", challenge)
			response.Error(c, appErrors.ErrInvalidCredentials)
			c.Abort()
			return
		}

		c.Set(gin.AuthUserKey, username)
		c.Next()
	}
}

func validCredentials(admin config.AdminConfig, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(admin.Username)) == 1
	var passOK bool
	if admin.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(admin.Password)) == 1
	}
	return userOK && passOK
}
