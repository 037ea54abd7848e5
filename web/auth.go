package web

import (
	"log"
	"net/http"
	"net/url"

	"github.com/deemkeen/letterdesk/util"
	"github.com/gin-gonic/gin"
)

// WebAuthMiddleware asks for one of the configured web accounts. With no
// accounts configured every request passes, like an empty authorized keys
// list on the ssh side.
func WebAuthMiddleware(conf *util.AppConfig) gin.HandlerFunc {
	if len(conf.Conf.WebAccounts) == 0 {
		log.Println("No web accounts configured, the letter page is open to anyone who can reach it")
		return func(c *gin.Context) { c.Next() }
	}
	return gin.BasicAuthForRealm(gin.Accounts(conf.Conf.WebAccounts), util.Name)
}

// SameOriginMiddleware rejects state changing requests sent from another
// site. Origin is checked first, Referer when the browser left Origin out.
// Requests carrying neither come from non-browser clients and pass.
func SameOriginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		source := c.GetHeader("Origin")
		if source == "" {
			source = c.Request.Referer()
		}
		if source == "" {
			c.Next()
			return
		}

		u, err := url.Parse(source)
		if err != nil || u.Host == "" || u.Host != c.Request.Host {
			log.Printf("Rejected cross-origin %s %s from %q", c.Request.Method, c.Request.URL.Path, source)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
