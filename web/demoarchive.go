package web

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/deemkeen/letterdesk/archive"
	"github.com/deemkeen/letterdesk/db"
	"github.com/deemkeen/letterdesk/util"
	"github.com/gin-gonic/gin"
)

// RegisterDemoArchive serves GET and DELETE /member/my/archive/question/:letterId
// from the sqlite store, so the page runs without the real member backend.
func RegisterDemoArchive(g *gin.Engine, conf *util.AppConfig, store *db.DB) {
	group := g.Group(strings.TrimSuffix(archive.QuestionPath, "/"), requireToken(conf.Conf.ArchiveToken))

	group.GET("/:letterId", func(c *gin.Context) {
		letterId := c.Param("letterId")
		if ok, reason := util.IsValidLetterId(letterId); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": reason})
			return
		}

		letter, err := store.ReadLetterById(letterId)
		if errors.Is(err, db.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Letter not found"})
			return
		}
		if err != nil {
			log.Printf("Demo archive: failed to read letter %s: %v", letterId, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read letter"})
			return
		}
		c.JSON(http.StatusOK, archive.FromLetter(*letter))
	})

	group.DELETE("/:letterId", func(c *gin.Context) {
		letterId := c.Param("letterId")
		if ok, reason := util.IsValidLetterId(letterId); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": reason})
			return
		}

		err := store.DeleteLetterById(letterId)
		if errors.Is(err, db.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Letter not found"})
			return
		}
		if err != nil {
			log.Printf("Demo archive: failed to delete letter %s: %v", letterId, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete letter"})
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func requireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
