package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"

	"github.com/deemkeen/letterdesk/db"
	"github.com/deemkeen/letterdesk/util"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// Router builds the HTTP handler for the letter page. When store is not nil
// the member archive API is served from it as well.
func Router(conf *util.AppConfig, letters LetterArchive, store *db.DB) (*gin.Engine, error) {
	log.Printf("Preparing HTTP server on %s:%d", conf.Conf.Host, conf.Conf.HttpPort)

	// Set Gin to use the same log writer as the rest of the application
	gin.DefaultWriter = util.GetLogWriter()
	gin.DefaultErrorWriter = util.GetLogWriter()

	g := gin.Default()
	g.Use(gzip.Gzip(gzip.DefaultCompression))

	limit, burst := conf.Conf.RateLimit, conf.Conf.RateBurst
	if limit <= 0 {
		limit = 10
	}
	if burst <= 0 {
		burst = 20
	}
	globalLimiter := NewRateLimiter(rate.Limit(limit), burst)
	g.Use(RateLimitMiddleware(globalLimiter))

	// Load HTML templates from embedded filesystem
	tmpl, err := template.ParseFS(embeddedTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	g.SetHTMLTemplate(tmpl)

	g.GET("/", func(c *gin.Context) {
		HandleIndex(c, conf)
	})

	// The letter page acts on the member's archive, so it sits behind the
	// configured web accounts.
	letterPages := g.Group("", WebAuthMiddleware(conf))

	letterPages.GET(LetterPagePath, func(c *gin.Context) {
		HandleLetter(c, letters)
	})

	// Max 64KB form body for the delete form
	letterPages.POST(DeletePath, SameOriginMiddleware(), MaxBytesMiddleware(64*1024), func(c *gin.Context) {
		HandleDeleteLetter(c, letters)
	})

	if store != nil {
		log.Println("Serving the demo member archive from sqlite")
		RegisterDemoArchive(g, conf, store)
	}

	return g, nil
}
