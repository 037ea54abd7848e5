package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"
	"github.com/deemkeen/letterdesk/archive"
	"github.com/deemkeen/letterdesk/db"
	"github.com/deemkeen/letterdesk/middleware"
	"github.com/deemkeen/letterdesk/util"
	"github.com/deemkeen/letterdesk/web"
)

// App represents the main application with all its servers and dependencies
type App struct {
	config     *util.AppConfig
	archive    *archive.Client
	store      *db.DB
	sshServer  *ssh.Server
	httpServer *http.Server
	done       chan os.Signal
}

// New creates a new App instance with the given configuration
func New(conf *util.AppConfig) (*App, error) {
	if conf.Conf.ArchiveBaseURL == "" {
		return nil, fmt.Errorf("archiveBaseUrl is not configured")
	}
	return &App{
		config:  conf,
		archive: archive.NewClientFromConfig(conf),
		done:    make(chan os.Signal, 1),
	}, nil
}

// Initialize opens the demo archive if enabled and sets up both servers
func (a *App) Initialize() error {
	if a.config.Conf.WithDemoArchive {
		log.Println("Opening demo archive...")
		a.store = db.GetDB()
		ids, err := a.store.SeedDemoLetters(time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed demo archive: %w", err)
		}
		for _, id := range ids {
			log.Printf("Demo letter available: %s", id)
		}
	}

	// Initialize SSH server
	sshKeyPath := util.ResolveFilePathWithSubdir(".ssh", util.Name+"hostkey")
	log.Printf("Using SSH host key at: %s", sshKeyPath)

	sshServer, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf("%s:%d", a.config.Conf.Host, a.config.Conf.SshPort)),
		wish.WithHostKeyPath(sshKeyPath),
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithMiddleware(
			middleware.MainTui(a.archive),
			middleware.AuthMiddleware(a.config),
			logging.MiddlewareWithLogger(log.Default()),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}
	a.sshServer = sshServer

	// Initialize HTTP router and server
	router, err := web.Router(a.config, a.archive, a.store)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP router: %w", err)
	}

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Conf.Host, a.config.Conf.HttpPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Start starts all servers and blocks until a shutdown signal is received
func (a *App) Start() error {
	// Setup signal handling
	signal.Notify(a.done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Start SSH server
	log.Printf("Starting SSH server on %s:%d", a.config.Conf.Host, a.config.Conf.SshPort)
	go func() {
		if err := a.sshServer.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
			log.Fatalf("SSH server error: %v", err)
		}
	}()

	// Start HTTP server
	log.Printf("Starting HTTP server on %s:%d", a.config.Conf.Host, a.config.Conf.HttpPort)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-a.done
	log.Println("Shutdown signal received")

	return a.Shutdown()
}

// Shutdown gracefully stops all servers with a 30 second timeout
func (a *App) Shutdown() error {
	log.Println("Initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var shutdownErr error

	// Shutdown HTTP server first (stop accepting new requests)
	log.Println("Stopping HTTP server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		shutdownErr = err
	} else {
		log.Println("HTTP server stopped gracefully")
	}

	// Shutdown SSH server
	log.Println("Stopping SSH server...")
	if err := a.sshServer.Shutdown(ctx); err != nil {
		log.Printf("SSH server shutdown error: %v", err)
		if shutdownErr == nil {
			shutdownErr = err
		}
	} else {
		log.Println("SSH server stopped gracefully")
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("Demo archive close error: %v", err)
		}
	}

	log.Println("All servers stopped")
	return shutdownErr
}
