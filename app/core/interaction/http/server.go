package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"zoya/app/core/executor"
	"zoya/app/core/gemini"
	"zoya/app/core/hub"
	"zoya/app/core/storage"
	"zoya/app/pkg/logger"
)

// Assistant covers the standalone email endpoints. Optional; when absent
// the handlers serve the deterministic fallbacks.
type Assistant interface {
	SummarizeEmails(ctx context.Context, emails []gemini.EmailInput, language string) (string, error)
	GenerateEmail(ctx context.Context, subject, emailContext, language string) (string, error)
}

// Server owns the REST API and the WebSocket endpoint.
type Server struct {
	host string
	port int

	store     storage.Storage
	exec      *executor.Executor
	hub       *hub.Hub
	assistant Assistant

	// classifierUp feeds the health endpoint; nil means no provider
	// configured at all.
	classifierUp func() bool

	server          *http.Server
	shutdownTimeout time.Duration
}

func NewServer(host string, port int, store storage.Storage, exec *executor.Executor, eventHub *hub.Hub, assistant Assistant, classifierUp func() bool) *Server {
	return &Server{
		host:            host,
		port:            port,
		store:           store,
		exec:            exec,
		hub:             eventHub,
		assistant:       assistant,
		classifierUp:    classifierUp,
		shutdownTimeout: 5 * time.Second,
	}
}

func (s *Server) SetShutdownTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	s.shutdownTimeout = timeout
}

// Start serves until ctx is canceled, then drains within the shutdown
// timeout. Blocks for the lifetime of the server.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.host, s.port),
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown error: %v", err)
		}
		s.hub.Close()
	}()

	logger.Info("HTTP listening on %s:%d", s.host, s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	engine.GET("/ws", s.handleWebSocket)

	api := engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/dashboard", s.handleDashboard)

		api.GET("/emails", s.handleListEmails)
		api.GET("/emails/unread", s.handleUnreadEmails)
		api.POST("/emails", s.handleCreateEmail)
		api.PATCH("/emails/:id/read", s.handleMarkEmailRead)
		api.POST("/emails/summarize", s.handleSummarizeEmails)
		api.POST("/emails/generate", s.handleGenerateEmail)

		api.GET("/calendar/events", s.handleListEvents)
		api.GET("/calendar/today", s.handleTodayEvents)
		api.POST("/calendar/events", s.handleCreateEvent)
		api.DELETE("/calendar/events/:id", s.handleDeleteEvent)

		api.GET("/tasks", s.handleListTasks)
		api.GET("/tasks/pending", s.handlePendingTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.PATCH("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)

		api.GET("/reminders", s.handleListReminders)
		api.GET("/reminders/active", s.handleActiveReminders)
		api.POST("/reminders", s.handleCreateReminder)
		api.PATCH("/reminders/:id/deactivate", s.handleDeactivateReminder)

		api.GET("/commands/history", s.handleCommandHistory)
		api.DELETE("/commands/history", s.handleClearHistory)
		api.POST("/commands/process", s.handleProcessCommand)
	}

	return engine
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed: %v", err)
		return
	}
	s.hub.Add(conn)

	// Reads are only used to detect the peer going away.
	go func() {
		defer s.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleHealth(c *gin.Context) {
	classifier := "fallback-only"
	if s.classifierUp != nil {
		classifier = "degraded"
		if s.classifierUp() {
			classifier = "ok"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"classifier": classifier,
		"observers":  s.hub.Count(),
	})
}

type nextMeeting struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

func (s *Server) handleDashboard(c *gin.Context) {
	var (
		todayEvents  []storage.CalendarEvent
		unreadEmails []storage.Email
		pendingTasks []storage.Task
		history      []storage.CommandRecord
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		todayEvents, err = s.store.TodayEvents(ctx)
		return err
	})
	g.Go(func() (err error) {
		unreadEmails, err = s.store.UnreadEmails(ctx)
		return err
	})
	g.Go(func() (err error) {
		pendingTasks, err = s.store.PendingTasks(ctx)
		return err
	})
	g.Go(func() (err error) {
		history, err = s.store.CommandHistory(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Dashboard reads failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch dashboard data"})
		return
	}

	var next *nextMeeting
	now := time.Now()
	for _, event := range todayEvents {
		if event.StartTime.After(now) {
			next = &nextMeeting{
				Title: event.Title,
				Time:  fmt.Sprintf("%s - %s", event.StartTime.Format("03:04 PM"), event.EndTime.Format("03:04 PM")),
			}
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"todayMeetings":  len(todayEvents),
		"unreadEmails":   len(unreadEmails),
		"pendingTasks":   len(pendingTasks),
		"nextMeeting":    next,
		"upcomingEvents": head(todayEvents, 5),
		"recentEmails":   head(unreadEmails, 5),
		"recentTasks":    head(pendingTasks, 5),
		"commandHistory": head(history, 10),
	})
}

func head[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
