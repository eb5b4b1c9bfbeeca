package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stazcp/macroTrackerTelegramBot/internal/chat"
	"github.com/stazcp/macroTrackerTelegramBot/internal/db"
	"github.com/stazcp/macroTrackerTelegramBot/internal/foodlog"
	"github.com/stazcp/macroTrackerTelegramBot/internal/llm"
	"github.com/stazcp/macroTrackerTelegramBot/internal/users"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
		"GROQ_API_KEY",
		"GROQ_MODEL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── SERVICES ─────────────────────────
	userRepo := users.NewPostgresRepository(pgDB)
	userService := users.NewService(userRepo)

	logRepo := foodlog.NewPostgresRepository(pgDB)
	logService := foodlog.NewService(logRepo)

	llmClient := llm.NewGroqClient()

	chatService := chat.NewService(llmClient, userService, logService)
	chatService.Start()
	defer chatService.Stop()

	chatHandler := chat.NewHandler(chatService)

	// ───────────────────────── ROUTES ─────────────────────────
	r.POST("/chat", chatHandler.HandleChat)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	addr := ":8000"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		log.Printf("🚀 Macro tracker API running at http://localhost%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("SHUTDOWN_ERROR err=%v", err)
	}
}
