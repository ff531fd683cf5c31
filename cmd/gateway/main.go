package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/RiteshJadhav021/connectu-messaging/internal/gateway"
)

// directoryFile is the optional seed for the profile endpoints.
type directoryFile struct {
	Students map[string]gateway.DirectoryEntry `json:"students"`
	Alumni   map[string]gateway.DirectoryEntry `json:"alumni"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	srv := gateway.NewServer(logger)
	defer srv.Close()

	if path := os.Getenv("DIRECTORY_FILE"); path != "" {
		if err := seedDirectory(srv, path); err != nil {
			logger.Error("failed to load directory seed", "path", path, "error", err)
			os.Exit(1)
		}
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	srv.Routes(r)

	addr := ":" + envOr("PORT", "5000")
	logger.Info("gateway listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}

func seedDirectory(srv *gateway.Server, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var dir directoryFile
	if err := json.Unmarshal(raw, &dir); err != nil {
		return err
	}
	for id, e := range dir.Students {
		srv.AddStudent(id, e)
	}
	for id, e := range dir.Alumni {
		srv.AddAlumni(id, e)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
