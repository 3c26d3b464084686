package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hrishi7/lingocare-studio/internal/logging"
	"github.com/hrishi7/lingocare-studio/internal/mockserver"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	chunkSize := 64
	if v := os.Getenv("MOCK_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			chunkSize = n
		}
	}

	logger, err := logging.New(os.Getenv("STUDIO_LOG_MODE"))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	srv := mockserver.New(mockserver.Options{
		ChunkSize: chunkSize,
		Delay:     150 * time.Millisecond,
		Provider:  "mock",
	}, logger)
	r := srv.SetupRouter()

	logger.Infow("starting mock generation service", "port", port, "chunk_size", chunkSize)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}
