package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/limaJavier/distributing/internal/solver"
	"github.com/limaJavier/distributing/internal/web"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(); err != nil {
		logger.Warnf("no .env file loaded: %v", err)
	}
	if level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	solverName := getenv("SOLVER", "cpsat")
	if _, err := solver.New(solverName); err != nil {
		logger.Fatalf("cannot start server: %v", err)
	}

	port := getenv("PORT", "8080")
	server := web.NewServer(logger, solverName)
	httpServer := web.NewHTTPServer(":"+port, server)

	logger.Infof("serving course distribution on port %v with default engine %v", port, solverName)
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
