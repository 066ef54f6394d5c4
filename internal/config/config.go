package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	BackendURL     string
	DBDSN          string
	LogFile        string
	RequestTimeout time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	backend := os.Getenv("BACKEND_URL")
	if backend == "" {
		backend = "http://localhost:9090/api"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "bookbound.db" // sqlite file in project root, sessions + drafts only
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./bookbound.log"
	}
	timeout := 15 * time.Second
	if s := os.Getenv("REQUEST_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	cfg := Config{Port: port, BackendURL: backend, DBDSN: dsn, LogFile: logFile, RequestTimeout: timeout}
	log.Printf("[config] PORT=%s BACKEND_URL=%s DB_DSN=%s LOG_FILE=%s TIMEOUT=%s",
		cfg.Port, cfg.BackendURL, cfg.DBDSN, cfg.LogFile, cfg.RequestTimeout)
	return cfg
}
