package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	APIBase  string
	StateDB  string
	MediaDir string
	LogFile  string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	api := os.Getenv("API_BASE_URL")
	if api == "" {
		api = "http://localhost:4000/api"
	}
	stateDB := os.Getenv("STATE_DB")
	if stateDB == "" {
		stateDB = "hacienda-state.db" // sqlite file in project root
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./hacienda.log"
	}

	cfg := Config{Port: port, APIBase: api, StateDB: stateDB, MediaDir: media, LogFile: logFile}
	log.Printf("[config] PORT=%s API_BASE_URL=%s STATE_DB=%s MEDIA_DIR=%s LOG_FILE=%s",
		cfg.Port, cfg.APIBase, cfg.StateDB, cfg.MediaDir, cfg.LogFile)
	return cfg
}
