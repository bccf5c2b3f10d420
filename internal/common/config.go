package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	OCR    OCRConfig
	Upload UploadConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
}

// OCRConfig holds recognition-engine configuration
type OCRConfig struct {
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm      string // binary name or absolute path; if empty -> "pdftoppm"
	TesseractLang string
	TessdataDir   string
	DPI           int // rasterization DPI for PDFs
	MaxPages      int // 0 = no limit
}

// UploadConfig holds temporary upload persistence configuration
type UploadConfig struct {
	Dir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("LISTEN_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 16<<20),
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "uploads"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
