package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// LoggerService handles application logging. Each day gets its own file named
// after the store, matching the kiosk's on-site log convention.
type LoggerService struct {
	logDir     string
	storeName  string
	logFile    *os.File
	logger     *log.Logger
	currentDay string
}

// NewLoggerService creates a new logger service writing under dataPath/logs
func NewLoggerService(dataPath, storeName string) *LoggerService {
	service := &LoggerService{
		logDir:    filepath.Join(dataPath, "logs"),
		storeName: storeName,
	}
	service.initializeLogger()
	return service
}

func (s *LoggerService) initializeLogger() {
	if err := os.MkdirAll(s.logDir, 0755); err != nil {
		log.Printf("Warning: Could not create logs directory: %v", err)
		s.logDir = "logs"
		os.MkdirAll(s.logDir, 0755)
	}

	if err := s.rotateLogFile(); err != nil {
		log.Printf("Warning: Could not create log file: %v. Logging to stdout only.", err)
		s.logger = log.New(os.Stdout, "", log.LstdFlags)
		return
	}

	multiWriter := io.MultiWriter(os.Stdout, s.logFile)
	s.logger = log.New(multiWriter, "", log.LstdFlags)

	s.LogInfo("Logger initialized", fmt.Sprintf("Log directory: %s", s.logDir))
}

// rotateLogFile creates a new log file for the current day
func (s *LoggerService) rotateLogFile() error {
	today := time.Now().Format("2006-01-02")
	if s.currentDay == today && s.logFile != nil {
		return nil
	}

	if s.logFile != nil {
		s.logFile.Close()
	}

	logFileName := fmt.Sprintf("%s_%s.log", s.storeName, today)
	logFilePath := filepath.Join(s.logDir, logFileName)

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	s.logFile = file
	s.currentDay = today

	return nil
}

// LogInfo logs an informational message
func (s *LoggerService) LogInfo(message string, details ...string) {
	s.checkAndRotate()
	s.logger.Printf("[INFO] %s%s", message, detailSuffix(details))
}

// LogWarning logs a warning message
func (s *LoggerService) LogWarning(message string, details ...string) {
	s.checkAndRotate()
	s.logger.Printf("[WARNING] %s%s", message, detailSuffix(details))
}

// LogError logs an error message
func (s *LoggerService) LogError(message string, err error, details ...string) {
	s.checkAndRotate()
	errorStr := ""
	if err != nil {
		errorStr = fmt.Sprintf(" | Error: %v", err)
	}
	s.logger.Printf("[ERROR] %s%s%s", message, errorStr, detailSuffix(details))
}

// LogFatal logs a fatal error and exits
func (s *LoggerService) LogFatal(message string, err error) {
	s.checkAndRotate()
	errorStr := ""
	if err != nil {
		errorStr = fmt.Sprintf(" | Error: %v", err)
	}
	s.logger.Printf("[FATAL] %s%s", message, errorStr)
	if s.logFile != nil {
		s.logFile.Close()
	}
	os.Exit(1)
}

func detailSuffix(details []string) string {
	if len(details) == 0 {
		return ""
	}
	return " | " + details[0]
}

// checkAndRotate switches to a new day's log file when the date changes
func (s *LoggerService) checkAndRotate() {
	today := time.Now().Format("2006-01-02")
	if s.currentDay != today {
		if err := s.rotateLogFile(); err != nil {
			return
		}
		if s.logFile != nil {
			s.logger.SetOutput(io.MultiWriter(os.Stdout, s.logFile))
		}
	}
}

// Close closes the log file
func (s *LoggerService) Close() {
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// RecoverPanic is a helper to recover from panics in goroutines
func (s *LoggerService) RecoverPanic() {
	if r := recover(); r != nil {
		s.logger.Printf("[PANIC] Recovered from panic: %v", r)
		s.logger.Printf("[PANIC] Stack trace:\n%s", string(debug.Stack()))
	}
}
