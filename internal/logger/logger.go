package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger writes leveled, category-tagged lines to stdout with colors plus a
// plain copy to an optional log file.
type Logger struct {
	mu   sync.Mutex
	file *os.File

	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	fatalColor *color.Color
}

func NewLogger() *Logger {
	l := &Logger{
		debugColor: color.New(color.FgHiBlack),
		infoColor:  color.New(color.FgGreen),
		warnColor:  color.New(color.FgYellow),
		errorColor: color.New(color.FgRed),
		fatalColor: color.New(color.FgRed, color.Bold),
	}

	if path := os.Getenv("LOG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			l.file = f
		}
	}

	return l
}

func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) write(c *color.Color, level, category, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := time.Now().Format("2006-01-02 15:04:05.000")
	c.Printf("[%s] %-5s [%s] %s\n", ts, level, category, message)

	if l.file != nil {
		fmt.Fprintf(l.file, "[%s] %-5s [%s] %s\n", ts, level, category, message)
	}
}

func (l *Logger) Debug(category, message string) {
	if os.Getenv("LOG_DEBUG") == "" {
		return
	}
	l.write(l.debugColor, "DEBUG", category, message)
}

func (l *Logger) Info(category, message string) {
	l.write(l.infoColor, "INFO", category, message)
}

func (l *Logger) Warn(category, message string) {
	l.write(l.warnColor, "WARN", category, message)
}

func (l *Logger) Error(category, message string) {
	l.write(l.errorColor, "ERROR", category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.write(l.fatalColor, "FATAL", category, message)
	l.Close()
	os.Exit(1)
}

// Domain helpers keep call sites terse and the category vocabulary stable.

func (l *Logger) LogPayment(action, paymentID, message string) {
	l.Info("PAYMENT", fmt.Sprintf("[%s] %s - %s", action, paymentID, message))
}

func (l *Logger) LogDatabase(action, table, message string) {
	l.Info("DATABASE", fmt.Sprintf("[%s] %s - %s", action, table, message))
}

func (l *Logger) LogKafka(action, topic, message string) {
	l.Info("KAFKA", fmt.Sprintf("[%s] %s - %s", action, topic, message))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogProcess(stage, message string) {
	l.Info("PROCESS", fmt.Sprintf("[%s] %s", stage, message))
}

func (l *Logger) LogSecurity(event, message string) {
	l.Warn("SECURITY", fmt.Sprintf("[%s] %s", event, message))
}
