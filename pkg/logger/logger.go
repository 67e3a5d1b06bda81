// Package logger предоставляет printf-логгер сервиса поверх logrus
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger логгер с методами Info/Warn/Error/Debug/Fatal в printf-стиле
type Logger struct {
	log  *logrus.Logger
	file *os.File
}

// New создает логгер. Если filePath не пустой, пишет одновременно в stdout и в файл.
// level: debug, info, warn, error (по умолчанию info)
func New(filePath, level string) (*Logger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		if level != "" {
			return nil, fmt.Errorf("logger: invalid level %q: %w", level, err)
		}
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	result := &Logger{log: l}

	if filePath == "" {
		l.SetOutput(os.Stdout)
		return result, nil
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: failed to open log file %s: %w", filePath, err)
	}
	l.SetOutput(io.MultiWriter(os.Stdout, file))
	result.file = file

	return result, nil
}

// NewNop создает логгер, который ничего не пишет (для тестов)
func NewNop() *Logger {
	return NewWithWriter(io.Discard)
}

// NewWithWriter создает JSON-логгер уровня debug, пишущий в w
func NewWithWriter(w io.Writer) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(w)
	return &Logger{log: l}
}

// WithField возвращает логгер с дополнительным полем во всех записях
func (l *Logger) WithField(key string, value interface{}) *Entry {
	return &Entry{entry: l.log.WithField(key, value)}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Fatalf(format, v...)
}

// Close закрывает файл лога, если он был открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Entry логгер с привязанными полями (request_id и т.п.)
type Entry struct {
	entry *logrus.Entry
}

func (e *Entry) Info(format string, v ...interface{}) {
	e.entry.Infof(format, v...)
}

func (e *Entry) Warn(format string, v ...interface{}) {
	e.entry.Warnf(format, v...)
}

func (e *Entry) Error(format string, v ...interface{}) {
	e.entry.Errorf(format, v...)
}
