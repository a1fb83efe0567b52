package repository

import (
	"errors"
	"fmt"
	"strings"

	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// newLogger returns the logger every repository uses.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// mapStoreError translates gorm/sqlite failures into the engine's error
// kinds so callers can test with errors.Is. The original cause stays in the
// message.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"), strings.Contains(msg, "no such column"):
		return fmt.Errorf("%w: %v", roster.ErrSchemaMissing, err)
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", roster.ErrConstraintViolation, err)
	case errors.Is(err, gorm.ErrInvalidDB), strings.Contains(msg, "database is locked"), strings.Contains(msg, "unable to open database"):
		return fmt.Errorf("%w: %v", roster.ErrStoreUnavailable, err)
	}
	return err
}
