package alerts

import (
	"fmt"
	"time"
)

// Alert represents a status notification shown to the operator.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer handles alert output to different formats and destinations.
type Writer interface {
	WriteAlert(alert *Alert) error
}
