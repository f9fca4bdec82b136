package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/agentstation/floataudit/internal/cmd/output"
)

// FormatWriter writes alerts in different output formats.
type FormatWriter struct {
	writer io.Writer
	format output.Format
	config WriterConfig
}

// WriterConfig configures alert output behavior.
type WriterConfig struct {
	ShowTimestamp bool
	ShowDetails   bool
	UseColor      bool
}

// NewFormatWriter creates a new FormatWriter for the specified format.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{
		writer: w,
		format: format,
		config: WriterConfig{
			ShowDetails: true,
			UseColor:    isTerminal(w),
		},
	}
}

// WithConfig sets the writer configuration.
func (fw *FormatWriter) WithConfig(config WriterConfig) *FormatWriter {
	fw.config = config
	return fw
}

// WriteAlert writes an alert in the configured format.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	switch fw.format {
	case output.FormatJSON:
		return json.NewEncoder(fw.writer).Encode(fw.toAlertData(alert))
	case output.FormatYAML:
		data, err := yaml.Marshal(fw.toAlertData(alert))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(fw.writer, "---\n%s", data)
		return err
	default:
		return fw.writePlain(alert)
	}
}

// alertData represents alert data for structured output.
type alertData struct {
	Level     string   `json:"level" yaml:"level"`
	Message   string   `json:"message" yaml:"message"`
	Details   []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp string   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

func (fw *FormatWriter) toAlertData(alert *Alert) alertData {
	data := alertData{
		Level:   alert.Level.String(),
		Message: alert.Message,
		Details: alert.Details,
	}
	if alert.Err != nil {
		data.Error = alert.Err.Error()
	}
	if fw.config.ShowTimestamp {
		data.Timestamp = alert.Timestamp.Format(time.RFC3339)
	}
	return data
}

func (fw *FormatWriter) writePlain(alert *Alert) error {
	message := alert.String()
	if fw.config.ShowTimestamp {
		message = alert.Timestamp.Format(time.TimeOnly) + " " + message
	}
	if fw.config.UseColor {
		message = alert.Level.Color() + message + ResetColor()
	}

	if _, err := fmt.Fprintln(fw.writer, message); err != nil {
		return err
	}
	if fw.config.ShowDetails {
		for _, detail := range alert.Details {
			if _, err := fmt.Fprintf(fw.writer, "   %s\n", detail); err != nil {
				return err
			}
		}
	}
	return nil
}

// isTerminal checks if the writer is a terminal (for color support).
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
