// Package export writes a user's subscriptions to JSON, YAML or XLSX.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/subtrack/internal/adapters/repo/record"
	"github.com/bnema/subtrack/internal/domain"
	"gopkg.in/yaml.v3"
)

const documentVersion = 1

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatJSON, FormatYAML, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", &domain.ValidationError{Field: "format", Reason: fmt.Sprintf("unsupported export format %q", raw)}
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

type document struct {
	Version       int                   `json:"version" yaml:"version"`
	User          string                `json:"user" yaml:"user"`
	ExportedAt    string                `json:"exportedAt" yaml:"exported_at"`
	Subscriptions []record.Subscription `json:"subscriptions" yaml:"subscriptions"`
}

func newDocument(user domain.UserID, subs domain.Collection, at time.Time) document {
	return document{
		Version:       documentVersion,
		User:          string(user),
		ExportedAt:    at.UTC().Format(time.RFC3339),
		Subscriptions: record.FromDomain(subs),
	}
}

// Write encodes subs for user in the given format.
func Write(w io.Writer, format Format, user domain.UserID, subs domain.Collection, at time.Time) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(newDocument(user, subs, at)); err != nil {
			return fmt.Errorf("encode json export: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(newDocument(user, subs, at)); err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
		return nil
	case FormatXLSX:
		return writeWorkbook(w, subs)
	default:
		return &domain.ValidationError{Field: "format", Reason: fmt.Sprintf("unsupported export format %q", format)}
	}
}

// WriteFile writes the export next to path and renames it into place, so a
// failed export never leaves a truncated file behind.
func WriteFile(ctx context.Context, path string, format Format, user domain.UserID, subs domain.Collection, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".subtrack-export-*")
	if err != nil {
		return fmt.Errorf("create temp export file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := Write(tmp, format, user, subs, at); err != nil {
		return cleanup(tmp, tmpPath, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		return cleanup(tmp, tmpPath, fmt.Errorf("chmod export file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(nil, tmpPath, fmt.Errorf("close export file: %w", err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return cleanup(nil, tmpPath, fmt.Errorf("replace export file: %w", err))
	}

	return nil
}

func cleanup(f *os.File, path string, cause error) error {
	errs := []error{cause}
	if f != nil {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close temp export file: %w", err))
		}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, fmt.Errorf("remove temp export file: %w", err))
	}

	return errors.Join(errs...)
}
