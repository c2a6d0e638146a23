package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

// ErrDocumentNotFound is returned when the backing store holds no document yet.
var ErrDocumentNotFound = errors.New("app config document not found")

// UpdateFunc receives the current document and returns the document to persist.
type UpdateFunc func(doc []byte) ([]byte, error)

// AppConfigService defines the interface for application configuration management.
// The document is handled as raw JSON so that settings this service does not know
// about survive a save untouched.
type AppConfigService interface {
	LoadAppConfig(ctx context.Context) ([]byte, error)
	SaveAppConfig(ctx context.Context, doc []byte) error
	// UpdateAppConfig performs a read-modify-write that no other UpdateAppConfig
	// call on the same store can interleave with.
	UpdateAppConfig(ctx context.Context, fn UpdateFunc) error
}

// appConfigService is the file-backed implementation of AppConfigService.
type appConfigService struct {
	configPath string
	logger     *zap.Logger
	mu         sync.Mutex
}

// NewAppConfigService creates a new instance of appConfigService.
func NewAppConfigService(configPath string, logger *zap.Logger) AppConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &appConfigService{configPath: configPath, logger: logger}
}

// LoadAppConfig loads the application configuration from the configured JSON file.
func (s *appConfigService) LoadAppConfig(_ context.Context) ([]byte, error) {
	return s.load()
}

func (s *appConfigService) load() ([]byte, error) {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, absPath)
		}
		return nil, fmt.Errorf("failed to read app config file %s: %w", absPath, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("app config file %s is not valid JSON", absPath)
	}

	s.logger.Debug("app config loaded", zap.String("path", absPath), zap.Int("bytes", len(data)))
	return data, nil
}

// SaveAppConfig saves the application configuration to the configured JSON file.
func (s *appConfigService) SaveAppConfig(_ context.Context, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// UpdateAppConfig loads, transforms and saves the document while holding the store lock.
func (s *appConfigService) UpdateAppConfig(_ context.Context, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	return s.save(next)
}

// save writes to a sibling temp file and renames it over the target so readers
// never observe a half-written document.
func (s *appConfigService) save(doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return errors.New("refusing to save invalid JSON app config")
	}

	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", absPath, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(pretty.Pretty(doc)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write app config to file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, absPath); err != nil {
		return fmt.Errorf("failed to replace app config file %s: %w", absPath, err)
	}

	s.logger.Debug("app config saved", zap.String("path", absPath))
	return nil
}
