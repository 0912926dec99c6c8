package config

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/1broseidon/adjacent/internal/adjacent"
)

// FileProvider serves the selector's settings straight from the config file,
// reading it again on every call. A file that fails to load or validate
// leaves the last good config in effect.
type FileProvider struct {
	path   string
	logger zerolog.Logger

	mu         sync.Mutex
	last       *Config
	lastErr    string
	lastPolicy string
}

// NewFileProvider returns a provider for path. initial is served until the
// file loads successfully; nil means defaults.
func NewFileProvider(path string, initial *Config, logger zerolog.Logger) *FileProvider {
	if initial == nil {
		initial = DefaultConfig()
	}
	return &FileProvider{
		path:   path,
		last:   initial,
		logger: logger.With().Str("component", "config").Logger(),
	}
}

// Path returns the watched config file.
func (p *FileProvider) Path() string {
	return p.path
}

// Config loads the file and returns the effective configuration.
func (p *FileProvider) Config() *Config {
	res, err := LoadFromPath(p.path)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		// Log each distinct failure once rather than on every keypress.
		if msg := err.Error(); msg != p.lastErr {
			p.lastErr = msg
			p.logger.Warn().Err(err).Str("path", p.path).Msg("config reload failed, keeping previous settings")
		}
		return p.last
	}
	p.lastErr = ""
	p.last = res.Config
	return res.Config
}

// SelectionConfig implements adjacent.ConfigProvider.
func (p *FileProvider) SelectionConfig() adjacent.SelectionConfig {
	cfg := p.Config()

	p.mu.Lock()
	if cfg.SelectionPolicy != p.lastPolicy {
		p.lastPolicy = cfg.SelectionPolicy
		if _, ok := adjacent.ParseSelectionPolicy(cfg.SelectionPolicy); !ok {
			p.logger.Warn().Str("selection_policy", cfg.SelectionPolicy).Msg("unknown selection policy, using closest")
		}
	}
	p.mu.Unlock()

	return cfg.SelectionConfig()
}
