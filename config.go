package fibers

import (
	"context"
	"fmt"
	"runtime"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"

	"github.com/gofibers/fibers/runtime/scheduler"
)

// Config is a serialisable representation of the global executor
// configuration. It can be populated from JSON, YAML, environment-specific
// files, etc. The zero value is useful – missing fields inherit their
// defaults.
type Config struct {
	// Workers is the number of worker goroutines; defaults to the host
	// parallelism.
	Workers int `json:"workers" yaml:"workers"`

	// QueueBuffer is the run queue capacity hint.
	QueueBuffer int `json:"queueBuffer" yaml:"queueBuffer"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	if c.QueueBuffer < 0 {
		return fmt.Errorf("queueBuffer must be >= 0")
	}
	return nil
}

// LoadConfig reads a YAML configuration from any URL supported by the
// virtual file system (file, embed, mem, cloud storage, ...); options carry
// scheme-specific settings such as an embedded file system.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// options translates the configuration into executor options; zero fields
// are left to the executor defaults.
func (c *Config) options() []scheduler.Option {
	var options []scheduler.Option
	if c == nil {
		return options
	}
	if c.Workers > 0 {
		options = append(options, scheduler.WithWorkerCount(c.Workers))
	}
	if c.QueueBuffer > 0 {
		options = append(options, scheduler.WithQueueBuffer(c.QueueBuffer))
	}
	return options
}
