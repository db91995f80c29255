package kinesisdemo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultIterations = 100
	DefaultBatchSize  = 25
	DefaultInterval   = 5 * time.Second

	// GetRecords rejects limits above this value.
	MaxBatchSize = 10000
)

var (
	ErrInvalidConfiguration = errors.New("invalid kinesisdemo config")
)

// Config contains the settings for a single polling run.
type Config struct {
	// required fields
	StreamName    string
	KinesisClient KinesisAPI

	// optional fields
	ShardID         string
	Checkpointer    Checkpointer
	RecordProcessor RecordProcessor
	Logger          *slog.Logger
	RunID           string
	Iterations      int
	BatchSize       int32
	Interval        time.Duration
	StaticIterator  bool
}

type Option func(*Config)

func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		Logger:     slog.Default(),
		Iterations: DefaultIterations,
		BatchSize:  DefaultBatchSize,
		Interval:   DefaultInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithStreamName(name string) Option {
	return func(c *Config) {
		c.StreamName = name
	}
}

func WithShardID(id string) Option {
	return func(c *Config) {
		c.ShardID = id
	}
}

func WithKinesisClient(client KinesisAPI) Option {
	return func(c *Config) {
		c.KinesisClient = client
	}
}

func WithCheckpointer(cp Checkpointer) Option {
	return func(c *Config) {
		c.Checkpointer = cp
	}
}

func WithRecordProcessor(p RecordProcessor) Option {
	return func(c *Config) {
		c.RecordProcessor = p
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func WithRunID(id string) Option {
	return func(c *Config) {
		c.RunID = id
	}
}

func WithIterations(n int) Option {
	return func(c *Config) {
		c.Iterations = n
	}
}

func WithBatchSize(size int32) Option {
	return func(c *Config) {
		c.BatchSize = size
	}
}

func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Interval = d
	}
}

// WithStaticIterator makes the poller reuse the initial iterator on every
// fetch instead of following NextShardIterator.
func WithStaticIterator(static bool) Option {
	return func(c *Config) {
		c.StaticIterator = static
	}
}

func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream name must be present: %w", ErrInvalidConfiguration)
	}
	if c.KinesisClient == nil {
		return fmt.Errorf("kinesis client must be present: %w", ErrInvalidConfiguration)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be positive: %w", ErrInvalidConfiguration)
	}
	if c.BatchSize < 1 || c.BatchSize > MaxBatchSize {
		return fmt.Errorf("batch size must be between 1 and %d: %w", MaxBatchSize, ErrInvalidConfiguration)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval cannot be negative: %w", ErrInvalidConfiguration)
	}
	return nil
}
