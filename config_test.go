package kinesisdemo

import (
	"testing"
	"time"

	"github.com/shoenig/test/must"

	"github.com/binarymatt/kinesisdemo/mocks"
)

func TestValidate_HappyPath(t *testing.T) {
	config := NewConfig(
		WithStreamName("stream"),
		WithKinesisClient(mocks.NewKinesisAPI(t)),
	)

	err := config.Validate()
	must.NoError(t, err)
}

func TestValidate_MissingInfo(t *testing.T) {
	kc := mocks.NewKinesisAPI(t)
	cases := []struct {
		name   string
		config *Config
	}{
		{
			name:   "missing stream",
			config: NewConfig(WithKinesisClient(kc)),
		},
		{
			name:   "missing client",
			config: NewConfig(WithStreamName("stream")),
		},
		{
			name:   "zero iterations",
			config: NewConfig(WithStreamName("stream"), WithKinesisClient(kc), WithIterations(0)),
		},
		{
			name:   "zero batch size",
			config: NewConfig(WithStreamName("stream"), WithKinesisClient(kc), WithBatchSize(0)),
		},
		{
			name:   "batch size over service limit",
			config: NewConfig(WithStreamName("stream"), WithKinesisClient(kc), WithBatchSize(10001)),
		},
		{
			name:   "negative interval",
			config: NewConfig(WithStreamName("stream"), WithKinesisClient(kc), WithInterval(-time.Second)),
		},
	}
	for _, tc := range cases {
		must.True(t, t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			must.ErrorIs(t, err, ErrInvalidConfiguration)
		}))
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	c := NewConfig()
	must.Eq(t, 100, c.Iterations)
	must.Eq(t, int32(25), c.BatchSize)
	must.Eq(t, 5*time.Second, c.Interval)
	must.False(t, c.StaticIterator)
	must.NotNil(t, c.Logger)
}

func TestConfigOptions(t *testing.T) {
	cp := newMemoryCheckpointer()
	c := NewConfig(
		WithStreamName("TEST_KINESIS_STREAM"),
		WithShardID("shardId-000000000001"),
		WithRunID("run"),
		WithIterations(3),
		WithBatchSize(10),
		WithInterval(time.Millisecond),
		WithStaticIterator(true),
		WithCheckpointer(cp),
		WithRecordProcessor(LogMessage),
	)
	must.Eq(t, "TEST_KINESIS_STREAM", c.StreamName)
	must.Eq(t, "shardId-000000000001", c.ShardID)
	must.Eq(t, "run", c.RunID)
	must.Eq(t, 3, c.Iterations)
	must.Eq(t, int32(10), c.BatchSize)
	must.Eq(t, time.Millisecond, c.Interval)
	must.True(t, c.StaticIterator)
	must.NotNil(t, c.Checkpointer)
	must.NotNil(t, c.RecordProcessor)
}
