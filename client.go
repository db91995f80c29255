package kinesisdemo

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"github.com/oklog/ulid/v2"
)

type API interface {
	Init(ctx context.Context) error
	Consume(ctx context.Context) (*Task, error)
	Poll(ctx context.Context) (*Summary, error)
	ListShards(ctx context.Context) ([]types.Shard, error)
	PutMessages(ctx context.Context, messages []string) error
	CurrentShard() *types.Shard
}

var _ API = (*Client)(nil)

type Client struct {
	config   *Config
	logger   *slog.Logger
	shard    *types.Shard
	iterator *string
}

func NewClient(config *Config) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.RunID == "" {
		config.RunID = ulid.Make().String()
	}
	return &Client{
		config: config,
		logger: config.Logger.With("stream", config.StreamName, "run_id", config.RunID),
	}
}

// Init validates the configuration, picks a shard and positions an iterator on it.
// Any error here means nothing will be polled.
func (c *Client) Init(ctx context.Context) error {
	c.logger.Info("initializing kinesisdemo client")

	if err := c.config.Validate(); err != nil {
		return err
	}

	shards, err := c.ListShards(ctx)
	if err != nil {
		return err
	}
	shard, err := c.selectShard(shards)
	if err != nil {
		c.logger.Error("could not select shard", "error", err, "shard_count", len(shards))
		return err
	}
	shardID := aws.ToString(shard.ShardId)

	iterator, err := c.getShardIterator(ctx, shardID)
	if err != nil {
		return err
	}
	c.shard = &shard
	c.iterator = iterator
	c.logger = c.logger.With("shard_id", shardID)
	c.logger.Info("shard selected", "shard_count", len(shards))
	return nil
}

// Consume initializes the client and starts polling in the background. It
// returns as soon as the iterator is in place.
func (c *Client) Consume(ctx context.Context) (*Task, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return startTask(ctx, c.Poll), nil
}

func (c *Client) CurrentShard() *types.Shard {
	return c.shard
}

func (c *Client) RunID() string {
	return c.config.RunID
}
