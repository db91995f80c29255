package kinesisdemo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

var (
	ErrStreamNotAvailable = errors.New("stream status is either creating or deleting")
	ErrNoShards           = errors.New("stream has no shards")
	ErrShardNotFound      = errors.New("shard not found in stream")
)

// ListShards pages through DescribeStream and returns every shard in the
// order the service reports them.
func (c *Client) ListShards(ctx context.Context) ([]types.Shard, error) {
	var (
		shards                []types.Shard
		exclusiveStartShardID *string
		first                 = true
	)
	for {
		out, err := c.config.KinesisClient.DescribeStream(ctx, &kinesis.DescribeStreamInput{
			StreamName:            aws.String(c.config.StreamName),
			ExclusiveStartShardId: exclusiveStartShardID,
		})
		if err != nil {
			c.logger.Error("error describing stream", "error", err, "code", apiErrorCode(err))
			return nil, fmt.Errorf("describe stream: %w", err)
		}
		desc := out.StreamDescription
		if desc == nil {
			break
		}
		if first {
			if desc.StreamStatus == types.StreamStatusCreating || desc.StreamStatus == types.StreamStatusDeleting {
				return nil, ErrStreamNotAvailable
			}
			first = false
		}
		shards = append(shards, desc.Shards...)
		if !aws.ToBool(desc.HasMoreShards) || len(shards) == 0 {
			break
		}
		exclusiveStartShardID = shards[len(shards)-1].ShardId
	}
	c.logger.Debug("listed shards", "count", len(shards))
	return shards, nil
}

// selectShard picks the configured shard, or the first one when no shard is configured.
func (c *Client) selectShard(shards []types.Shard) (types.Shard, error) {
	if len(shards) == 0 {
		return types.Shard{}, ErrNoShards
	}
	if c.config.ShardID == "" {
		return shards[0], nil
	}
	for _, shard := range shards {
		if aws.ToString(shard.ShardId) == c.config.ShardID {
			return shard, nil
		}
	}
	return types.Shard{}, fmt.Errorf("%s: %w", c.config.ShardID, ErrShardNotFound)
}
