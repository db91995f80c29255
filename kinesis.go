package kinesisdemo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"github.com/aws/smithy-go"
	"github.com/oklog/ulid/v2"
)

var (
	ErrMissingIterator  = errors.New("missing shard iterator")
	ErrPutRecordsFailed = errors.New("records were not written to the stream")
)

type KinesisAPI interface {
	DescribeStream(ctx context.Context, params *kinesis.DescribeStreamInput, optFns ...func(*kinesis.Options)) (*kinesis.DescribeStreamOutput, error)
	GetShardIterator(ctx context.Context, params *kinesis.GetShardIteratorInput, optFns ...func(*kinesis.Options)) (*kinesis.GetShardIteratorOutput, error)
	GetRecords(ctx context.Context, params *kinesis.GetRecordsInput, optFns ...func(*kinesis.Options)) (*kinesis.GetRecordsOutput, error)
	PutRecords(ctx context.Context, params *kinesis.PutRecordsInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordsOutput, error)
}

func (c *Client) getShardIterator(ctx context.Context, shardID string) (*string, error) {
	input := &kinesis.GetShardIteratorInput{
		StreamName:        aws.String(c.config.StreamName),
		ShardId:           aws.String(shardID),
		ShardIteratorType: types.ShardIteratorTypeTrimHorizon,
	}
	if c.config.Checkpointer != nil {
		cp, err := c.config.Checkpointer.Get(ctx, c.config.StreamName, shardID)
		switch {
		case errors.Is(err, ErrNotFound):
			c.logger.Info("no checkpoint found, starting at trim horizon")
		case err != nil:
			return nil, fmt.Errorf("loading checkpoint: %w", err)
		case cp.SequenceNumber != "":
			input.ShardIteratorType = types.ShardIteratorTypeAfterSequenceNumber
			input.StartingSequenceNumber = aws.String(cp.SequenceNumber)
		}
	}
	c.logger.Info("getting shard iterator", "shard_id", shardID, "type", input.ShardIteratorType)
	out, err := c.config.KinesisClient.GetShardIterator(ctx, input)
	if err != nil {
		c.logger.Error("error getting shard iterator", "error", err, "code", apiErrorCode(err))
		return nil, fmt.Errorf("get shard iterator: %w", err)
	}
	if out.ShardIterator == nil {
		return nil, ErrMissingIterator
	}
	return out.ShardIterator, nil
}

func (c *Client) fetchRecords(ctx context.Context, iterator *string) (*kinesis.GetRecordsOutput, error) {
	out, err := c.config.KinesisClient.GetRecords(ctx, &kinesis.GetRecordsInput{
		ShardIterator: iterator,
		Limit:         aws.Int32(c.config.BatchSize),
	})
	if err != nil {
		return nil, fmt.Errorf("get records: %w", err)
	}
	return out, nil
}

// PutMessages writes each message to the stream as a UTF-8 payload under a
// fresh ULID partition key.
func (c *Client) PutMessages(ctx context.Context, messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	entries := make([]types.PutRecordsRequestEntry, len(messages))
	for i, msg := range messages {
		entries[i] = types.PutRecordsRequestEntry{
			PartitionKey: aws.String(ulid.Make().String()),
			Data:         []byte(msg),
		}
	}
	c.logger.Info("adding records to stream", "count", len(entries))
	out, err := c.config.KinesisClient.PutRecords(ctx, &kinesis.PutRecordsInput{
		StreamName: aws.String(c.config.StreamName),
		Records:    entries,
	})
	if err != nil {
		c.logger.Error("error putting records", "error", err, "code", apiErrorCode(err))
		return fmt.Errorf("put records: %w", err)
	}
	if failed := aws.ToInt32(out.FailedRecordCount); failed > 0 {
		for _, r := range out.Records {
			if r.ErrorCode != nil {
				c.logger.Warn("record rejected", "code", *r.ErrorCode, "message", aws.ToString(r.ErrorMessage))
			}
		}
		return fmt.Errorf("%d of %d: %w", failed, len(entries), ErrPutRecordsFailed)
	}
	return nil
}

// apiErrorCode returns the service error code carried by err, if any.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
