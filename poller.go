package kinesisdemo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type RecordProcessor = func(context.Context, *Message) error

// Summary describes a finished poll.
type Summary struct {
	Iterations   int
	Records      int
	Decoded      int
	Replaced     int
	LastSequence string
	ShardClosed  bool
}

// LogMessage is the default RecordProcessor. It logs the decoded payload with
// the logger found in ctx.
func LogMessage(ctx context.Context, msg *Message) error {
	LoggerFromContext(ctx).Info("consumed message", "message", msg.Text, "sequence", msg.SequenceNumber)
	return nil
}

// Poll reads the selected shard Iterations times, sleeping Interval between
// fetches. Init must have been called first.
func (c *Client) Poll(ctx context.Context) (*Summary, error) {
	if c.shard == nil || c.iterator == nil {
		return nil, ErrMissingIterator
	}
	shardID := aws.ToString(c.shard.ShardId)
	iterator := c.iterator
	processor := c.config.RecordProcessor
	if processor == nil {
		processor = LogMessage
	}
	cx := ClientWithContext(LoggerWithContext(ctx, c.logger), c)
	summary := &Summary{}

	c.logger.Info("starting poll", "iterations", c.config.Iterations, "batch_size", c.config.BatchSize, "interval", c.config.Interval)
	for i := 0; i < c.config.Iterations; i++ {
		if i > 0 {
			if err := sleep(ctx, c.config.Interval); err != nil {
				c.logger.Warn("poll cancelled", "iteration", i)
				return summary, err
			}
		}
		c.logger.Debug("fetching records", "iteration", i)
		out, err := c.fetchRecords(ctx, iterator)
		if err != nil {
			c.logger.Error("error fetching records", "error", err, "code", apiErrorCode(err), "iteration", i)
			return summary, err
		}
		summary.Iterations++
		summary.Records += len(out.Records)

		for _, r := range out.Records {
			msg := decodeRecord(shardID, r)
			if msg.Replaced {
				c.logger.Warn("record data is not valid utf-8, invalid bytes replaced", "sequence", msg.SequenceNumber)
				summary.Replaced++
			}
			if err := processor(cx, msg); err != nil {
				c.logger.Error("error processing record", "error", err, "sequence", msg.SequenceNumber)
				return summary, err
			}
			summary.Decoded++
		}

		if n := len(out.Records); n > 0 {
			summary.LastSequence = aws.ToString(out.Records[n-1].SequenceNumber)
			if err := c.commit(ctx, shardID, summary.LastSequence); err != nil {
				return summary, err
			}
		}

		if c.config.StaticIterator {
			continue
		}
		if out.NextShardIterator == nil {
			c.logger.Warn("shard is closed", "iteration", i)
			summary.ShardClosed = true
			break
		}
		iterator = out.NextShardIterator
	}
	c.logger.Info("poll finished", "iterations", summary.Iterations, "records", summary.Records, "replaced", summary.Replaced)
	return summary, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
