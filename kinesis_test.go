package kinesisdemo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"github.com/aws/smithy-go"
	"github.com/shoenig/test/must"
	"github.com/stretchr/testify/mock"
)

func TestGetShardIterator(t *testing.T) {
	ctx := context.Background()

	must.True(t, t.Run("trim horizon", func(t *testing.T) {
		cfg, kc := testConfigWithMocks(t)
		kc.On("GetShardIterator", ctx, &kinesis.GetShardIteratorInput{
			StreamName:        aws.String("stream"),
			ShardId:           aws.String("shardID"),
			ShardIteratorType: types.ShardIteratorTypeTrimHorizon,
		}).Return(&kinesis.GetShardIteratorOutput{
			ShardIterator: aws.String("test"),
		}, nil).Once()
		iterator, err := NewClient(cfg).getShardIterator(ctx, "shardID")
		must.NoError(t, err)
		must.Eq(t, "test", *iterator)
	}))
	must.True(t, t.Run("after checkpoint", func(t *testing.T) {
		cp := newMemoryCheckpointer()
		cp.checkpoints["stream/shardID"] = Checkpoint{StreamName: "stream", ShardID: "shardID", SequenceNumber: "last"}
		cfg, kc := testConfigWithMocks(t, WithCheckpointer(cp))
		kc.On("GetShardIterator", ctx, &kinesis.GetShardIteratorInput{
			StreamName:             aws.String("stream"),
			ShardId:                aws.String("shardID"),
			ShardIteratorType:      types.ShardIteratorTypeAfterSequenceNumber,
			StartingSequenceNumber: aws.String("last"),
		}).Return(&kinesis.GetShardIteratorOutput{
			ShardIterator: aws.String("test"),
		}, nil).Once()
		iterator, err := NewClient(cfg).getShardIterator(ctx, "shardID")
		must.NoError(t, err)
		must.Eq(t, "test", *iterator)
	}))
	must.True(t, t.Run("no checkpoint yet", func(t *testing.T) {
		cfg, kc := testConfigWithMocks(t, WithCheckpointer(newMemoryCheckpointer()))
		kc.On("GetShardIterator", ctx, &kinesis.GetShardIteratorInput{
			StreamName:        aws.String("stream"),
			ShardId:           aws.String("shardID"),
			ShardIteratorType: types.ShardIteratorTypeTrimHorizon,
		}).Return(&kinesis.GetShardIteratorOutput{
			ShardIterator: aws.String("test"),
		}, nil).Once()
		iterator, err := NewClient(cfg).getShardIterator(ctx, "shardID")
		must.NoError(t, err)
		must.Eq(t, "test", *iterator)
	}))
	must.True(t, t.Run("checkpoint error", func(t *testing.T) {
		cp := newMemoryCheckpointer()
		cp.getErr = errors.New("dynamo down")
		cfg, _ := testConfigWithMocks(t, WithCheckpointer(cp))
		iterator, err := NewClient(cfg).getShardIterator(ctx, "shardID")
		must.Nil(t, iterator)
		must.ErrorIs(t, err, cp.getErr)
	}))
	must.True(t, t.Run("kinesis error", func(t *testing.T) {
		cfg, kc := testConfigWithMocks(t)
		kinesisErr := errors.New("oops")
		kc.On("GetShardIterator", ctx, mock.Anything).Return(nil, kinesisErr).Once()
		iterator, err := NewClient(cfg).getShardIterator(ctx, "shardID")
		must.Nil(t, iterator)
		must.ErrorIs(t, err, kinesisErr)
	}))
	must.True(t, t.Run("missing iterator", func(t *testing.T) {
		cfg, kc := testConfigWithMocks(t)
		kc.On("GetShardIterator", ctx, mock.Anything).Return(&kinesis.GetShardIteratorOutput{}, nil).Once()
		iterator, err := NewClient(cfg).getShardIterator(ctx, "shardID")
		must.Nil(t, iterator)
		must.ErrorIs(t, err, ErrMissingIterator)
	}))
}

func TestPutMessages(t *testing.T) {
	ctx := context.Background()
	cfg, kc := testConfigWithMocks(t)
	kc.On("PutRecords", ctx, mock.MatchedBy(func(in *kinesis.PutRecordsInput) bool {
		if aws.ToString(in.StreamName) != "stream" || len(in.Records) != 2 {
			return false
		}
		return string(in.Records[0].Data) == "one" &&
			string(in.Records[1].Data) == "two" &&
			len(aws.ToString(in.Records[0].PartitionKey)) == 26 &&
			aws.ToString(in.Records[0].PartitionKey) != aws.ToString(in.Records[1].PartitionKey)
	})).Return(&kinesis.PutRecordsOutput{FailedRecordCount: aws.Int32(0)}, nil).Once()

	err := NewClient(cfg).PutMessages(ctx, []string{"one", "two"})
	must.NoError(t, err)
}

func TestPutMessages_Empty(t *testing.T) {
	cfg, _ := testConfigWithMocks(t)
	err := NewClient(cfg).PutMessages(context.Background(), nil)
	must.NoError(t, err)
}

func TestPutMessages_PartialFailure(t *testing.T) {
	ctx := context.Background()
	cfg, kc := testConfigWithMocks(t)
	kc.On("PutRecords", ctx, mock.Anything).Return(&kinesis.PutRecordsOutput{
		FailedRecordCount: aws.Int32(1),
		Records: []types.PutRecordsResultEntry{
			{SequenceNumber: aws.String("1"), ShardId: aws.String("shard-0")},
			{ErrorCode: aws.String("ProvisionedThroughputExceededException"), ErrorMessage: aws.String("slow down")},
		},
	}, nil).Once()

	err := NewClient(cfg).PutMessages(ctx, []string{"one", "two"})
	must.ErrorIs(t, err, ErrPutRecordsFailed)
	must.StrContains(t, err.Error(), "1 of 2")
}

func TestPutMessages_Error(t *testing.T) {
	ctx := context.Background()
	cfg, kc := testConfigWithMocks(t)
	oops := errors.New("oops")
	kc.On("PutRecords", ctx, mock.Anything).Return(nil, oops).Once()

	err := NewClient(cfg).PutMessages(ctx, []string{"one"})
	must.ErrorIs(t, err, oops)
}

func TestAPIErrorCode(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "ExpiredIteratorException", Message: "expired"}
	must.Eq(t, "ExpiredIteratorException", apiErrorCode(fmt.Errorf("get records: %w", apiErr)))
	must.Eq(t, "", apiErrorCode(errors.New("plain")))
}
