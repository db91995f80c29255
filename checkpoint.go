package kinesisdemo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	StreamNameKey     = "streamName"
	ShardIDKey        = "shardID"
	SequenceNumberKey = "sequenceNumber"
	RunIDKey          = "runID"
	UpdatedAtKey      = "updatedAt"
)

var (
	ErrNotFound = errors.New("checkpoint missing")
	Now         = time.Now
)

// Checkpoint is the last sequence number read from a shard.
type Checkpoint struct {
	// partition key
	StreamName string `dynamodbav:"streamName"`
	// sort key
	ShardID string `dynamodbav:"shardID"`

	SequenceNumber string `dynamodbav:"sequenceNumber"`
	RunID          string `dynamodbav:"runID"`
	UpdatedAt      int64  `dynamodbav:"updatedAt"`
}

func (c *Checkpoint) Updated() time.Time {
	return time.Unix(c.UpdatedAt, 0)
}

type Checkpointer interface {
	Get(ctx context.Context, streamName, shardID string) (*Checkpoint, error)
	Commit(ctx context.Context, checkpoint Checkpoint) error
}

type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// DynamoCheckpointer stores checkpoints in a DynamoDB table keyed by stream name and shard id.
type DynamoCheckpointer struct {
	client    DynamoDBAPI
	tableName string
	logger    *slog.Logger
}

func NewDynamoCheckpointer(client DynamoDBAPI, tableName string, logger *slog.Logger) *DynamoCheckpointer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DynamoCheckpointer{
		client:    client,
		tableName: tableName,
		logger:    logger.With("table", tableName),
	}
}

func (d *DynamoCheckpointer) key(streamName, shardID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		StreamNameKey: &types.AttributeValueMemberS{Value: streamName},
		ShardIDKey:    &types.AttributeValueMemberS{Value: shardID},
	}
}

func (d *DynamoCheckpointer) Get(ctx context.Context, streamName, shardID string) (*Checkpoint, error) {
	d.logger.Debug("fetching checkpoint", "stream", streamName, "shard_id", shardID)
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.tableName),
		Key:            d.key(streamName, shardID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		d.logger.Error("error getting checkpoint", "error", err, "code", apiErrorCode(err))
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	var checkpoint Checkpoint
	if err := attributevalue.UnmarshalMap(out.Item, &checkpoint); err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (d *DynamoCheckpointer) Commit(ctx context.Context, checkpoint Checkpoint) error {
	update := expression.Set(expression.Name(SequenceNumberKey), expression.Value(checkpoint.SequenceNumber)).
		Set(expression.Name(RunIDKey), expression.Value(checkpoint.RunID)).
		Set(expression.Name(UpdatedAtKey), expression.Value(checkpoint.UpdatedAt))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		Build()
	if err != nil {
		return err
	}

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       d.key(checkpoint.StreamName, checkpoint.ShardID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		d.logger.Error("could not commit checkpoint", "error", err, "code", apiErrorCode(err))
		return err
	}
	d.logger.Debug("checkpoint committed", "shard_id", checkpoint.ShardID, "sequence", checkpoint.SequenceNumber)
	return nil
}

// CreateTable provisions the checkpoint table with on-demand billing.
func (d *DynamoCheckpointer) CreateTable(ctx context.Context) error {
	_, err := d.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(d.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String(StreamNameKey),
				AttributeType: types.ScalarAttributeTypeS,
			},
			{
				AttributeName: aws.String(ShardIDKey),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String(StreamNameKey),
				KeyType:       types.KeyTypeHash,
			},
			{
				AttributeName: aws.String(ShardIDKey),
				KeyType:       types.KeyTypeRange,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	if errors.As(err, &inUse) {
		d.logger.Info("checkpoint table already exists")
		return nil
	}
	return err
}

func (c *Client) commit(ctx context.Context, shardID, sequence string) error {
	if c.config.Checkpointer == nil {
		return nil
	}
	err := c.config.Checkpointer.Commit(ctx, Checkpoint{
		StreamName:     c.config.StreamName,
		ShardID:        shardID,
		SequenceNumber: sequence,
		RunID:          c.config.RunID,
		UpdatedAt:      Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("commit checkpoint: %w", err)
	}
	return nil
}
