package main

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"

	"github.com/binarymatt/kinesisdemo"
)

func processor(ctx context.Context, msg *kinesisdemo.Message) error {
	logger := kinesisdemo.LoggerFromContext(ctx)
	logger.Info("processing message", "partition_key", msg.PartitionKey, "text", msg.Text)
	return nil
}

func main() {
	ctx := context.Background()
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		panic(err)
	}
	cfg := kinesisdemo.NewConfig(
		kinesisdemo.WithStreamName("TEST_KINESIS_STREAM"),
		kinesisdemo.WithKinesisClient(kinesis.NewFromConfig(awsCfg)),
		kinesisdemo.WithRecordProcessor(processor),
		kinesisdemo.WithIterations(10),
		kinesisdemo.WithInterval(time.Second),
	)
	client := kinesisdemo.NewClient(cfg)
	if err := client.Init(ctx); err != nil {
		panic(err)
	}
	if _, err := client.Poll(ctx); err != nil {
		panic(err)
	}
}
