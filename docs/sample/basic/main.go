package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"

	"github.com/binarymatt/kinesisdemo"
)

func main() {
	ctx := context.Background()
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		panic(err)
	}
	cfg := kinesisdemo.NewConfig(
		kinesisdemo.WithStreamName("TEST_KINESIS_STREAM"),
		kinesisdemo.WithKinesisClient(kinesis.NewFromConfig(awsCfg)),
	)
	client := kinesisdemo.NewClient(cfg)

	// Consume returns once the shard iterator is in place; polling continues in the background.
	task, err := client.Consume(ctx)
	if err != nil {
		panic(err)
	}
	summary, err := task.Wait()
	if err != nil {
		slog.Error("polling stopped", "error", err)
		return
	}
	slog.Info("polling finished", "records", summary.Records)
}
