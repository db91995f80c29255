package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/lmittmann/tint"
	"github.com/oklog/run"
	"github.com/urfave/cli/v2"

	"github.com/binarymatt/kinesisdemo"
)

const defaultStream = "TEST_KINESIS_STREAM"

func main() {
	app := &cli.App{
		Name:  "kinesisdemo",
		Usage: "poll a kinesis shard and log every record",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "stream",
				Value:   defaultStream,
				Usage:   "kinesis stream name",
				EnvVars: []string{"KINESISDEMO_STREAM"},
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "aws region, defaults to the shared config",
				EnvVars: []string{"AWS_REGION"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "endpoint override, e.g. http://localhost:4566 for localstack",
				EnvVars: []string{"KINESISDEMO_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"KINESISDEMO_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "consume",
				Usage:  "read the first shard of the stream from trim horizon",
				Flags:  consumeFlags(),
				Action: consume,
			},
			{
				Name:      "produce",
				Usage:     "put messages on the stream",
				ArgsUsage: "MESSAGE...",
				Action:    produce,
			},
			{
				Name:   "shards",
				Usage:  "list the shards of the stream",
				Action: listShards,
			},
			{
				Name:  "create-checkpoint-table",
				Usage: "create the dynamodb checkpoint table",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "table", Value: "kinesisdemo_checkpoints", Usage: "table name"},
				},
				Action: createCheckpointTable,
			},
		},
		DefaultCommand: "consume",
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("kinesisdemo failed", "error", err)
		os.Exit(1)
	}
}

func consumeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "iterations", Value: kinesisdemo.DefaultIterations, Usage: "number of GetRecords calls"},
		&cli.IntFlag{Name: "limit", Value: kinesisdemo.DefaultBatchSize, Usage: "max records per GetRecords call"},
		&cli.DurationFlag{Name: "interval", Value: kinesisdemo.DefaultInterval, Usage: "sleep between GetRecords calls"},
		&cli.StringFlag{Name: "shard", Usage: "shard id to read instead of the first shard"},
		&cli.StringFlag{Name: "checkpoint-table", Usage: "dynamodb table used to resume from the last sequence number", EnvVars: []string{"KINESISDEMO_CHECKPOINT_TABLE"}},
		&cli.BoolFlag{Name: "static-iterator", Usage: "reuse the first shard iterator for every call"},
	}
}

// batchSize range checks --limit before narrowing it to the int32 GetRecords takes.
func batchSize(limit int) (int32, error) {
	if limit < 1 || limit > kinesisdemo.MaxBatchSize {
		return 0, fmt.Errorf("limit must be between 1 and %d, got %d: %w", kinesisdemo.MaxBatchSize, limit, kinesisdemo.ErrInvalidConfiguration)
	}
	return int32(limit), nil
}

func setupLogger(cctx *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cctx.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
	slog.SetDefault(logger)
	return nil
}

func loadAWSConfig(cctx *cli.Context) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region := cctx.String("region"); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if endpoint := cctx.String("endpoint"); endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           endpoint,
				SigningRegion: region,
			}, nil
		})
		opts = append(opts,
			config.WithEndpointResolverWithOptions(resolver),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKID", "SECRET_KEY", "TOKEN")),
		)
	}
	return config.LoadDefaultConfig(cctx.Context, opts...)
}

func newClient(cctx *cli.Context, awsCfg aws.Config, opts ...kinesisdemo.Option) *kinesisdemo.Client {
	opts = append([]kinesisdemo.Option{
		kinesisdemo.WithStreamName(cctx.String("stream")),
		kinesisdemo.WithKinesisClient(kinesis.NewFromConfig(awsCfg)),
		kinesisdemo.WithLogger(slog.Default()),
	}, opts...)
	return kinesisdemo.NewClient(kinesisdemo.NewConfig(opts...))
}

func consume(cctx *cli.Context) error {
	awsCfg, err := loadAWSConfig(cctx)
	if err != nil {
		return err
	}
	limit, err := batchSize(cctx.Int("limit"))
	if err != nil {
		return err
	}
	opts := []kinesisdemo.Option{
		kinesisdemo.WithIterations(cctx.Int("iterations")),
		kinesisdemo.WithBatchSize(limit),
		kinesisdemo.WithInterval(cctx.Duration("interval")),
		kinesisdemo.WithShardID(cctx.String("shard")),
		kinesisdemo.WithStaticIterator(cctx.Bool("static-iterator")),
	}
	if table := cctx.String("checkpoint-table"); table != "" {
		cp := kinesisdemo.NewDynamoCheckpointer(dynamodb.NewFromConfig(awsCfg), table, slog.Default())
		opts = append(opts, kinesisdemo.WithCheckpointer(cp))
	}
	client := newClient(cctx, awsCfg, opts...)

	task, err := client.Consume(cctx.Context)
	if err != nil {
		return err
	}

	var g run.Group
	g.Add(func() error {
		summary, err := task.Wait()
		if summary != nil {
			slog.Info("consumer finished",
				"run_id", client.RunID(),
				"iterations", summary.Iterations,
				"records", summary.Records,
				"decoded", summary.Decoded,
				"replaced", summary.Replaced,
				"last_sequence", summary.LastSequence,
				"shard_closed", summary.ShardClosed,
			)
		}
		return err
	}, func(error) {
		task.Stop()
	})
	g.Add(run.SignalHandler(cctx.Context, os.Interrupt, syscall.SIGTERM))

	err = g.Run()
	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		slog.Warn("received signal, consumer stopped", "signal", sigErr.Signal)
		return nil
	}
	return err
}

func produce(cctx *cli.Context) error {
	messages := cctx.Args().Slice()
	if len(messages) == 0 {
		return errors.New("at least one message is required")
	}
	awsCfg, err := loadAWSConfig(cctx)
	if err != nil {
		return err
	}
	return newClient(cctx, awsCfg).PutMessages(cctx.Context, messages)
}

func listShards(cctx *cli.Context) error {
	awsCfg, err := loadAWSConfig(cctx)
	if err != nil {
		return err
	}
	shards, err := newClient(cctx, awsCfg).ListShards(cctx.Context)
	if err != nil {
		return err
	}
	for i, shard := range shards {
		slog.Info("shard",
			"index", i,
			"shard_id", aws.ToString(shard.ShardId),
			"parent", aws.ToString(shard.ParentShardId),
		)
	}
	return nil
}

func createCheckpointTable(cctx *cli.Context) error {
	awsCfg, err := loadAWSConfig(cctx)
	if err != nil {
		return err
	}
	cp := kinesisdemo.NewDynamoCheckpointer(dynamodb.NewFromConfig(awsCfg), cctx.String("table"), slog.Default())
	return cp.CreateTable(cctx.Context)
}
