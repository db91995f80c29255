package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/mock"
)

// KinesisAPI is a testify mock of the kinesis client methods used by kinesisdemo.
type KinesisAPI struct {
	mock.Mock
}

func (m *KinesisAPI) DescribeStream(ctx context.Context, params *kinesis.DescribeStreamInput, optFns ...func(*kinesis.Options)) (*kinesis.DescribeStreamOutput, error) {
	args := m.Called(ctx, params)
	var out *kinesis.DescribeStreamOutput
	if v := args.Get(0); v != nil {
		out = v.(*kinesis.DescribeStreamOutput)
	}
	return out, args.Error(1)
}

func (m *KinesisAPI) GetShardIterator(ctx context.Context, params *kinesis.GetShardIteratorInput, optFns ...func(*kinesis.Options)) (*kinesis.GetShardIteratorOutput, error) {
	args := m.Called(ctx, params)
	var out *kinesis.GetShardIteratorOutput
	if v := args.Get(0); v != nil {
		out = v.(*kinesis.GetShardIteratorOutput)
	}
	return out, args.Error(1)
}

func (m *KinesisAPI) GetRecords(ctx context.Context, params *kinesis.GetRecordsInput, optFns ...func(*kinesis.Options)) (*kinesis.GetRecordsOutput, error) {
	args := m.Called(ctx, params)
	var out *kinesis.GetRecordsOutput
	if v := args.Get(0); v != nil {
		out = v.(*kinesis.GetRecordsOutput)
	}
	return out, args.Error(1)
}

func (m *KinesisAPI) PutRecords(ctx context.Context, params *kinesis.PutRecordsInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordsOutput, error) {
	args := m.Called(ctx, params)
	var out *kinesis.PutRecordsOutput
	if v := args.Get(0); v != nil {
		out = v.(*kinesis.PutRecordsOutput)
	}
	return out, args.Error(1)
}

// NewKinesisAPI creates a new instance of KinesisAPI. Expectations are asserted when the test ends.
func NewKinesisAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *KinesisAPI {
	m := &KinesisAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
