package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/mock"
)

// DynamoDBAPI is a testify mock of the dynamodb client methods used by the checkpoint store.
type DynamoDBAPI struct {
	mock.Mock
}

func (m *DynamoDBAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	var out *dynamodb.GetItemOutput
	if v := args.Get(0); v != nil {
		out = v.(*dynamodb.GetItemOutput)
	}
	return out, args.Error(1)
}

func (m *DynamoDBAPI) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	var out *dynamodb.UpdateItemOutput
	if v := args.Get(0); v != nil {
		out = v.(*dynamodb.UpdateItemOutput)
	}
	return out, args.Error(1)
}

func (m *DynamoDBAPI) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	args := m.Called(ctx, params)
	var out *dynamodb.CreateTableOutput
	if v := args.Get(0); v != nil {
		out = v.(*dynamodb.CreateTableOutput)
	}
	return out, args.Error(1)
}

// NewDynamoDBAPI creates a new instance of DynamoDBAPI. Expectations are asserted when the test ends.
func NewDynamoDBAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *DynamoDBAPI {
	m := &DynamoDBAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
