// Package dynamo implements lang.Environment against DynamoDB, for a chat
// front-end that must survive process restarts.
package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ardnew/rollenv/lang"
)

// DefaultTableName is the table used when Environment is constructed via
// NewDefaultEnvironment.
const DefaultTableName = "dice-roller-bot"

const varNamePrefix = "var_name:"

// item is the Go-side shape of a single table row, marshaled through
// attributevalue rather than built up as a raw map of types.AttributeValue.
type item struct {
	PK    string `dynamodbav:"pk"`
	SK    string `dynamodbav:"sk"`
	Value string `dynamodbav:"value"`
}

// Environment is a lang.Environment backed by a single DynamoDB table with
// a composite (pk, sk) key: pk is the Context's UserContextKey, sk is
// "var_name:<name>" for a variable binding.
type Environment struct {
	client *dynamodb.Client
	table  string
}

// NewClient constructs a dynamodb.Client from the default AWS
// configuration chain. If endpoint is non-empty, it overrides the
// service endpoint (e.g. a local DynamoDB or localstack instance for
// development and testing).
func NewClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion("us-east-1"),
	}

	if endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(endpoint))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, lang.WrapError(err)
	}

	return dynamodb.NewFromConfig(cfg), nil
}

// NewEnvironment returns an Environment backed by the named table.
func NewEnvironment(client *dynamodb.Client, table string) *Environment {
	return &Environment{client: client, table: table}
}

// NewDefaultEnvironment returns an Environment backed by DefaultTableName.
func NewDefaultEnvironment(client *dynamodb.Client) *Environment {
	return NewEnvironment(client, DefaultTableName)
}

func sortKey(name string) string { return varNamePrefix + name }

// Get implements lang.Environment.
func (e *Environment) Get(
	ctx context.Context,
	rctx lang.Context,
	name string,
) (lang.Expression, bool, error) {
	key, err := attributevalue.MarshalMap(struct {
		PK string `dynamodbav:"pk"`
		SK string `dynamodbav:"sk"`
	}{PK: rctx.UserContextKey(), SK: sortKey(name)})
	if err != nil {
		return nil, false, lang.WrapError(err)
	}

	out, err := e.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(e.table),
		Key:       key,
	})
	if err != nil {
		return nil, false, lang.WrapError(err)
	}

	if out.Item == nil {
		return nil, false, nil
	}

	var row item
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, false, nil
	}

	value, err := lang.UnmarshalExpression([]byte(row.Value))
	if err != nil {
		return nil, false, nil
	}

	return value, true, nil
}

// Set implements lang.Environment.
func (e *Environment) Set(
	ctx context.Context,
	rctx lang.Context,
	name string,
	value lang.Expression,
) error {
	data, err := lang.MarshalExpression(value)
	if err != nil {
		return err
	}

	row := item{PK: rctx.UserContextKey(), SK: sortKey(name), Value: string(data)}

	av, err := attributevalue.MarshalMap(row)
	if err != nil {
		return lang.WrapError(err)
	}

	_, err = e.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(e.table),
		Item:      av,
	})
	if err != nil {
		return lang.WrapError(err)
	}

	return nil
}

// Closure implements lang.Environment by querying every item under rctx's
// partition key and decoding the var_name:-prefixed sort keys. A row with
// no sort key is an error.
func (e *Environment) Closure(
	ctx context.Context,
	rctx lang.Context,
) (map[string]lang.Expression, error) {
	pk, err := attributevalue.Marshal(rctx.UserContextKey())
	if err != nil {
		return nil, lang.WrapError(err)
	}

	out, err := e.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(e.table),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": pk,
		},
	})
	if err != nil {
		return nil, lang.WrapError(err)
	}

	var rows []item
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
		return nil, lang.WrapError(err)
	}

	result := make(map[string]lang.Expression, len(rows))

	for _, row := range rows {
		if row.SK == "" {
			return nil, lang.NewOtherError(fmt.Sprintf("closure: row under %q has no sk", row.PK))
		}

		if !strings.HasPrefix(row.SK, varNamePrefix) {
			continue
		}

		value, err := lang.UnmarshalExpression([]byte(row.Value))
		if err != nil {
			return nil, err
		}

		result[strings.TrimPrefix(row.SK, varNamePrefix)] = value
	}

	return result, nil
}

// Print implements lang.Environment. Unlike the in-memory environment,
// fetching and rendering every binding would cost a partition query per
// invocation, so this returns an opaque scope tag instead of a dump.
func (e *Environment) Print(_ context.Context, rctx lang.Context) (string, error) {
	return fmt.Sprintf("dynamo-env:%s", rctx.UserContextKey()), nil
}
