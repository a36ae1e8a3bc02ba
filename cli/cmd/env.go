package cmd

import (
	"context"

	"github.com/ardnew/rollenv/lang"
	"github.com/ardnew/rollenv/storage/dynamo"
)

// EnvFlags are the storage-backend selection flags shared by every
// subcommand that constructs a lang.Environment.
type EnvFlags struct {
	Env            string `default:"memory" enum:"memory,dynamo"     help:"Variable storage backend (${enum})"`
	DynamoTable    string `                                          help:"DynamoDB table name when --env=dynamo"`
	DynamoEndpoint string `                                          help:"DynamoDB endpoint override when --env=dynamo"`
}

// Build constructs the lang.Environment selected by Env, dialing DynamoDB
// only when requested.
func (f *EnvFlags) Build(ctx context.Context) (lang.Environment, error) {
	if f.Env != "dynamo" {
		return lang.NewMemoryEnvironment(), nil
	}

	client, err := dynamo.NewClient(ctx, f.DynamoEndpoint)
	if err != nil {
		return nil, err
	}

	if f.DynamoTable == "" {
		return dynamo.NewDefaultEnvironment(client), nil
	}

	return dynamo.NewEnvironment(client, f.DynamoTable), nil
}
