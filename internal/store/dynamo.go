package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/aristide1997/version-vault/internal/core"
)

// DynamoOptions configures the DynamoDB-backed AppStore.
type DynamoOptions struct {
	// Table is the DynamoDB table name. Required.
	Table string

	// Region is the AWS region. Optional; falls back to the SDK defaults.
	Region string

	// Endpoint overrides the DynamoDB endpoint for local development
	// (e.g. "http://localhost:8000"). When set, static throwaway
	// credentials are used so no real AWS account is needed.
	Endpoint string
}

// DynamoStore persists app records in a single DynamoDB table keyed by
// appName. It deliberately uses plain Put/Update without condition
// expressions: the service layer owns the existence check, and concurrent
// writers race with last-write-wins semantics.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

var _ core.AppStore = (*DynamoStore)(nil)

// appItem is the persisted attribute layout.
type appItem struct {
	Name            string `dynamodbav:"appName"`
	Version         string `dynamodbav:"version"`
	Secure          bool   `dynamodbav:"secure"`
	TokenHash       string `dynamodbav:"tokenHash,omitempty"`
	TokenExpiryDays int    `dynamodbav:"tokenExpiryDays,omitempty"`
}

func NewDynamoStore(ctx context.Context, opts DynamoOptions) (*DynamoStore, error) {
	if opts.Table == "" {
		return nil, fmt.Errorf("dynamo store: table name is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Endpoint != "" {
		// local mode: DynamoDB Local accepts any credentials
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
		)
		if opts.Region == "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion("us-west-2"))
		}
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return &DynamoStore{client: client, table: opts.Table}, nil
}

func (s *DynamoStore) Get(ctx context.Context, name string) (*core.App, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       key(name),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo get %q: %w", name, err)
	}
	if len(out.Item) == 0 {
		return nil, core.ErrNotFound
	}

	var item appItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshaling item %q: %w", name, err)
	}

	return &core.App{
		Name:            item.Name,
		Version:         item.Version,
		Secure:          item.Secure,
		TokenHash:       item.TokenHash,
		TokenExpiryDays: item.TokenExpiryDays,
	}, nil
}

func (s *DynamoStore) Create(ctx context.Context, app core.App) error {
	item, err := attributevalue.MarshalMap(appItem{
		Name:            app.Name,
		Version:         app.Version,
		Secure:          app.Secure,
		TokenHash:       app.TokenHash,
		TokenExpiryDays: app.TokenExpiryDays,
	})
	if err != nil {
		return fmt.Errorf("marshaling item %q: %w", app.Name, err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamo put %q: %w", app.Name, err)
	}
	return nil
}

func (s *DynamoStore) UpdateVersion(ctx context.Context, name string, version string) error {
	// "version" is a DynamoDB reserved word, hence the name placeholder.
	if _, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.table),
		Key:              key(name),
		UpdateExpression: aws.String("SET #v = :v"),
		ExpressionAttributeNames: map[string]string{
			"#v": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: version},
		},
	}); err != nil {
		return fmt.Errorf("dynamo update %q: %w", name, err)
	}
	return nil
}

func key(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"appName": &types.AttributeValueMemberS{Value: name},
	}
}
