/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/suparena/hbnb/datastore"
	"github.com/suparena/hbnb/errors"
	"github.com/suparena/hbnb/storagemodels"
)

// KeyAttribute is the partition key of the table. It holds the composite key.
const KeyAttribute = "PK"

var _ datastore.Backend = (*DynamodbBackend)(nil)

// Client is the subset of the DynamoDB API the backend uses.
type Client interface {
	sdk.ScanAPIClient
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// ClientOptions configures NewDynamoDBClient.
type ClientOptions struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint, e.g. http://localhost:8000
	// for DynamoDB Local.
	Endpoint string
}

// DynamodbBackend implements datastore.Backend on a DynamoDB table with a
// string partition key named PK. Each entity is one item: its record fields
// plus PK.
type DynamodbBackend struct {
	client    Client
	tableName string
	logger    *zap.SugaredLogger
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are
// used when an access key is given, the default chain otherwise.
func NewDynamoDBClient(ctx context.Context, opts ClientOptions) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})
	return client, nil
}

// NewDynamodbBackend constructs a backend over an existing client.
func NewDynamodbBackend(client Client, tableName string, logger *zap.SugaredLogger) *DynamodbBackend {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DynamodbBackend{
		client:    client,
		tableName: tableName,
		logger:    logger.Named("ddb"),
	}
}

// Name returns the table name.
func (d *DynamodbBackend) Name() string {
	return "dynamodb:" + d.tableName
}

// Read scans the table. An empty table is an empty start.
func (d *DynamodbBackend) Read(ctx context.Context) (map[string]storagemodels.Record, error) {
	items, err := d.scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	records := make(map[string]storagemodels.Record, len(items))
	for _, item := range items {
		key, rec, err := itemToRecord(item)
		if err != nil {
			return nil, errors.NewCorruptError(d.Name(), key, "undecodable item", err)
		}
		records[key] = rec
	}
	d.logger.Debugf("Read %d items from %s", len(records), d.tableName)
	return records, nil
}

// Write puts every record and deletes items whose key is no longer present.
func (d *DynamodbBackend) Write(ctx context.Context, records map[string]storagemodels.Record) error {
	existing, err := d.scan(ctx, &sdk.ScanInput{
		ProjectionExpression:     aws.String("#pk"),
		ExpressionAttributeNames: map[string]string{"#pk": KeyAttribute},
	})
	if err != nil {
		return err
	}

	for key, rec := range records {
		item, err := recordToItem(key, rec)
		if err != nil {
			return err
		}
		_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
			TableName: &d.tableName,
			Item:      item,
		})
		if err != nil {
			return fmt.Errorf("PutItem failed for %s: %w", key, err)
		}
	}

	deleted := 0
	for _, item := range existing {
		var key string
		if err := attributevalue.Unmarshal(item[KeyAttribute], &key); err != nil || key == "" {
			continue
		}
		if _, ok := records[key]; ok {
			continue
		}
		_, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
			TableName: &d.tableName,
			Key: map[string]types.AttributeValue{
				KeyAttribute: &types.AttributeValueMemberS{Value: key},
			},
		})
		if err != nil {
			return fmt.Errorf("DeleteItem failed for %s: %w", key, err)
		}
		deleted++
	}

	d.logger.Debugf("Wrote %d items, deleted %d from %s", len(records), deleted, d.tableName)
	return nil
}

func (d *DynamodbBackend) scan(ctx context.Context, input *sdk.ScanInput) ([]map[string]types.AttributeValue, error) {
	if input == nil {
		input = &sdk.ScanInput{}
	}
	input.TableName = &d.tableName

	var items []map[string]types.AttributeValue
	p := sdk.NewScanPaginator(d.client, input)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		items = append(items, out.Items...)
	}
	return items, nil
}

func recordToItem(key string, rec storagemodels.Record) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record %s: %w", key, err)
	}
	item[KeyAttribute] = &types.AttributeValueMemberS{Value: key}
	return item, nil
}

func itemToRecord(item map[string]types.AttributeValue) (string, storagemodels.Record, error) {
	var generic map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &generic); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	key, _ := generic[KeyAttribute].(string)
	if key == "" {
		return "", nil, fmt.Errorf("missing %s attribute in item", KeyAttribute)
	}
	delete(generic, KeyAttribute)

	rec := make(storagemodels.Record, len(generic))
	for name, value := range generic {
		if value == nil {
			rec[name] = ""
			continue
		}
		s, err := cast.ToStringE(value)
		if err != nil {
			return key, nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		rec[name] = s
	}
	return key, rec, nil
}
