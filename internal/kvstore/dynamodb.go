package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ggorockee/happyhours/internal/awsclient"
	"github.com/ggorockee/happyhours/internal/config"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type kvItem struct {
	Key       string `dynamodbav:"key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// DynamoDB stores each key as one item with partition key "key".
type DynamoDB struct {
	client    DynamoDBAPI
	tableName string
}

// NewDynamoDB creates a DynamoDB-backed store.
func NewDynamoDB(client DynamoDBAPI, tableName string) *DynamoDB {
	return &DynamoDB{client: client, tableName: tableName}
}

// NewDynamoDBFromConfig builds the client from AWS settings.
func NewDynamoDBFromConfig(ctx context.Context, cfg *config.AWSConfig, tableName string) (*DynamoDB, error) {
	awsCfg, err := awsclient.LoadConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewDynamoDB(dynamodb.NewFromConfig(awsCfg), tableName), nil
}

func keyAttr(key string) map[string]dynamodbtypes.AttributeValue {
	return map[string]dynamodbtypes.AttributeValue{
		"key": &dynamodbtypes.AttributeValueMemberS{Value: key},
	}
}

func (d *DynamoDB) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.tableName),
		Key:            keyAttr(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if result.Item == nil {
		return "", false, nil
	}

	var item kvItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal key %s: %w", key, err)
	}
	return item.Value, true, nil
}

func (d *DynamoDB) Set(ctx context.Context, key, value string) error {
	item, err := attributevalue.MarshalMap(kvItem{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal key %s: %w", key, err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (d *DynamoDB) Remove(ctx context.Context, key string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key:       keyAttr(key),
	})
	if err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}

// Clear scans every key and deletes it one by one.
func (d *DynamoDB) Clear(ctx context.Context) error {
	var lastEvaluatedKey map[string]dynamodbtypes.AttributeValue

	for {
		out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(d.tableName),
			ProjectionExpression: aws.String("#k"),
			ExpressionAttributeNames: map[string]string{
				"#k": "key",
			},
			ExclusiveStartKey: lastEvaluatedKey,
		})
		if err != nil {
			return fmt.Errorf("failed to scan table: %w", err)
		}

		for _, raw := range out.Items {
			var item kvItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return fmt.Errorf("failed to unmarshal scanned key: %w", err)
			}
			if err := d.Remove(ctx, item.Key); err != nil {
				return err
			}
		}

		if out.LastEvaluatedKey == nil {
			return nil
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
}
