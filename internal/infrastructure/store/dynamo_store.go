package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names of the table's primary key.
const (
	dynamoPartitionKey = "collection"
	dynamoSortKey      = "id"
)

// DynamoStore keeps every collection in one table, partitioned by collection name
// with the document id as sort key. Query results are ordered by id, not insertion.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName}
}

// NewDynamoClient loads the default AWS config. A non-empty endpoint points the
// client at DynamoDB Local.
func NewDynamoClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func (s *DynamoStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	docs := make([]Document, 0)
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("#c = :c"),
			ExpressionAttributeNames: map[string]string{
				"#c": dynamoPartitionKey,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":c": &types.AttributeValueMemberS{Value: collection},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", collection, err)
		}

		var page []map[string]any
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", collection, err)
		}
		for _, item := range page {
			doc := Document(item)
			delete(doc, dynamoPartitionKey)
			if doc.Matches(filter) {
				docs = append(docs, doc)
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return docs, nil
}

func (s *DynamoStore) Insert(ctx context.Context, collection string, doc Document) (Document, error) {
	if doc.ID() == "" {
		return nil, ErrMissingID
	}

	item := doc.Clone()
	item[dynamoPartitionKey] = collection
	av, err := attributevalue.MarshalMap(map[string]any(item))
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": dynamoSortKey,
		},
	})
	if err != nil {
		var conflict *types.ConditionalCheckFailedException
		if errors.As(err, &conflict) {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("put document: %w", err)
	}
	return doc.Clone(), nil
}

// UpdateOne builds a SET expression from the patch so the merge happens server side.
func (s *DynamoStore) UpdateOne(ctx context.Context, collection, id string, patch Document) (Document, error) {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		if k != "id" && k != dynamoPartitionKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	names := map[string]string{"#id": dynamoSortKey}
	values := map[string]types.AttributeValue{}
	expr := ""
	for i, k := range keys {
		nameRef := fmt.Sprintf("#f%d", i)
		valueRef := fmt.Sprintf(":v%d", i)
		av, err := attributevalue.Marshal(patch[k])
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", k, err)
		}
		names[nameRef] = k
		values[valueRef] = av
		if expr == "" {
			expr = "SET "
		} else {
			expr += ", "
		}
		expr += nameRef + " = " + valueRef
	}

	if expr == "" {
		return s.getItem(ctx, collection, id)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			dynamoPartitionKey: &types.AttributeValueMemberS{Value: collection},
			dynamoSortKey:      &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}

	out, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		var missing *types.ConditionalCheckFailedException
		if errors.As(err, &missing) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update document: %w", err)
	}

	var updated map[string]any
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	doc := Document(updated)
	delete(doc, dynamoPartitionKey)
	return doc, nil
}

func (s *DynamoStore) getItem(ctx context.Context, collection, id string) (Document, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			dynamoPartitionKey: &types.AttributeValueMemberS{Value: collection},
			dynamoSortKey:      &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var item map[string]any
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	doc := Document(item)
	delete(doc, dynamoPartitionKey)
	return doc, nil
}

func (s *DynamoStore) DeleteOne(ctx context.Context, collection, id string) (bool, error) {
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			dynamoPartitionKey: &types.AttributeValueMemberS{Value: collection},
			dynamoSortKey:      &types.AttributeValueMemberS{Value: id},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return len(out.Attributes) > 0, nil
}
