// Package dynamotest provides an in-memory DynamoDB client for tests.
package dynamotest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type table struct {
	hashKey string
	indexes map[string]string
	items   map[string]map[string]types.AttributeValue
}

// FakeClient is a single-process stand-in for the DynamoDB operations the
// repositories use. Items are scanned in hash-key order and Limit counts
// evaluated items before filtering, as the real service does.
type FakeClient struct {
	mu     sync.Mutex
	tables map[string]*table
	errs   map[string]error
	calls  map[string]int
}

// NewFakeClient creates an empty client.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		tables: make(map[string]*table),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

// CreateTable registers a table keyed by a string hash key.
func (f *FakeClient) CreateTable(name, hashKey string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[name] = &table{
		hashKey: hashKey,
		indexes: make(map[string]string),
		items:   make(map[string]map[string]types.AttributeValue),
	}
}

// CreateIndex registers a global secondary index on attribute.
func (f *FakeClient) CreateIndex(tableName, indexName, attribute string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[tableName].indexes[indexName] = attribute
}

// FailWith makes every later call to operation return err. A nil err
// clears the failure.
func (f *FakeClient) FailWith(operation string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, operation)
		return
	}
	f.errs[operation] = err
}

// Calls returns how many times operation was invoked.
func (f *FakeClient) Calls(operation string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[operation]
}

// Len returns the number of items in a table.
func (f *FakeClient) Len(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[tableName].items)
}

func (f *FakeClient) begin(operation, tableName string) (*table, error) {
	f.calls[operation]++
	if err := f.errs[operation]; err != nil {
		return nil, err
	}
	t, ok := f.tables[tableName]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found: " + tableName)}
	}
	return t, nil
}

func (t *table) keyOf(item map[string]types.AttributeValue) (string, error) {
	s, ok := item[t.hashKey].(*types.AttributeValueMemberS)
	if !ok || s.Value == "" {
		return "", fmt.Errorf("ValidationException: missing key attribute %s", t.hashKey)
	}
	return s.Value, nil
}

func (t *table) sortedKeys() []string {
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

// GetItem implements the DynamoDB GetItem operation.
func (f *FakeClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.begin("GetItem", aws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}
	key, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: copyItem(t.items[key])}, nil
}

// PutItem implements the DynamoDB PutItem operation.
func (f *FakeClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.begin("PutItem", aws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}
	key, err := t.keyOf(params.Item)
	if err != nil {
		return nil, err
	}
	ok, err := evaluate(aws.ToString(params.ConditionExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues, t.items[key])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, conditionFailed()
	}
	t.items[key] = copyItem(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// DeleteItem implements the DynamoDB DeleteItem operation.
func (f *FakeClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.begin("DeleteItem", aws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}
	key, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	ok, err := evaluate(aws.ToString(params.ConditionExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues, t.items[key])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, conditionFailed()
	}
	delete(t.items, key)
	return &dynamodb.DeleteItemOutput{}, nil
}

// Query implements the DynamoDB Query operation against a table or index.
func (f *FakeClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.begin("Query", aws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}

	var indexAttr string
	if params.IndexName != nil {
		attr, ok := t.indexes[aws.ToString(params.IndexName)]
		if !ok {
			return nil, fmt.Errorf("ValidationException: unknown index %s", aws.ToString(params.IndexName))
		}
		indexAttr = attr
	}

	out := &dynamodb.QueryOutput{}
	for _, k := range t.sortedKeys() {
		item := t.items[k]
		if indexAttr != "" {
			if _, ok := item[indexAttr]; !ok {
				continue
			}
		}
		match, err := evaluate(aws.ToString(params.KeyConditionExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues, item)
		if err != nil {
			return nil, err
		}
		if !match {
			continue
		}
		if params.FilterExpression != nil {
			if match, err = evaluate(*params.FilterExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues, item); err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		out.Items = append(out.Items, copyItem(item))
		if params.Limit != nil && len(out.Items) >= int(*params.Limit) {
			break
		}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

// Scan implements the DynamoDB Scan operation.
func (f *FakeClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.begin("Scan", aws.ToString(params.TableName))
	if err != nil {
		return nil, err
	}

	keys := t.sortedKeys()
	start := 0
	if len(params.ExclusiveStartKey) > 0 {
		after, err := t.keyOf(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}

	out := &dynamodb.ScanOutput{}
	i := start
	for ; i < len(keys); i++ {
		if params.Limit != nil && int(out.ScannedCount) >= int(*params.Limit) {
			break
		}
		item := t.items[keys[i]]
		out.ScannedCount++

		if params.FilterExpression != nil {
			match, err := evaluate(*params.FilterExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues, item)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		out.Count++
		if params.Select != types.SelectCount {
			out.Items = append(out.Items, copyItem(item))
		}
	}

	if i < len(keys) && i > start {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			t.hashKey: &types.AttributeValueMemberS{Value: keys[i-1]},
		}
	}
	return out, nil
}
