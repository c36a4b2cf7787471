package dynamotest

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(key, tag string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"WordKey": &types.AttributeValueMemberS{Value: key},
		"Tag":     &types.AttributeValueMemberS{Value: tag},
	}
}

func TestEvaluate(t *testing.T) {
	cond := expression.Or(
		expression.Name("Tag").Equal(expression.Value("a")),
		expression.Name("WordKey").Contains("zz"),
	).And(expression.AttributeExists(expression.Name("WordKey")))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	require.NoError(t, err)

	ok, err := evaluate(*expr.Condition(), expr.Names(), expr.Values(), item("word", "a"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = evaluate(*expr.Condition(), expr.Names(), expr.Values(), item("buzz", "b"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = evaluate(*expr.Condition(), expr.Names(), expr.Values(), item("word", "b"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFakeClient(t *testing.T) {
	ctx := context.Background()
	client := NewFakeClient()
	client.CreateTable("t", "WordKey")

	for _, k := range []string{"c", "a", "b"} {
		_, err := client.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String("t"), Item: item(k, "x")})
		require.NoError(t, err)
	}

	t.Run("Should scan in key order honouring Limit", func(t *testing.T) {
		out, err := client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String("t"), Limit: aws.Int32(2)})
		require.NoError(t, err)
		require.Len(t, out.Items, 2)
		assert.Equal(t, "a", out.Items[0]["WordKey"].(*types.AttributeValueMemberS).Value)
		require.NotNil(t, out.LastEvaluatedKey)

		rest, err := client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String("t"), ExclusiveStartKey: out.LastEvaluatedKey})
		require.NoError(t, err)
		require.Len(t, rest.Items, 1)
		assert.Nil(t, rest.LastEvaluatedKey)
	})

	t.Run("Should fail conditional puts", func(t *testing.T) {
		_, err := client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                aws.String("t"),
			Item:                     item("a", "y"),
			ConditionExpression:      aws.String("attribute_not_exists (#k)"),
			ExpressionAttributeNames: map[string]string{"#k": "WordKey"},
		})
		var ccf *types.ConditionalCheckFailedException
		assert.True(t, errors.As(err, &ccf))
	})

	t.Run("Should inject failures", func(t *testing.T) {
		client.FailWith("Scan", errors.New("boom"))
		_, err := client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String("t")})
		assert.EqualError(t, err, "boom")
		client.FailWith("Scan", nil)
		assert.Equal(t, 3, client.Calls("Scan"))
	})
}
