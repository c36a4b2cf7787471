package dynamodb

import (
	"context"
	"strings"

	"clouddictionary/pkg/common"
	apperrors "clouddictionary/pkg/errors"
	"clouddictionary/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// skipBatchSize bounds each Scan issued while skipping to a random offset.
const skipBatchSize = 100

// Filter narrows a scan. Name must uniquely describe the condition; it is
// bound into continuation tokens.
type Filter struct {
	Name      string
	Condition *expression.ConditionBuilder
}

// AllDefinitions matches every item.
func AllDefinitions() Filter {
	return Filter{Name: "all"}
}

// TagFilter matches items whose tag equals tag, ignoring case.
func TagFilter(tag string) Filter {
	tag = strings.ToLower(tag)
	cond := expression.Name(attrTagLower).Equal(expression.Value(tag))
	return Filter{Name: "tag=" + tag, Condition: &cond}
}

// SearchFilter matches items containing term in the word, content, author
// name, tag or abbreviation, ignoring case.
func SearchFilter(term string) Filter {
	term = strings.ToLower(term)
	cond := expression.Or(
		expression.Name(attrWordKey).Contains(term),
		expression.Name(attrContentLower).Contains(term),
		expression.Name(attrAuthorNameLower).Contains(term),
		expression.Name(attrTagLower).Contains(term),
		expression.Name(attrAbbreviationLower).Contains(term),
	)
	return Filter{Name: "search=" + term, Condition: &cond}
}

// scanner runs paged, counted and offset scans over one table.
type scanner struct {
	client API
	table  string
	tracer *observability.Tracer
}

// page returns up to pageSize items matching filter, starting after the
// position encoded in token. Filtered scans can return short batches, so
// it keeps scanning with the remaining capacity as Limit until the page is
// full or the table is exhausted.
func (s *scanner) page(ctx context.Context, filter Filter, req common.PageRequest) ([]map[string]types.AttributeValue, string, error) {
	pageSize := req.EffectivePageSize()
	fingerprint := queryFingerprint(s.table, filter, pageSize)

	startKey, err := decodeToken(fingerprint, req.ContinuationToken)
	if err != nil {
		return nil, "", err
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	}
	if filter.Condition != nil {
		expr, err := expression.NewBuilder().WithFilter(*filter.Condition).Build()
		if err != nil {
			return nil, "", apperrors.NewInternalError("failed to build filter expression").WithCause(err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	items := make([]map[string]types.AttributeValue, 0, pageSize)
	err = s.tracer.TraceFunction(ctx, "dynamodb.Scan."+s.table, func(ctx context.Context) error {
		for {
			input.ExclusiveStartKey = startKey
			input.Limit = aws.Int32(int32(pageSize - len(items)))

			out, err := s.client.Scan(ctx, input)
			if err != nil {
				return apperrors.NewDatabaseError("scan "+s.table, err)
			}

			items = append(items, out.Items...)
			startKey = out.LastEvaluatedKey
			if len(startKey) == 0 || len(items) >= pageSize {
				return nil
			}
		}
	})
	if err != nil {
		return nil, "", err
	}

	next, err := encodeToken(fingerprint, startKey)
	if err != nil {
		return nil, "", apperrors.NewInternalError("failed to encode continuation token").WithCause(err)
	}
	return items, next, nil
}

// count returns the number of items in the table.
func (s *scanner) count(ctx context.Context) (int, error) {
	total := 0
	err := s.tracer.TraceFunction(ctx, "dynamodb.Count."+s.table, func(ctx context.Context) error {
		paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
			TableName: aws.String(s.table),
			Select:    types.SelectCount,
		})
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				return apperrors.NewDatabaseError("count "+s.table, err)
			}
			total += int(out.Count)
		}
		return nil
	})
	return total, err
}

// at returns the item at offset in scan order, or nil if the table holds
// fewer items than that.
func (s *scanner) at(ctx context.Context, offset int) (map[string]types.AttributeValue, error) {
	var found map[string]types.AttributeValue
	err := s.tracer.TraceFunction(ctx, "dynamodb.Skip."+s.table, func(ctx context.Context) error {
		input := &dynamodb.ScanInput{TableName: aws.String(s.table)}
		remaining := offset
		for {
			input.Limit = aws.Int32(int32(min(remaining+1, skipBatchSize)))

			out, err := s.client.Scan(ctx, input)
			if err != nil {
				return apperrors.NewDatabaseError("scan "+s.table, err)
			}
			if remaining < len(out.Items) {
				found = out.Items[remaining]
				return nil
			}
			remaining -= len(out.Items)
			if len(out.LastEvaluatedKey) == 0 {
				return nil
			}
			input.ExclusiveStartKey = out.LastEvaluatedKey
		}
	})
	return found, err
}

// first returns any single item, or nil when the table is empty.
func (s *scanner) first(ctx context.Context) (map[string]types.AttributeValue, error) {
	return s.at(ctx, 0)
}
