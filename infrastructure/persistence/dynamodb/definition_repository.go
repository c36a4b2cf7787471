package dynamodb

import (
	"context"
	"fmt"
	"time"

	"clouddictionary/application/ports"
	"clouddictionary/domain/core/entities"
	"clouddictionary/pkg/common"
	apperrors "clouddictionary/pkg/errors"
	"clouddictionary/pkg/observability"
	"clouddictionary/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefinitionRepository implements ports.DefinitionRepository. Items are
// keyed by the lowercased word, which makes the word unique at the storage
// level; the IdIndex GSI serves lookups by identifier.
type DefinitionRepository struct {
	client    API
	tableName string
	idIndex   string
	scanner   *scanner
	random    utils.RandomSource
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewDefinitionRepository creates a new DefinitionRepository
func NewDefinitionRepository(
	client API,
	tableName string,
	idIndex string,
	random utils.RandomSource,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *DefinitionRepository {
	return &DefinitionRepository{
		client:    client,
		tableName: tableName,
		idIndex:   idIndex,
		scanner:   &scanner{client: client, table: tableName, tracer: tracer},
		random:    random,
		tracer:    tracer,
		logger:    logger,
	}
}

var _ ports.DefinitionRepository = (*DefinitionRepository)(nil)

// GetByID retrieves a definition by identifier
func (r *DefinitionRepository) GetByID(ctx context.Context, id, wordHint string) (*entities.Definition, error) {
	if wordHint != "" {
		d, err := r.getByKey(ctx, wordHint)
		if err != nil {
			return nil, err
		}
		if d != nil && d.ID == id {
			return d, nil
		}
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No definition found for ID %s.", id))
	}

	keyCond := expression.Key(attrDefinitionID).Equal(expression.Value(id))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build key condition").WithCause(err)
	}

	var out *dynamodb.QueryOutput
	err = r.tracer.TraceFunction(ctx, "dynamodb.Query."+r.idIndex, func(ctx context.Context) error {
		var qerr error
		out, qerr = r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.idIndex),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Limit:                     aws.Int32(1),
		})
		return qerr
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("query definition by id", err)
	}
	if len(out.Items) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No definition found for ID %s.", id))
	}

	return unmarshalDefinition(out.Items[0])
}

// GetByWord retrieves a definition by word, ignoring case
func (r *DefinitionRepository) GetByWord(ctx context.Context, word string) (*entities.Definition, error) {
	d, err := r.getByKey(ctx, word)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.NewNotFoundError("Definition not found.")
	}
	return d, nil
}

func (r *DefinitionRepository) getByKey(ctx context.Context, word string) (*entities.Definition, error) {
	var out *dynamodb.GetItemOutput
	err := r.tracer.TraceFunction(ctx, "dynamodb.GetItem."+r.tableName, func(ctx context.Context) error {
		var gerr error
		out, gerr = r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key:       wordKey(word),
		})
		return gerr
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get definition by word", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return unmarshalDefinition(out.Item)
}

// List pages through every definition
func (r *DefinitionRepository) List(ctx context.Context, page common.PageRequest) (*ports.DefinitionPage, error) {
	return r.query(ctx, AllDefinitions(), page)
}

// ListByTag pages through definitions whose tag matches, ignoring case
func (r *DefinitionRepository) ListByTag(ctx context.Context, tag string, page common.PageRequest) (*ports.DefinitionPage, error) {
	return r.query(ctx, TagFilter(tag), page)
}

// Search pages through definitions containing term in any text field
func (r *DefinitionRepository) Search(ctx context.Context, term string, page common.PageRequest) (*ports.DefinitionPage, error) {
	return r.query(ctx, SearchFilter(term), page)
}

func (r *DefinitionRepository) query(ctx context.Context, filter Filter, page common.PageRequest) (*ports.DefinitionPage, error) {
	items, next, err := r.scanner.page(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	definitions := make([]*entities.Definition, 0, len(items))
	for _, item := range items {
		d, err := unmarshalDefinition(item)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, d)
	}

	r.logger.Debug("Scanned definitions",
		zap.String("filter", filter.Name),
		zap.Int("count", len(definitions)),
		zap.Bool("hasMore", next != ""),
	)

	return &ports.DefinitionPage{Items: definitions, ContinuationToken: next}, nil
}

// Create stores a new definition under a fresh identifier. The put is
// conditional on the word being unused, so concurrent creates of the same
// word cannot both succeed.
func (r *DefinitionRepository) Create(ctx context.Context, definition *entities.Definition) error {
	created := *definition
	created.ID = uuid.NewString()

	cond := expression.AttributeNotExists(expression.Name(attrWordKey))
	if err := r.put(ctx, &created, cond); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError(fmt.Sprintf("A definition for %s already exists.", definition.Word))
		}
		return apperrors.NewDatabaseError("create definition", err)
	}
	definition.ID = created.ID

	r.logger.Info("Created definition",
		zap.String("id", definition.ID),
		zap.String("word", definition.Word),
	)
	return nil
}

// Update replaces the stored definition with the same word and identifier
func (r *DefinitionRepository) Update(ctx context.Context, definition *entities.Definition) error {
	cond := expression.AttributeExists(expression.Name(attrWordKey)).
		And(expression.Name(attrDefinitionID).Equal(expression.Value(definition.ID)))
	if err := r.put(ctx, definition, cond); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFoundError(fmt.Sprintf("Definition with id %s not found.", definition.ID))
		}
		return apperrors.NewDatabaseError("update definition", err)
	}

	r.logger.Info("Updated definition",
		zap.String("id", definition.ID),
		zap.String("word", definition.Word),
	)
	return nil
}

func (r *DefinitionRepository) put(ctx context.Context, definition *entities.Definition, cond expression.ConditionBuilder) error {
	item := newDefinitionItem(definition)
	item.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build condition: %w", err)
	}

	return r.tracer.TraceFunction(ctx, "dynamodb.PutItem."+r.tableName, func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                 aws.String(r.tableName),
			Item:                      av,
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		return err
	})
}

// Delete removes the stored definition with the same word and identifier
func (r *DefinitionRepository) Delete(ctx context.Context, definition *entities.Definition) error {
	cond := expression.Name(attrDefinitionID).Equal(expression.Value(definition.ID))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build condition").WithCause(err)
	}

	err = r.tracer.TraceFunction(ctx, "dynamodb.DeleteItem."+r.tableName, func(ctx context.Context) error {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:                 aws.String(r.tableName),
			Key:                       wordKey(definition.Word),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		return err
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFoundError(fmt.Sprintf("Definition with id %s not found.", definition.ID))
		}
		return apperrors.NewDatabaseError("delete definition", err)
	}

	r.logger.Info("Deleted definition",
		zap.String("id", definition.ID),
		zap.String("word", definition.Word),
	)
	return nil
}

// Count returns the number of stored definitions
func (r *DefinitionRepository) Count(ctx context.Context) (int, error) {
	return r.scanner.count(ctx)
}

// PickRandom counts the table, draws an offset and reads the item there.
// The count and the read are separate calls, so a concurrent delete can
// shift items or leave the offset past the end; the latter yields nil.
func (r *DefinitionRepository) PickRandom(ctx context.Context) (*entities.Definition, error) {
	total, err := r.scanner.count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	offset := r.random.IntN(total)
	item, err := r.scanner.at(ctx, offset)
	if err != nil {
		return nil, err
	}
	if item == nil {
		r.logger.Warn("Random offset no longer exists",
			zap.Int("offset", offset),
			zap.Int("count", total),
		)
		return nil, nil
	}
	return unmarshalDefinition(item)
}

func unmarshalDefinition(av map[string]types.AttributeValue) (*entities.Definition, error) {
	var item definitionItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal definition", err)
	}
	return item.toEntity(), nil
}
