package dynamodb

import (
	"context"
	"fmt"
	"time"

	"clouddictionary/application/ports"
	"clouddictionary/domain/core/entities"
	apperrors "clouddictionary/pkg/errors"
	"clouddictionary/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// DefinitionOfTheDayRepository keeps at most one definition in its table.
type DefinitionOfTheDayRepository struct {
	client    API
	tableName string
	scanner   *scanner
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewDefinitionOfTheDayRepository creates a new DefinitionOfTheDayRepository
func NewDefinitionOfTheDayRepository(client API, tableName string, tracer *observability.Tracer, logger *zap.Logger) *DefinitionOfTheDayRepository {
	return &DefinitionOfTheDayRepository{
		client:    client,
		tableName: tableName,
		scanner:   &scanner{client: client, table: tableName, tracer: tracer},
		tracer:    tracer,
		logger:    logger,
	}
}

var _ ports.DefinitionOfTheDayRepository = (*DefinitionOfTheDayRepository)(nil)

// GetCurrent returns the stored definition, or nil when the table is empty
func (r *DefinitionOfTheDayRepository) GetCurrent(ctx context.Context) (*entities.Definition, error) {
	item, err := r.scanner.first(ctx)
	if err != nil || item == nil {
		return nil, err
	}
	return unmarshalDefinition(item)
}

// Rotate deletes the current definition, if any, then writes definition.
// The two calls are not atomic: a reader between them sees no current
// definition.
func (r *DefinitionOfTheDayRepository) Rotate(ctx context.Context, definition *entities.Definition) (*entities.Definition, error) {
	previous, err := r.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	if previous != nil {
		err := r.tracer.TraceFunction(ctx, "dynamodb.DeleteItem."+r.tableName, func(ctx context.Context) error {
			_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(r.tableName),
				Key:       wordKey(previous.Word),
			})
			return err
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("delete definition of the day", err)
		}
	}

	item := newDefinitionItem(definition)
	item.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to marshal definition").WithCause(err)
	}

	err = r.tracer.TraceFunction(ctx, "dynamodb.PutItem."+r.tableName, func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      av,
		})
		return err
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("put definition of the day", err)
	}

	fields := []zap.Field{zap.String("word", definition.Word), zap.String("id", definition.ID)}
	if previous != nil {
		fields = append(fields, zap.String("previous", previous.Word))
	}
	r.logger.Info(fmt.Sprintf("Definition of the day is now %s", definition.Word), fields...)

	return previous, nil
}
