package dynamodb

import (
	"context"
	"fmt"

	"clouddictionary/application/ports"
	"clouddictionary/domain/core/entities"
	apperrors "clouddictionary/pkg/errors"
	"clouddictionary/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProjectRepository reads projects keyed by lowercased word.
type ProjectRepository struct {
	client    API
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(client API, tableName string, tracer *observability.Tracer, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

// GetByWord retrieves a project by word, ignoring case
func (r *ProjectRepository) GetByWord(ctx context.Context, word string) (*entities.Project, error) {
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
		return nil, apperrors.NewDatabaseError("get project by word", err)
	}
	if len(out.Item) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No project found for %s.", word))
	}

	var item projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("unmarshal project", err)
	}
	return item.toEntity(), nil
}
