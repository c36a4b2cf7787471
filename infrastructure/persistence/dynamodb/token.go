package dynamodb

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	apperrors "clouddictionary/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// continuationToken is the decoded form of the opaque token handed to
// callers. It binds a LastEvaluatedKey to the query that produced it.
type continuationToken struct {
	Query string            `json:"q"`
	Key   map[string]string `json:"k"`
}

// queryFingerprint identifies a query by table, filter and page size so a
// token cannot be replayed against a different query.
func queryFingerprint(table string, filter Filter, pageSize int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", table, filter.Name, pageSize)))
	return hex.EncodeToString(sum[:8])
}

func encodeToken(fingerprint string, lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}

	var key map[string]string
	if err := attributevalue.UnmarshalMap(lastKey, &key); err != nil {
		return "", fmt.Errorf("failed to encode continuation token: %w", err)
	}

	data, err := json.Marshal(continuationToken{Query: fingerprint, Key: key})
	if err != nil {
		return "", fmt.Errorf("failed to encode continuation token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeToken(fingerprint, token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid continuation token.").WithCause(err)
	}

	var decoded continuationToken
	if err := json.Unmarshal(data, &decoded); err != nil || len(decoded.Key) == 0 {
		return nil, apperrors.NewValidationError("Invalid continuation token.").WithCause(err)
	}
	if decoded.Query != fingerprint {
		return nil, apperrors.NewValidationError("Continuation token does not match this query.")
	}

	key, err := attributevalue.MarshalMap(decoded.Key)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid continuation token.").WithCause(err)
	}
	return key, nil
}
