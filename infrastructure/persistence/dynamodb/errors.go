package dynamodb

import (
	"errors"

	"github.com/aws/smithy-go"
)

func isConditionalCheckFailed(err error) bool {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.ErrorCode() == "ConditionalCheckFailedException"
}
