package repository

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// LastEvaluatedKey is the table key a paged scan stopped at. The todo
// table has a simple primary key, so only the id travels in the cursor.
type LastEvaluatedKey struct {
	ID string `json:"id"`
}

// ToDynamoDBKey converts the key back to DynamoDB's attribute form.
func (k LastEvaluatedKey) ToDynamoDBKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: k.ID},
	}
}

// EncodeNextToken serializes DynamoDB's LastEvaluatedKey into an opaque
// token. Returns "" when the scan is exhausted.
func EncodeNextToken(key map[string]types.AttributeValue) string {
	if len(key) == 0 {
		return ""
	}

	id, ok := key["id"].(*types.AttributeValueMemberS)
	if !ok {
		return ""
	}

	data, err := json.Marshal(LastEvaluatedKey{ID: id.Value})
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeNextToken reverses EncodeNextToken. An empty token yields a nil
// key, meaning "start from the beginning".
func DecodeNextToken(token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid next token: %w", err)
	}

	var key LastEvaluatedKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("invalid next token: %w", err)
	}
	return key.ToDynamoDBKey(), nil
}
