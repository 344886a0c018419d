package repository

import (
	"freelance_billing/internal/domain/money"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// moneyAttr is a monetary amount as stored in the ledger. New rows are
// written as string attributes; legacy rows may carry numbers, strings,
// or garbage. Reads accept all of them and fold anything unparsable to
// zero so one bad row cannot fail a whole scan.
type moneyAttr float64

func (m moneyAttr) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberS{Value: floatToString(float64(m))}, nil
}

func (m *moneyAttr) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		*m = moneyAttr(money.ParseAmount(v.Value))
	case *types.AttributeValueMemberN:
		*m = moneyAttr(money.ParseAmount(v.Value))
	default:
		*m = 0
	}
	return nil
}
