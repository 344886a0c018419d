package repository

import (
	"context"
	"errors"
	"time"

	"freelance_billing/internal/domain/entities"
	"freelance_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ApprovalLedgerDynamo commits the approve+materialize unit of work as
// one DynamoDB transaction:
//
//   - quote update: status -> approved, invoice_id pointer set;
//     conditioned on the quote still being approvable and carrying no
//     active invoice
//   - invoice put: conditioned on the id being fresh
//
// Either both writes land or neither does, so an approved status can
// never exist without its invoice. Of two concurrent approvals the
// loser's condition fails and the whole transaction is cancelled.

type ApprovalLedgerDynamo struct {
	ddb           *dynamodb.Client
	quotesTable   string
	invoicesTable string
	quotes        *QuoteDynamoRepository
}

var _ interfaces.IApprovalLedger = (*ApprovalLedgerDynamo)(nil)

func NewApprovalLedgerDynamo(ddb *dynamodb.Client, quotes *QuoteDynamoRepository) *ApprovalLedgerDynamo {
	return &ApprovalLedgerDynamo{
		ddb:           ddb,
		quotesTable:   getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
		invoicesTable: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
		quotes:        quotes,
	}
}

func (l *ApprovalLedgerDynamo) ApproveQuoteWithInvoice(ctx context.Context, quoteID string, inv entities.Invoice, staleInvoiceID string) (entities.Quote, entities.Invoice, error) {
	invItem, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Quote{}, entities.Invoice{}, err
	}

	// :approved in the allowed status set covers re-materialization after
	// an operator deleted the active invoice. The pointer guard normally
	// requires absence; when the caller observed a dangling pointer (the
	// delete landed but its pointer release did not), the guard also
	// accepts that exact stale id so re-approval can replace it.
	pointerGuard := "attribute_not_exists(#invoice_id)"
	values := map[string]types.AttributeValue{
		":approved":     &types.AttributeValueMemberS{Value: string(entities.QuoteStatusApproved)},
		":quoted":       &types.AttributeValueMemberS{Value: string(entities.QuoteStatusQuoted)},
		":under_review": &types.AttributeValueMemberS{Value: string(entities.QuoteStatusUnderReview)},
		":invoice_id":   &types.AttributeValueMemberS{Value: inv.ID},
		":updated_at":   &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
	}
	if staleInvoiceID != "" {
		pointerGuard = "(attribute_not_exists(#invoice_id) OR #invoice_id = :stale_invoice_id)"
		values[":stale_invoice_id"] = &types.AttributeValueMemberS{Value: staleInvoiceID}
	}

	_, err = l.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(l.quotesTable),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: quoteID},
					},
					ConditionExpression:       aws.String("attribute_exists(#id) AND " + pointerGuard + " AND #status IN (:quoted, :under_review, :approved)"),
					UpdateExpression:          aws.String("SET #status = :approved, #invoice_id = :invoice_id, #updated_at = :updated_at"),
					ExpressionAttributeValues: values,
					ExpressionAttributeNames: map[string]string{
						"#id":         "id",
						"#status":     "status",
						"#invoice_id": "invoice_id",
						"#updated_at": "updated_at",
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(l.invoicesTable),
					Item:                invItem,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		if isTransactionConditionFailure(err) {
			return entities.Quote{}, entities.Invoice{}, nil
		}
		return entities.Quote{}, entities.Invoice{}, wrapUnavailable(err)
	}

	// TransactWriteItems returns no attributes; read the committed
	// quote back so callers see the post-approval row.
	approved, err := l.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, entities.Invoice{}, err
	}
	return approved, inv, nil
}

func isTransactionConditionFailure(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
