package repository

import (
	"context"
	"log"
	"time"

	"freelance_billing/internal/domain/entities"
	"freelance_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultInvoicesTableName = "invoices"

type invoiceItem struct {
	ID              string     `dynamodbav:"id"`
	QuoteID         string     `dynamodbav:"quote_id"`
	Customer        string     `dynamodbav:"customer,omitempty"`
	Amount          moneyAttr  `dynamodbav:"amount"`
	DepositAmount   *moneyAttr `dynamodbav:"deposit_amount,omitempty"`
	RemainingAmount *moneyAttr `dynamodbav:"remaining_amount,omitempty"`
	Status          string     `dynamodbav:"status"`
	DepositPaid     bool       `dynamodbav:"deposit_paid"`
	PaidDate        string     `dynamodbav:"paid_date,omitempty"`
	CreatedAt       string     `dynamodbav:"created_at"`
	UpdatedAt       string     `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Deleting an invoice also releases the originating quote's
// active-invoice pointer, so the repository knows the quotes table too.

type InvoiceDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	quotesTable string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:         ddb,
		tableName:   getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
		quotesTable: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	var out *dynamodb.GetItemOutput
	err := readWithRetry(ctx, func() error {
		var err error
		out, err = r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			},
			ConsistentRead: aws.Bool(true),
		})
		return err
	})
	if err != nil {
		return entities.Invoice{}, wrapUnavailable(err)
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it)
}

// List scans the whole table. Invoice volume is small and the revenue
// figure is recomputed from scratch on every query, so a paginated scan
// is the honest implementation.
func (r *InvoiceDynamoRepository) List(ctx context.Context) ([]entities.Invoice, error) {
	var invoices []entities.Invoice
	var startKey map[string]types.AttributeValue

	for {
		var out *dynamodb.ScanOutput
		err := readWithRetry(ctx, func() error {
			var err error
			out, err = r.ddb.Scan(ctx, &dynamodb.ScanInput{
				TableName:         aws.String(r.tableName),
				ExclusiveStartKey: startKey,
			})
			return err
		})
		if err != nil {
			return nil, wrapUnavailable(err)
		}

		for _, raw := range out.Items {
			var it invoiceItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			inv, err := fromInvoiceItem(it)
			if err != nil {
				// A malformed legacy row must not fail the whole
				// aggregation; it contributes nothing instead.
				log.Printf("[invoice][repo] skipping malformed row id=%s err=%v", it.ID, err)
				continue
			}
			invoices = append(invoices, inv)
		}

		if len(out.LastEvaluatedKey) == 0 {
			return invoices, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *InvoiceDynamoRepository) RecordDeposit(ctx context.Context, id string) (entities.Invoice, error) {
	return r.update(ctx, id, func(now string) (string, string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #deposit_paid = :deposit_paid, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":deposit_paid": &types.AttributeValueMemberBOOL{Value: true},
			":updated_at":   &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#deposit_paid": "deposit_paid",
			"#updated_at":   "updated_at",
		}
		return expr, "", vals, names
	})
}

func (r *InvoiceDynamoRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.Invoice, error) {
	return r.update(ctx, id, func(now string) (string, string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #paid_date = :paid_date, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPaid)},
			":paid_date":  &types.AttributeValueMemberS{Value: paidAt.UTC().Format(time.RFC3339Nano)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#paid_date":  "paid_date",
			"#updated_at": "updated_at",
		}
		return expr, "", vals, names
	})
}

func (r *InvoiceDynamoRepository) ResetToPending(ctx context.Context, id string) (entities.Invoice, error) {
	return r.update(ctx, id, func(now string) (string, string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #deposit_paid = :deposit_paid, #updated_at = :updated_at"
		removeExpr := "REMOVE #paid_date"
		vals := map[string]types.AttributeValue{
			":status":       &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPending)},
			":deposit_paid": &types.AttributeValueMemberBOOL{Value: false},
			":updated_at":   &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":       "status",
			"#deposit_paid": "deposit_paid",
			"#paid_date":    "paid_date",
			"#updated_at":   "updated_at",
		}
		return expr, removeExpr, vals, names
	})
}

// Delete removes the invoice row and then releases the quote's
// active-invoice pointer. The pointer clear is conditioned on it still
// naming this invoice; losing that condition just means someone else
// already repointed the quote, which is fine.
func (r *InvoiceDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, wrapUnavailable(err)
	}
	if len(out.Attributes) == 0 {
		return false, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return true, nil
	}
	if it.QuoteID != "" {
		r.releaseQuotePointer(ctx, it.QuoteID, id)
	}
	return true, nil
}

func (r *InvoiceDynamoRepository) releaseQuotePointer(ctx context.Context, quoteID, invoiceID string) {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.quotesTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: quoteID},
		},
		ConditionExpression: aws.String("#invoice_id = :invoice_id"),
		UpdateExpression:    aws.String("REMOVE #invoice_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":invoice_id": &types.AttributeValueMemberS{Value: invoiceID},
		},
		ExpressionAttributeNames: map[string]string{
			"#invoice_id": "invoice_id",
		},
	})
	if err != nil && !isConditionalCheckFailed(err) {
		log.Printf("[invoice][repo] failed releasing quote pointer quote_id=%s invoice_id=%s err=%v", quoteID, invoiceID, err)
	}
}

func (r *InvoiceDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (setExpr, removeExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Invoice, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	setExpr, removeExpr, values, names := build(now)
	updateExpr := setExpr
	if removeExpr != "" {
		updateExpr = setExpr + " " + removeExpr
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, wrapUnavailable(err)
	}
	if len(out.Attributes) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it)
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	it := invoiceItem{
		ID:          inv.ID,
		QuoteID:     inv.QuoteID,
		Customer:    inv.Customer,
		Amount:      moneyAttr(inv.Amount),
		Status:      string(inv.Status),
		DepositPaid: inv.DepositPaid,
		CreatedAt:   inv.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   inv.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if inv.DepositAmount != nil {
		v := moneyAttr(*inv.DepositAmount)
		it.DepositAmount = &v
	}
	if inv.RemainingAmount != nil {
		v := moneyAttr(*inv.RemainingAmount)
		it.RemainingAmount = &v
	}
	if inv.PaidDate != nil {
		it.PaidDate = inv.PaidDate.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromInvoiceItem(it invoiceItem) (entities.Invoice, error) {
	status, err := entities.ParseInvoiceStatus(it.Status)
	if err != nil {
		return entities.Invoice{}, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	inv := entities.Invoice{
		ID:          it.ID,
		QuoteID:     it.QuoteID,
		Customer:    it.Customer,
		Amount:      float64(it.Amount),
		Status:      status,
		DepositPaid: it.DepositPaid,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if it.DepositAmount != nil {
		v := float64(*it.DepositAmount)
		inv.DepositAmount = &v
	}
	if it.RemainingAmount != nil {
		v := float64(*it.RemainingAmount)
		inv.RemainingAmount = &v
	}
	if it.PaidDate != "" {
		if t, err := time.Parse(time.RFC3339Nano, it.PaidDate); err == nil {
			inv.PaidDate = &t
		}
	}
	return inv, nil
}
