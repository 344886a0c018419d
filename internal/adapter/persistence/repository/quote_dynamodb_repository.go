package repository

import (
	"context"
	"fmt"
	"time"

	"freelance_billing/internal/domain/entities"
	"freelance_billing/internal/domain/money"
	"freelance_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotesTableName = "quotes"

type quotePackageItem struct {
	ID    string    `dynamodbav:"id"`
	Name  string    `dynamodbav:"name"`
	Price moneyAttr `dynamodbav:"price"`
}

type quoteItem struct {
	ID            string            `dynamodbav:"id"`
	Name          string            `dynamodbav:"name"`
	Email         string            `dynamodbav:"email"`
	Description   string            `dynamodbav:"description,omitempty"`
	EstimatedCost moneyAttr         `dynamodbav:"estimated_cost"`
	Package       *quotePackageItem `dynamodbav:"package,omitempty"`
	Rush          bool              `dynamodbav:"rush"`
	Status        string            `dynamodbav:"status"`
	InvoiceID     string            `dynamodbav:"invoice_id,omitempty"`
	CreatedAt     string            `dynamodbav:"created_at"`
	UpdatedAt     string            `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, the external identifier)
//
// The quote row also carries the active-invoice pointer (invoice_id);
// the approval transaction conditions on its absence, which is what
// enforces one active invoice per quote.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Quote{}, fmt.Errorf("%w: %s", interfaces.ErrDuplicateQuoteID, q.ID)
		}
		return entities.Quote{}, wrapUnavailable(err)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
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
		return entities.Quote{}, wrapUnavailable(err)
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, wrapUnavailable(err)
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:            q.ID,
		Name:          q.Name,
		Email:         q.Email,
		Description:   q.Description,
		EstimatedCost: moneyAttr(q.EstimatedCost),
		Rush:          q.Rush,
		Status:        string(q.Status),
		InvoiceID:     q.InvoiceID,
		CreatedAt:     q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if q.Package != nil {
		it.Package = &quotePackageItem{
			ID:    q.Package.ID,
			Name:  q.Package.Name,
			Price: moneyAttr(money.Round2(q.Package.Price)),
		}
	}
	return it
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	// Free-text status from storage must map onto the closed set;
	// unknown values are rejected, never passed through.
	status, err := entities.ParseQuoteStatus(it.Status)
	if err != nil {
		return entities.Quote{}, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	q := entities.Quote{
		ID:            it.ID,
		Name:          it.Name,
		Email:         it.Email,
		Description:   it.Description,
		EstimatedCost: float64(it.EstimatedCost),
		Rush:          it.Rush,
		Status:        status,
		InvoiceID:     it.InvoiceID,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
	if it.Package != nil {
		q.Package = &entities.QuotePackage{
			ID:    it.Package.ID,
			Name:  it.Package.Name,
			Price: float64(it.Package.Price),
		}
	}
	return q, nil
}
