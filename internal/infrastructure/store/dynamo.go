package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// DynamoLedgerStore implements LedgerStore on DynamoDB.
//
// Sizes table: partition key "id", with a GSI "item_id-index" on item_id.
// Movements table: partition key "item_id", sort key "seq", with a GSI
// "promoter_id-index" on promoter_id/seq.
//
// The conditional-update requirement maps directly onto a
// TransactWriteItems call: one Update with a ConditionExpression on the
// counter bound plus one Put for the movement row, committed together.
type DynamoLedgerStore struct {
	client         *dynamodb.Client
	sizesTable     string
	movementsTable string
}

const (
	sizesByItemIndex         = "item_id-index"
	movementsByPromoterIndex = "promoter_id-index"
)

type dynamoMovement struct {
	ItemID     string `dynamodbav:"item_id"`
	Seq        int64  `dynamodbav:"seq"`
	ID         string `dynamodbav:"id"`
	Kind       string `dynamodbav:"transaction_type"`
	SizeID     string `dynamodbav:"item_size_id"`
	Quantity   int    `dynamodbav:"quantity"`
	PromoterID string `dynamodbav:"promoter_id,omitempty"`
	EmployeeID string `dynamodbav:"employee_id"`
	Note       string `dynamodbav:"notes,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
}

type dynamoSize struct {
	ID            string `dynamodbav:"id"`
	ItemID        string `dynamodbav:"item_id"`
	Size          string `dynamodbav:"size"`
	Original      int    `dynamodbav:"original_quantity"`
	Available     int    `dynamodbav:"available_quantity"`
	InCirculation int    `dynamodbav:"in_circulation"`
}

func NewDynamoLedgerStore(client *dynamodb.Client, sizesTable, movementsTable string) *DynamoLedgerStore {
	return &DynamoLedgerStore{
		client:         client,
		sizesTable:     sizesTable,
		movementsTable: movementsTable,
	}
}

func (s *DynamoLedgerStore) ApplyMovement(ctx context.Context, m *Movement) (*Movement, error) {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now()
	// Wall-clock nanoseconds stand in for the SQL serial. Good enough as a
	// per-item ordering key at human movement rates.
	m.Seq = m.CreatedAt.UnixNano()

	update, err := s.counterUpdate(m)
	if err != nil {
		return nil, err
	}

	record := dynamoMovement{
		ItemID:     m.ItemID,
		Seq:        m.Seq,
		ID:         m.ID,
		Kind:       string(m.Kind),
		SizeID:     m.SizeID,
		Quantity:   m.Quantity,
		PromoterID: m.PromoterID,
		EmployeeID: m.EmployeeID,
		Note:       m.Note,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("marshaling movement: %w", err)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: update},
			{Put: &types.Put{
				TableName: aws.String(s.movementsTable),
				Item:      av,
			}},
		},
	})
	if err != nil {
		return nil, s.mapTransactError(ctx, err, m)
	}

	stored := *m
	return &stored, nil
}

// counterUpdate builds the conditional counter mutation for the movement kind.
func (s *DynamoLedgerStore) counterUpdate(m *Movement) (*types.Update, error) {
	qty := &types.AttributeValueMemberN{Value: strconv.Itoa(m.Quantity)}
	update := &types.Update{
		TableName: aws.String(s.sizesTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: m.SizeID},
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{":q": qty},
	}

	switch m.Kind {
	case KindTakeOut:
		update.UpdateExpression = aws.String(
			"SET available_quantity = available_quantity - :q, in_circulation = in_circulation + :q")
		update.ConditionExpression = aws.String("attribute_exists(id) AND available_quantity >= :q")
	case KindReturn:
		update.UpdateExpression = aws.String(
			"SET in_circulation = in_circulation - :q, available_quantity = available_quantity + :q")
		update.ConditionExpression = aws.String("attribute_exists(id) AND in_circulation >= :q")
	case KindBurn:
		update.UpdateExpression = aws.String("SET in_circulation = in_circulation - :q")
		update.ConditionExpression = aws.String("attribute_exists(id) AND in_circulation >= :q")
	case KindRestock:
		update.UpdateExpression = aws.String(
			"SET available_quantity = available_quantity + :q, original_quantity = original_quantity + :q")
		update.ConditionExpression = aws.String("attribute_exists(id)")
	default:
		return nil, fmt.Errorf("unknown movement kind %q", m.Kind)
	}
	return update, nil
}

// mapTransactError folds a failed TransactWriteItems into the store taxonomy.
// A condition failure on the counter update means either a missing size row
// or an exhausted bound; a transaction conflict is retryable.
func (s *DynamoLedgerStore) mapTransactError(ctx context.Context, err error, m *Movement) error {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	for _, reason := range canceled.CancellationReasons {
		if reason.Code == nil {
			continue
		}
		switch *reason.Code {
		case "ConditionalCheckFailed":
			if _, sizeErr := s.SizeByID(ctx, m.SizeID); errors.Is(sizeErr, ErrNotFound) {
				return ErrNotFound
			}
			if m.Kind == KindTakeOut {
				return ErrInsufficientAvailable
			}
			return ErrInsufficientCirculation
		case "TransactionConflict":
			return fmt.Errorf("%w: %v", ErrConflictRetryable, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (s *DynamoLedgerStore) InsertSize(ctx context.Context, size *SizeCounters) error {
	if size.ID == "" {
		size.ID = uuid.New().String()
	}
	av, err := attributevalue.MarshalMap(dynamoSize{
		ID:            size.ID,
		ItemID:        size.ItemID,
		Size:          size.Size,
		Original:      size.Original,
		Available:     size.Available,
		InCirculation: size.InCirculation,
	})
	if err != nil {
		return fmt.Errorf("marshaling size: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.sizesTable),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *DynamoLedgerStore) SizeByID(ctx context.Context, sizeID string) (*SizeCounters, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.sizesTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: sizeID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var ds dynamoSize
	if err := attributevalue.UnmarshalMap(result.Item, &ds); err != nil {
		return nil, fmt.Errorf("unmarshaling size: %w", err)
	}
	return ds.toSizeCounters(), nil
}

func (s *DynamoLedgerStore) SizesByItem(ctx context.Context, itemID string) ([]SizeCounters, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.sizesTable),
		IndexName:              aws.String(sizesByItemIndex),
		KeyConditionExpression: aws.String("item_id = :iid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":iid": &types.AttributeValueMemberS{Value: itemID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var sizes []SizeCounters
	for _, item := range result.Items {
		var ds dynamoSize
		if err := attributevalue.UnmarshalMap(item, &ds); err != nil {
			return nil, fmt.Errorf("unmarshaling size: %w", err)
		}
		sizes = append(sizes, *ds.toSizeCounters())
	}
	return sizes, nil
}

func (s *DynamoLedgerStore) MovementsByPromoter(ctx context.Context, promoterID string) ([]Movement, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.movementsTable),
		IndexName:              aws.String(movementsByPromoterIndex),
		KeyConditionExpression: aws.String("promoter_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: promoterID},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return unmarshalMovements(result.Items)
}

func (s *DynamoLedgerStore) MovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]Movement, error) {
	if limit <= 0 {
		limit = 50
	}
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.movementsTable),
		KeyConditionExpression: aws.String("item_id = :iid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":iid": &types.AttributeValueMemberS{Value: itemID},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(int32(limit + offset)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	movements, err := unmarshalMovements(result.Items)
	if err != nil {
		return nil, err
	}
	if offset >= len(movements) {
		return nil, nil
	}
	return movements[offset:], nil
}

func (ds dynamoSize) toSizeCounters() *SizeCounters {
	return &SizeCounters{
		ID:            ds.ID,
		ItemID:        ds.ItemID,
		Size:          ds.Size,
		Original:      ds.Original,
		Available:     ds.Available,
		InCirculation: ds.InCirculation,
	}
}

func unmarshalMovements(items []map[string]types.AttributeValue) ([]Movement, error) {
	var movements []Movement
	for _, item := range items {
		var dm dynamoMovement
		if err := attributevalue.UnmarshalMap(item, &dm); err != nil {
			return nil, fmt.Errorf("unmarshaling movement: %w", err)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, dm.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing movement timestamp: %w", err)
		}
		movements = append(movements, Movement{
			Seq:        dm.Seq,
			ID:         dm.ID,
			Kind:       MovementKind(dm.Kind),
			ItemID:     dm.ItemID,
			SizeID:     dm.SizeID,
			Quantity:   dm.Quantity,
			PromoterID: dm.PromoterID,
			EmployeeID: dm.EmployeeID,
			Note:       dm.Note,
			CreatedAt:  createdAt,
		})
	}
	return movements, nil
}
