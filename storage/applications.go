package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ApplicationStorage interface {
	Get(ctx context.Context, id string) (*Application, error)
	GetByEmail(ctx context.Context, email string) (*Application, error)
	GetAll(ctx context.Context) ([]*Application, error)
	GetByStatus(ctx context.Context, status string) ([]*Application, error)
	Create(ctx context.Context, app *Application) error
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id string) error
}

type DynamoApplicationStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoApplicationStorage) Get(ctx context.Context, id string) (*Application, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("APPLICATION: failed to marshal key for %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("APPLICATION: GetItem for %s failed: %v", id, err)
		return nil, translateError(err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var app Application
	if err := attributevalue.UnmarshalMap(out.Item, &app); err != nil {
		logging.Log.Errorf("APPLICATION: failed to unmarshal application: %v", err)
		return nil, err
	}
	return &app, nil
}

func (s *DynamoApplicationStorage) GetByEmail(ctx context.Context, email string) (*Application, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("Email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		logging.Log.Errorf("APPLICATION: scan by email failed: %v", err)
		return nil, translateError(err)
	}
	if len(out.Items) == 0 {
		return nil, ErrNotFound
	}

	var app Application
	if err := attributevalue.UnmarshalMap(out.Items[0], &app); err != nil {
		logging.Log.Errorf("APPLICATION: failed to unmarshal application: %v", err)
		return nil, err
	}
	return &app, nil
}

func (s *DynamoApplicationStorage) GetAll(ctx context.Context) ([]*Application, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("APPLICATION: scan failed: %v", err)
		return nil, translateError(err)
	}

	var apps []*Application
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		logging.Log.Errorf("APPLICATION: failed to unmarshal application list: %v", err)
		return nil, err
	}
	return apps, nil
}

func (s *DynamoApplicationStorage) GetByStatus(ctx context.Context, status string) ([]*Application, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("#st = :status"),
		ExpressionAttributeNames: map[string]string{
			"#st": "Status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
		},
	})
	if err != nil {
		logging.Log.Errorf("APPLICATION: scan by status %s failed: %v", status, err)
		return nil, translateError(err)
	}

	var apps []*Application
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		logging.Log.Errorf("APPLICATION: failed to unmarshal application list: %v", err)
		return nil, err
	}
	return apps, nil
}

func (s *DynamoApplicationStorage) Create(ctx context.Context, app *Application) error {
	item, err := attributevalue.MarshalMap(app)
	if err != nil {
		logging.Log.Errorf("APPLICATION: failed to marshal application: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("APPLICATION: application %s already exists", app.ID)
			return ErrAlreadyExists
		}
		logging.Log.Errorf("APPLICATION: failed to create application: %v", err)
		return translateError(err)
	}
	return nil
}

// Update writes the document back with a compare-and-swap on Version so two
// judges rating the same team cannot overwrite each other's append. The caller
// must pass the application at the version it originally read; the stored copy
// ends up at Version+1.
func (s *DynamoApplicationStorage) Update(ctx context.Context, app *Application) error {
	readVersion := app.Version
	app.Version = readVersion + 1

	item, err := attributevalue.MarshalMap(app)
	if err != nil {
		app.Version = readVersion
		logging.Log.Errorf("APPLICATION: failed to marshal updated application: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) OR Version = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", readVersion)},
		},
	})
	if err != nil {
		app.Version = readVersion
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("APPLICATION: version conflict updating %s at version %d", app.ID, readVersion)
			return ErrVersionConflict
		}
		logging.Log.Errorf("APPLICATION: failed to update application %s: %v", app.ID, err)
		return translateError(err)
	}
	return nil
}

func (s *DynamoApplicationStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("APPLICATION: failed to marshal delete key for %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("APPLICATION: failed to delete application %s: %v", id, err)
		return translateError(err)
	}
	logging.Log.Infof("APPLICATION: deleted application %s", id)
	return nil
}
