package storage

import (
	"context"
	"errors"

	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type AccountStorage interface {
	Get(ctx context.Context, email string) (*Account, error)
	GetAll(ctx context.Context) ([]*Account, error)
	Create(ctx context.Context, account *Account) error
	Delete(ctx context.Context, email string) error
}

type DynamoAccountStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoAccountStorage) Get(ctx context.Context, email string) (*Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": email})
	if err != nil {
		logging.Log.Errorf("ACCOUNT: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("ACCOUNT: GetItem failed: %v", err)
		return nil, translateError(err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var account Account
	if err := attributevalue.UnmarshalMap(out.Item, &account); err != nil {
		logging.Log.Errorf("ACCOUNT: failed to unmarshal account: %v", err)
		return nil, err
	}
	return &account, nil
}

func (s *DynamoAccountStorage) GetAll(ctx context.Context) ([]*Account, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("ACCOUNT: scan failed: %v", err)
		return nil, translateError(err)
	}

	var accounts []*Account
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &accounts); err != nil {
		logging.Log.Errorf("ACCOUNT: failed to unmarshal account list: %v", err)
		return nil, err
	}
	return accounts, nil
}

func (s *DynamoAccountStorage) Create(ctx context.Context, account *Account) error {
	item, err := attributevalue.MarshalMap(account)
	if err != nil {
		logging.Log.Errorf("ACCOUNT: failed to marshal account: %v", err)
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
			logging.Log.Warnf("ACCOUNT: account %s already exists", account.Email)
			return ErrAlreadyExists
		}
		logging.Log.Errorf("ACCOUNT: failed to create account: %v", err)
		return translateError(err)
	}
	return nil
}

func (s *DynamoAccountStorage) Delete(ctx context.Context, email string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": email})
	if err != nil {
		logging.Log.Errorf("ACCOUNT: failed to marshal delete key: %v", err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("ACCOUNT: failed to delete account %s: %v", email, err)
		return translateError(err)
	}
	logging.Log.Infof("ACCOUNT: deleted account %s", email)
	return nil
}
