/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package ddb provides a DynamoDB-backed session backend.
package ddb

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/suparena/datastore"
	"github.com/suparena/datastore/errors"
)

// Connection detail keys understood by the factory.
const (
	DetailRegion    = "region"
	DetailAccessKey = "accessKey"
	DetailSecretKey = "secretKey"
	DetailEndpoint  = "endpoint"
	DetailTable     = "table"
)

// pkAttribute is the partition key attribute items are stored under.
const pkAttribute = "PK"

// Factory creates DynamoDB-backed sessions from connection details.
type Factory struct{}

// NewFactory creates a new DynamoDB session factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateSession builds a DynamoDB client from the given details. Details:
// table (required), region, accessKey/secretKey (static credentials; the
// default credential chain applies when absent), endpoint (override for
// DynamoDB Local).
func (f *Factory) CreateSession(ctx context.Context, connectionDetails map[string]string) (datastore.Session, error) {
	table := connectionDetails[DetailTable]
	if table == "" {
		return nil, errors.NewValidationError(DetailTable, "table name is required")
	}

	var opts []func(*config.LoadOptions) error
	if region := connectionDetails[DetailRegion]; region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if accessKey := connectionDetails[DetailAccessKey]; accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, connectionDetails[DetailSecretKey], ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.NewConnectionFailedError("dynamodb", fmt.Errorf("failed to load AWS configuration: %w", err))
	}

	var clientOpts []func(*sdk.Options)
	if endpoint := connectionDetails[DetailEndpoint]; endpoint != "" {
		clientOpts = append(clientOpts, func(o *sdk.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	session := &Session{
		id:        uuid.NewString(),
		details:   connectionDetails,
		client:    sdk.NewFromConfig(cfg, clientOpts...),
		tableName: table,
	}
	log.Debug().Str("session", session.id).Str("table", table).Msg("dynamodb session created")
	return session, nil
}

// NewSessionFromClient wraps an existing DynamoDB client in a session.
func NewSessionFromClient(client *sdk.Client, tableName string) *Session {
	return &Session{
		id:        uuid.NewString(),
		client:    client,
		tableName: tableName,
	}
}

// Session implements datastore.KeyValueSession on a single DynamoDB table.
// Entities are marshaled with attributevalue and stored under a PK attribute
// carrying the entity key.
type Session struct {
	id        string
	details   map[string]string
	client    *sdk.Client
	tableName string

	mu           sync.RWMutex
	interceptors datastore.InterceptorChain
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// ConnectionDetails returns the configuration the session was created with.
func (s *Session) ConnectionDetails() map[string]string {
	return s.details
}

// Client exposes the underlying DynamoDB client for operations beyond the
// key-value surface.
func (s *Session) Client() *sdk.Client {
	return s.client
}

// SetEntityInterceptors installs the interceptor chain.
func (s *Session) SetEntityInterceptors(interceptors []datastore.EntityInterceptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interceptors = interceptors
}

// EntityInterceptors returns the installed chain.
func (s *Session) EntityInterceptors() []datastore.EntityInterceptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interceptors
}

func (s *Session) chain() datastore.InterceptorChain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interceptors
}

// Put stores an entity under key. DynamoDB PutItem is an upsert, so the
// insert hook runs; callers needing update semantics should read first.
func (s *Session) Put(ctx context.Context, key string, entity any) error {
	if err := s.chain().BeforeInsert(ctx, key, entity); err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}
	item[pkAttribute] = &types.AttributeValueMemberS{Value: key}

	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem error: %w", err)
	}
	return nil
}

// Get retrieves the entity stored under key into out.
func (s *Session) Get(ctx context.Context, key string, out any) error {
	result, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			pkAttribute: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("GetItem error: %w", err)
	}
	if result.Item == nil {
		return errors.NewNotFoundError("entity", key)
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// Delete removes the entity stored under key, running BeforeDelete first.
func (s *Session) Delete(ctx context.Context, key string) error {
	if err := s.chain().BeforeDelete(ctx, key); err != nil {
		return err
	}

	_, err := s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			pkAttribute: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("DeleteItem error: %w", err)
	}
	return nil
}

// Disconnect is a no-op for DynamoDB; the SDK client holds no persistent
// connection. Callers that bound the session to a context should still call
// datastore.ClearCurrentConnection.
func (s *Session) Disconnect(ctx context.Context) error {
	log.Debug().Str("session", s.id).Msg("dynamodb session disconnecting")
	return nil
}
