package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventPlanner/pkg/dbmetrics"
)

type txStub struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
}

func (t *txStub) Commit() error {
	t.committed = true
	return nil
}

func (t *txStub) Rollback() error {
	t.rolledBack = true
	return nil
}

type beginnerStub struct {
	tx    *txStub
	opts  *sql.TxOptions
	begun int
	err   error
}

func (b *beginnerStub) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.begun++
	b.opts = opts
	return b.tx, nil
}

func TestTransactionManager_Commit(t *testing.T) {
	db := &beginnerStub{tx: &txStub{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)

	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestTransactionManager_Rollback(t *testing.T) {
	db := &beginnerStub{tx: &txStub{}}
	m := NewTransactionManager(db)
	fnErr := errors.New("insert failed")

	err := m.Do(context.Background(), func(ctx context.Context) error { return fnErr })

	assert.ErrorIs(t, err, fnErr)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestTransactionManager_NestedReusesTransaction(t *testing.T) {
	db := &beginnerStub{tx: &txStub{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})
	require.NoError(t, err)

	assert.Equal(t, 1, db.begun)
	assert.Nil(t, db.opts)
}

func TestTransactionManager_BeginError(t *testing.T) {
	m := NewTransactionManager(&beginnerStub{err: errors.New("connection refused")})

	called := false
	err := m.Do(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}
