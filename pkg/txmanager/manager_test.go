package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	begun []*fakeTx
	opts  []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	b.begun = append(b.begun, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	mgr := NewTransactionManager(db)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.begun, 1)
	assert.True(t, db.begun[0].committed)
	assert.False(t, db.begun[0].rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, db.opts[0].Isolation)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	mgr := NewTransactionManager(db)
	boom := errors.New("boom")

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	require.Len(t, db.begun, 1)
	assert.True(t, db.begun[0].rolledBack)
	assert.False(t, db.begun[0].committed)
}

func TestTransactionManager_NestedCallReusesTransaction(t *testing.T) {
	db := &fakeBeginner{}
	mgr := NewTransactionManager(db)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.Do(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Len(t, db.begun, 1)
}

func TestTransactionManager_ReadOnly(t *testing.T) {
	db := &fakeBeginner{}
	mgr := NewTransactionManager(db)

	require.NoError(t, mgr.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil }))
	require.Len(t, db.opts, 1)
	assert.True(t, db.opts[0].ReadOnly)
}
