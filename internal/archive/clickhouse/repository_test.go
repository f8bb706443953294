package clickhouse

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
)

// fakeBatch records appended rows. Unused driver.Batch methods panic.
type fakeBatch struct {
	driver.Batch
	rows      [][]any
	appendErr error
	sendErr   error
	sent      bool
}

func (b *fakeBatch) Append(v ...any) error {
	if b.appendErr != nil {
		return b.appendErr
	}
	b.rows = append(b.rows, v)
	return nil
}

func (b *fakeBatch) Send() error {
	b.sent = true
	return b.sendErr
}

type fakeRow struct {
	driver.Row
	values []uint64
	err    error
}

func (r fakeRow) Err() error { return r.err }

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		*d.(*uint64) = r.values[i]
	}
	return nil
}

func testBlocks() []model.PreBlock {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []model.PreBlock{
		{
			Header: model.PreBlockHeader{ID: 4, Metadata: model.PreBlockMetadata{Author: 9, Timestamp: ts}},
			Transactions: []model.Transaction{
				model.NewTransaction([]byte("ab")),
				model.NewTransaction([]byte("cde")),
			},
		},
		{
			Header: model.PreBlockHeader{ID: 5, Metadata: model.PreBlockMetadata{Author: 9, Timestamp: ts}},
		},
	}
}

func TestRepository_InsertPreBlocks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sendErr := errors.New("send failed")

	tests := []struct {
		name     string
		blocks   []model.PreBlock
		setup    func(conn *MockConn, batch *fakeBatch)
		wantErr  error
		wantRows int
	}{
		{
			name:   "empty input skips the connection",
			blocks: nil,
			setup:  func(*MockConn, *fakeBatch) {},
		},
		{
			name:   "prepare error",
			blocks: testBlocks(),
			setup: func(conn *MockConn, _ *fakeBatch) {
				conn.EXPECT().PrepareBatch(ctx, insertPreBlocksQuery).Return(nil, sendErr)
			},
			wantErr: sendErr,
		},
		{
			name:   "send error",
			blocks: testBlocks(),
			setup: func(conn *MockConn, batch *fakeBatch) {
				batch.sendErr = sendErr
				conn.EXPECT().PrepareBatch(ctx, insertPreBlocksQuery).Return(batch, nil)
			},
			wantErr:  sendErr,
			wantRows: 2,
		},
		{
			name:   "success",
			blocks: testBlocks(),
			setup: func(conn *MockConn, batch *fakeBatch) {
				conn.EXPECT().PrepareBatch(ctx, insertPreBlocksQuery).Return(batch, nil)
			},
			wantRows: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			conn := NewMockConn(ctrl)
			metrics := NewMockMetrics(ctrl)
			batch := &fakeBatch{}
			tt.setup(conn, batch)
			metrics.EXPECT().
				Observe("insert_pre_blocks", gomock.Any(), gomock.AssignableToTypeOf(time.Time{})).
				Do(func(_ string, err error, _ time.Time) {
					if !errors.Is(err, tt.wantErr) {
						t.Fatalf("observed error = %v, want %v", err, tt.wantErr)
					}
				})

			repo := &Repository{conn: conn, metrics: metrics}
			err := repo.InsertPreBlocks(ctx, tt.blocks)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("InsertPreBlocks() error = %v, want %v", err, tt.wantErr)
			}
			if len(batch.rows) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(batch.rows), tt.wantRows)
			}
			if tt.wantRows > 0 {
				first := batch.rows[0]
				if first[0] != uint64(4) || first[1] != uint64(9) || first[3] != uint32(2) || first[4] != uint64(5) {
					t.Fatalf("first row = %v", first)
				}
			}
		})
	}
}

func TestRepository_InsertTransactions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl := gomock.NewController(t)
	conn := NewMockConn(ctrl)
	metrics := NewMockMetrics(ctrl)
	batch := &fakeBatch{}

	conn.EXPECT().PrepareBatch(ctx, insertTransactionsQuery).Return(batch, nil)
	metrics.EXPECT().Observe("insert_transactions", nil, gomock.AssignableToTypeOf(time.Time{}))

	repo := &Repository{conn: conn, metrics: metrics}
	if err := repo.InsertTransactions(ctx, testBlocks()); err != nil {
		t.Fatalf("InsertTransactions() error = %v", err)
	}
	if !batch.sent || len(batch.rows) != 2 {
		t.Fatalf("sent = %v rows = %d, want sent with 2 rows", batch.sent, len(batch.rows))
	}
	second := batch.rows[1]
	if second[0] != uint64(4) || second[1] != uint32(1) || second[3] != "cde" {
		t.Fatalf("second row = %v", second)
	}
	if hash, _ := second[2].(string); len(hash) != 64 || strings.Trim(hash, "0123456789abcdef") != "" {
		t.Fatalf("hash column = %q, want 64 hex chars", second[2])
	}
}

func TestRepository_InsertTransactionsSkipsHeaderOnly(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	metrics := NewMockMetrics(ctrl)
	metrics.EXPECT().Observe("insert_transactions", nil, gomock.Any())

	repo := &Repository{conn: NewMockConn(ctrl), metrics: metrics}
	blocks := testBlocks()[1:]
	if err := repo.InsertTransactions(context.Background(), blocks); err != nil {
		t.Fatalf("InsertTransactions() error = %v", err)
	}
}

func TestRepository_MaxPreBlockID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	queryErr := errors.New("query failed")

	tests := []struct {
		name    string
		row     fakeRow
		want    uint64
		wantOK  bool
		wantErr error
	}{
		{name: "empty archive", row: fakeRow{values: []uint64{0, 0}}},
		{name: "origin archived", row: fakeRow{values: []uint64{1, 0}}, wantOK: true},
		{name: "populated", row: fakeRow{values: []uint64{12, 11}}, want: 11, wantOK: true},
		{name: "query error", row: fakeRow{err: queryErr}, wantErr: queryErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			conn := NewMockConn(ctrl)
			metrics := NewMockMetrics(ctrl)
			conn.EXPECT().QueryRow(ctx, maxPreBlockIDQuery).Return(tt.row)
			metrics.EXPECT().Observe("max_pre_block_id", gomock.Any(), gomock.Any())

			repo := &Repository{conn: conn, metrics: metrics}
			got, ok, err := repo.MaxPreBlockID(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("MaxPreBlockID() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("MaxPreBlockID() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewRepositoryRequiresDSN(t *testing.T) {
	t.Parallel()

	if _, err := NewRepository("", nil); err == nil {
		t.Fatal("NewRepository(\"\") error = nil, want error")
	}
}
