// Package apitest holds the contract suite every api.Node variant must pass.
package apitest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/goodnatureofminers/dsn-sequencer/internal/api"
	"github.com/goodnatureofminers/dsn-sequencer/internal/model"
)

// Harness exposes the node under test plus the sealing trigger, which is not part
// of the capability contracts.
type Harness interface {
	NewNode(t testing.TB) api.Node
	Seal(ctx context.Context) (model.PreBlockHeader, error)
}

// Suite runs every contract check against a fresh harness per test.
type Suite struct {
	suite.Suite

	// NewHarness builds an isolated sequencer with an empty store.
	NewHarness func(t *testing.T) Harness

	h   Harness
	ctx context.Context
}

// Run executes s.
func Run(t *testing.T, newHarness func(t *testing.T) Harness) {
	suite.Run(t, &Suite{NewHarness: newHarness})
}

func (s *Suite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	s.T().Cleanup(cancel)
	s.ctx = ctx
	s.h = s.NewHarness(s.T())
}

func (s *Suite) submit(node api.Node, payloads ...[]byte) []model.Transaction {
	txs := make([]model.Transaction, 0, len(payloads))
	for _, p := range payloads {
		tx := model.NewTransaction(p)
		s.Require().NoError(node.SubmitTransaction(s.ctx, tx))
		txs = append(txs, tx)
	}
	return txs
}

func (s *Suite) seal() model.PreBlockHeader {
	header, err := s.h.Seal(s.ctx)
	s.Require().NoError(err)
	return header
}

func (s *Suite) TestMissingHead() {
	node := s.h.NewNode(s.T())

	_, err := node.GetPreBlocksHead(s.ctx)
	s.Require().ErrorIs(err, api.ErrNotFound)

	_, err = node.GetPreBlocks(s.ctx, model.OriginID, 10)
	s.Require().ErrorIs(err, api.ErrNotFound)
}

func (s *Suite) TestSubmitSealQuery() {
	node := s.h.NewNode(s.T())
	txs := s.submit(node, []byte{0x01}, []byte{0x02})

	header := s.seal()
	s.Require().Equal(model.OriginID, header.ID)

	head, err := node.GetPreBlocksHead(s.ctx)
	s.Require().NoError(err)
	s.Require().True(head.Equal(header), "head %+v, sealed %+v", head, header)

	blocks, err := node.GetPreBlocks(s.ctx, model.OriginID, 10)
	s.Require().NoError(err)
	s.Require().Len(blocks, 1)
	s.Require().True(blocks[0].Equal(model.PreBlock{Header: header, Transactions: txs}))

	_, err = node.GetPreBlocks(s.ctx, model.OriginID+1, 10)
	s.Require().ErrorIs(err, api.ErrNotFound)
}

func (s *Suite) TestIDsIncreaseByOne() {
	node := s.h.NewNode(s.T())
	for i := 0; i < 5; i++ {
		s.submit(node, []byte{byte(i)})
		s.Require().Equal(model.OriginID+uint64(i), s.seal().ID)
	}

	blocks, err := node.GetPreBlocks(s.ctx, model.OriginID+1, 3)
	s.Require().NoError(err)
	s.Require().Len(blocks, 3)
	for i, block := range blocks {
		s.Require().Equal(model.OriginID+1+uint64(i), block.Header.ID)
		s.Require().Equal([]byte{byte(i + 1)}, block.Transactions[0].Bytes())
	}

	blocks, err = node.GetPreBlocks(s.ctx, model.OriginID, 0)
	s.Require().NoError(err)
	s.Require().Empty(blocks)
}

func (s *Suite) TestClearQueueThenSealIsHeaderOnly() {
	node := s.h.NewNode(s.T())
	s.submit(node, []byte{1}, []byte{2})
	s.Require().NoError(node.ClearQueue(s.ctx))

	header := s.seal()
	blocks, err := node.GetPreBlocks(s.ctx, header.ID, 1)
	s.Require().NoError(err)
	s.Require().Len(blocks, 1)
	s.Require().Empty(blocks[0].Transactions)
}

func (s *Suite) TestHandlesHaveIndependentCursors() {
	first := s.h.NewNode(s.T())
	second := s.h.NewNode(s.T())

	sealed := []model.PreBlockHeader{s.seal(), s.seal(), s.seal()}

	for _, want := range sealed {
		got, err := first.NextPreBlock(s.ctx)
		s.Require().NoError(err)
		s.Require().True(got.Equal(want), "first handle got %+v, want %+v", got, want)
	}

	got, err := second.NextPreBlock(s.ctx)
	s.Require().NoError(err)
	s.Require().True(got.Equal(sealed[0]), "second handle got %+v, want %+v", got, sealed[0])
}

func (s *Suite) TestNextPreBlockHonorsContext() {
	node := s.h.NewNode(s.T())

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()
	_, err := node.NextPreBlock(ctx)
	s.Require().Error(err)
	s.Require().True(errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled), "got %v", err)
}
