package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/multichain-client/internal/enrichment"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
)

// Store binds the repository to one chain and network. It serves as both an enrichment
// source and a sink.
type Store struct {
	repo    *Repository
	chain   chain.Chain
	network chain.Network
}

var (
	_ enrichment.Source = (*Store)(nil)
	_ enrichment.Sink   = (*Store)(nil)
)

func NewStore(repo *Repository, c chain.Chain, network chain.Network) *Store {
	return &Store{repo: repo, chain: c, network: network}
}

func (s *Store) Outputs(ctx context.Context, txids []string) (map[string][]enrichment.Output, error) {
	return s.repo.TransactionOutputsByTxIDs(ctx, s.chain, s.network, txids)
}

func (s *Store) InsertOutputs(ctx context.Context, outputs []enrichment.Output) error {
	return s.repo.InsertTransactionOutputs(ctx, s.chain, s.network, outputs)
}
