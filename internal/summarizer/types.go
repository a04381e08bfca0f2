package summarizer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Enricher resolves missing previous outputs of UTXO transactions.
	Enricher interface {
		Enrich(ctx context.Context, txs ...*transaction.UtxoTransaction) error
	}

	// Recorder keeps the outputs of summarized UTXO transactions for later enrichment.
	Recorder interface {
		Record(ctx context.Context, tx *transaction.UtxoTransaction) error
	}

	Metrics interface {
		ObserveDecode(c string, err error)
		ObserveSummary(c, kind, status string)
		ObserveRequest(c string, err error, started time.Time)
	}
)
