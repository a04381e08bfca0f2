package enrichment

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source resolves the outputs of previous transactions keyed by txid. Txids the source
	// does not know are absent from the result.
	Source interface {
		Outputs(ctx context.Context, txids []string) (map[string][]Output, error)
	}

	// Sink stores outputs so that transactions spending them later can be enriched locally.
	Sink interface {
		InsertOutputs(ctx context.Context, outputs []Output) error
	}

	Metrics interface {
		ObserveEnrich(err error, missing, unresolved int, started time.Time)
		ObserveRecord(err error, outputs int)
	}
)
