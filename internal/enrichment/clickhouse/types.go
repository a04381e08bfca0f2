package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-client/pkg/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, c chain.Chain, network chain.Network, err error, started time.Time)
	}

	// Conn is the part of a ClickHouse connection the repository uses.
	Conn interface {
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Close() error
	}

	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}

	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}
)
