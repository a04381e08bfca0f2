package httpapi

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multichain-client/internal/summarizer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Summarizer interface {
		Summarize(ctx context.Context, req summarizer.Request) (summarizer.Result, error)
		SummarizeBatch(ctx context.Context, reqs []summarizer.Request) ([]summarizer.Result, error)
	}

	Metrics interface {
		Observe(route string, code int, started time.Time)
	}
)
