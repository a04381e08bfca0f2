package enrichment

import (
	"context"
	"fmt"
)

// FallbackSource asks each source in order for the txids the previous ones did not return.
type FallbackSource []Source

// Outputs implements Source.
func (f FallbackSource) Outputs(ctx context.Context, txids []string) (map[string][]Output, error) {
	result := make(map[string][]Output, len(txids))
	pending := txids
	for i, source := range f {
		if len(pending) == 0 {
			break
		}
		found, err := source.Outputs(ctx, pending)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		next := pending[:0:0]
		for _, txid := range pending {
			if outs, ok := found[txid]; ok {
				result[txid] = outs
				continue
			}
			next = append(next, txid)
		}
		pending = next
	}
	return result, nil
}
