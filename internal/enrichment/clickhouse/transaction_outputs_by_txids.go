package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multichain-client/internal/enrichment"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/safe"
)

// TransactionOutputsByTxIDs returns stored outputs for multiple transactions.
func (r *Repository) TransactionOutputsByTxIDs(ctx context.Context, c chain.Chain, network chain.Network, txids []string) (result map[string][]enrichment.Output, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("transaction_outputs_by_txids", c, network, err, start)
	}()

	result = make(map[string][]enrichment.Output, len(txids))
	if len(txids) == 0 {
		return result, nil
	}

	const query = `
SELECT
	txid,
	output_index,
	anyLast(value) AS value,
	anyLast(addresses) AS addresses
FROM utxo_transaction_outputs_lookup
WHERE chain = ? AND network = ? AND txid IN ?
GROUP BY
	txid,
	output_index
ORDER BY output_index ASC
SETTINGS max_threads = 1`

	rows, err := r.conn.Query(ctx, query, string(c), string(network), txids)
	if err != nil {
		return nil, fmt.Errorf("query transaction outputs by txids: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			output enrichment.Output
			value  uint64
		)
		if err = rows.Scan(
			&output.TxID,
			&output.Index,
			&value,
			&output.Addresses,
		); err != nil {
			return nil, fmt.Errorf("scan transaction output: %w", err)
		}
		if output.Value, err = safe.Int64(value); err != nil {
			return nil, fmt.Errorf("output %s:%d value: %w", output.TxID, output.Index, err)
		}

		result[output.TxID] = append(result[output.TxID], output)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction outputs: %w", err)
	}

	return result, nil
}
