package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multichain-client/internal/enrichment"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/safe"
)

// InsertTransactionOutputs stores transaction outputs.
func (r *Repository) InsertTransactionOutputs(ctx context.Context, c chain.Chain, network chain.Network, outputs []enrichment.Output) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transaction_outputs", c, network, err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	const query = `INSERT INTO utxo_transaction_outputs_lookup (
	chain,
	network,
	txid,
	output_index,
	value,
	addresses
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transaction outputs batch: %w", err)
	}
	defer func() {
		if err != nil {
			_ = batch.Abort()
		}
	}()

	for _, output := range outputs {
		value, convErr := safe.Uint64(output.Value)
		if convErr != nil {
			err = fmt.Errorf("output %s:%d value: %w", output.TxID, output.Index, convErr)
			return err
		}
		addresses := output.Addresses
		if addresses == nil {
			addresses = []string{}
		}
		if err = batch.Append(
			string(c),
			string(network),
			output.TxID,
			output.Index,
			value,
			addresses,
		); err != nil {
			return fmt.Errorf("append transaction output: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transaction outputs: %w", err)
	}
	return nil
}
