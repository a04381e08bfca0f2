package enrichment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/goodnatureofminers/multichain-client/pkg/summary"
	"github.com/goodnatureofminers/multichain-client/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	addrA = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	addrB = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
)

var (
	txID1  = strings.Repeat("ab", 32)
	txID2  = strings.Repeat("cd", 32)
	prev1  = strings.Repeat("01", 32)
	prev2  = strings.Repeat("02", 32)
	anyErr = gomock.Any()
	anyTS  = gomock.AssignableToTypeOf(time.Time{})
)

func newTx(t *testing.T, txid string, vin ...transaction.UtxoVin) *transaction.UtxoTransaction {
	t.Helper()
	tx, err := transaction.NewUtxo(chain.BTC, chain.Mainnet, transaction.UtxoRawTransaction{
		TxID: txid,
		Vin:  vin,
		Vout: []btcjson.Vout{
			{Value: 0.0004, N: 0, ScriptPubKey: btcjson.ScriptPubKeyResult{Address: addrB}},
			{Value: 0.0001, N: 1, ScriptPubKey: btcjson.ScriptPubKeyResult{Address: addrA}},
		},
		Blocktime: 1700000000,
	})
	require.NoError(t, err)
	return tx
}

func spending(txid string, vout uint32) transaction.UtxoVin {
	return transaction.UtxoVin{TxID: txid, Vout: vout}
}

func TestService_Enrich(t *testing.T) {
	prevOutputs := map[string][]Output{
		prev1: {
			{TxID: prev1, Index: 0, Value: 50000, Addresses: []string{addrA}},
			{TxID: prev1, Index: 1, Value: 20000, Addresses: []string{addrA}},
		},
		prev2: {
			{TxID: prev2, Index: 0, Value: 1000, Addresses: []string{addrA, addrB}},
		},
	}

	tests := []struct {
		name      string
		opts      Options
		txs       func(t *testing.T) []*transaction.UtxoTransaction
		prepare   func(source *MockSource, metrics *MockMetrics)
		wantErr   bool
		wantSpent [][]summary.AddressAmount
		wantFull  []bool
	}{
		{
			name: "resolves all inputs in one batch",
			txs: func(t *testing.T) []*transaction.UtxoTransaction {
				return []*transaction.UtxoTransaction{newTx(t, txID1, spending(prev1, 0), spending(prev1, 1), spending(prev2, 0))}
			},
			prepare: func(source *MockSource, metrics *MockMetrics) {
				source.EXPECT().Outputs(gomock.Any(), []string{prev1, prev2}).Return(prevOutputs, nil)
				metrics.EXPECT().ObserveEnrich(nil, 3, 0, anyTS)
			},
			wantSpent: [][]summary.AddressAmount{{
				{Address: addrA, Amount: 50000, Utxo: 0},
				{Address: addrA, Amount: 20000, Utxo: 1},
				{Address: "", Amount: 1000, Utxo: 2},
			}},
			wantFull: []bool{true},
		},
		{
			name: "shares previous transactions across transactions",
			txs: func(t *testing.T) []*transaction.UtxoTransaction {
				return []*transaction.UtxoTransaction{
					newTx(t, txID1, spending(prev1, 0)),
					newTx(t, txID2, spending(prev1, 1)),
				}
			},
			prepare: func(source *MockSource, metrics *MockMetrics) {
				source.EXPECT().Outputs(gomock.Any(), []string{prev1}).Return(prevOutputs, nil)
				metrics.EXPECT().ObserveEnrich(nil, 2, 0, anyTS)
			},
			wantSpent: [][]summary.AddressAmount{
				{{Address: addrA, Amount: 50000, Utxo: 0}},
				{{Address: addrA, Amount: 20000, Utxo: 0}},
			},
			wantFull: []bool{true, true},
		},
		{
			name: "splits previous transactions into batches",
			opts: Options{BatchSize: 1, Workers: 2},
			txs: func(t *testing.T) []*transaction.UtxoTransaction {
				return []*transaction.UtxoTransaction{newTx(t, txID1, spending(prev1, 0), spending(prev2, 0))}
			},
			prepare: func(source *MockSource, metrics *MockMetrics) {
				source.EXPECT().Outputs(gomock.Any(), []string{prev1}).Return(map[string][]Output{prev1: prevOutputs[prev1]}, nil)
				source.EXPECT().Outputs(gomock.Any(), []string{prev2}).Return(map[string][]Output{prev2: prevOutputs[prev2]}, nil)
				metrics.EXPECT().ObserveEnrich(nil, 2, 0, anyTS)
			},
			wantSpent: [][]summary.AddressAmount{{
				{Address: addrA, Amount: 50000, Utxo: 0},
				{Address: "", Amount: 1000, Utxo: 1},
			}},
			wantFull: []bool{true},
		},
		{
			name: "unknown previous output stays unknown",
			txs: func(t *testing.T) []*transaction.UtxoTransaction {
				return []*transaction.UtxoTransaction{newTx(t, txID1, spending(prev1, 0), spending(prev1, 7))}
			},
			prepare: func(source *MockSource, metrics *MockMetrics) {
				source.EXPECT().Outputs(gomock.Any(), []string{prev1}).Return(prevOutputs, nil)
				metrics.EXPECT().ObserveEnrich(nil, 2, 1, anyTS)
			},
			wantSpent: [][]summary.AddressAmount{{
				{Address: addrA, Amount: 50000, Utxo: 0},
				{Utxo: 1, Unknown: true},
			}},
			wantFull: []bool{false},
		},
		{
			name: "coinbase needs no source",
			txs: func(t *testing.T) []*transaction.UtxoTransaction {
				return []*transaction.UtxoTransaction{newTx(t, txID1, transaction.UtxoVin{Coinbase: "03a0bb0d"})}
			},
			prepare: func(_ *MockSource, metrics *MockMetrics) {
				metrics.EXPECT().ObserveEnrich(nil, 0, 0, anyTS)
			},
			wantSpent: [][]summary.AddressAmount{{{Utxo: 0}}},
			wantFull:  []bool{true},
		},
		{
			name: "source error",
			txs: func(t *testing.T) []*transaction.UtxoTransaction {
				return []*transaction.UtxoTransaction{newTx(t, txID1, spending(prev1, 0))}
			},
			prepare: func(source *MockSource, metrics *MockMetrics) {
				source.EXPECT().Outputs(gomock.Any(), []string{prev1}).Return(nil, errors.New("node down"))
				metrics.EXPECT().ObserveEnrich(anyErr, 1, 0, anyTS)
			},
			wantErr:   true,
			wantSpent: [][]summary.AddressAmount{{{Utxo: 0, Unknown: true}}},
			wantFull:  []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			source := NewMockSource(ctrl)
			metrics := NewMockMetrics(ctrl)
			tt.prepare(source, metrics)

			txs := tt.txs(t)
			s := NewService(source, metrics, zap.NewNop(), tt.opts)
			err := s.Enrich(context.Background(), txs...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Enrich() error = %v, wantErr %v", err, tt.wantErr)
			}
			for i, tx := range txs {
				assert.Equal(t, tt.wantSpent[i], tx.SpentAmounts())
				assert.Equal(t, tt.wantFull[i], tx.IsFullyEnriched())
				assert.Equal(t, !tt.wantErr, tx.IsEnriched())
			}
		})
	}
}

func TestService_EnrichSkipsEnriched(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	source := NewMockSource(ctrl)
	metrics := NewMockMetrics(ctrl)
	metrics.EXPECT().ObserveEnrich(nil, 0, 0, anyTS)

	tx := newTx(t, txID1, spending(prev1, 0))
	require.NoError(t, tx.Enrich(map[int]transaction.PrevOutput{0: {Address: addrA, Value: 1}}))

	s := NewService(source, metrics, zap.NewNop(), Options{})
	require.NoError(t, s.Enrich(context.Background(), tx, nil))
}

func TestOutputsOf(t *testing.T) {
	tx := newTx(t, txID1, spending(prev1, 0))
	assert.Equal(t, []Output{
		{TxID: txID1, Index: 0, Value: 40000, Addresses: []string{addrB}},
		{TxID: txID1, Index: 1, Value: 10000, Addresses: []string{addrA}},
	}, OutputsOf(tx))
}

func TestOutput_PrevOutput(t *testing.T) {
	assert.Equal(t, transaction.PrevOutput{Address: addrA, Value: 5}, Output{Value: 5, Addresses: []string{addrA}}.PrevOutput())
	assert.Equal(t, transaction.PrevOutput{Value: 5}, Output{Value: 5}.PrevOutput())
	assert.Equal(t, transaction.PrevOutput{Value: 5}, Output{Value: 5, Addresses: []string{addrA, addrB}}.PrevOutput())
}

func TestService_EnrichRepeatedTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	source := NewMockSource(ctrl)
	metrics := NewMockMetrics(ctrl)
	source.EXPECT().Outputs(gomock.Any(), []string{prev1}).Return(map[string][]Output{
		prev1: {{TxID: prev1, Index: 0, Value: 50000, Addresses: []string{addrA}}},
	}, nil)
	metrics.EXPECT().ObserveEnrich(nil, 1, 0, anyTS)

	tx := newTx(t, txID1, spending(prev1, 0))
	s := NewService(source, metrics, zap.NewNop(), Options{})
	require.NoError(t, s.Enrich(context.Background(), tx, tx))
	assert.True(t, tx.IsFullyEnriched())
	assert.Equal(t, []summary.AddressAmount{{Address: addrA, Amount: 50000, Utxo: 0}}, tx.SpentAmounts())
}
