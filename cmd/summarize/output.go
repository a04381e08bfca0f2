package main

import (
	"github.com/goodnatureofminers/multichain-client/internal/summarizer"
	"github.com/goodnatureofminers/multichain-client/pkg/chain"
	"github.com/shopspring/decimal"
)

type output struct {
	summarizer.Result
	Coins map[string]decimal.Decimal `json:"coins,omitempty"`
}

func newOutput(r summarizer.Result, coins bool) output {
	out := output{Result: r}
	if !coins {
		return out
	}

	out.Coins = map[string]decimal.Decimal{}
	add := func(name string, amount int64) {
		out.Coins[name] = toCoins(r.Chain, amount)
	}
	if r.Fee != nil {
		add("fee", *r.Fee)
	}
	if r.Payment != nil && r.Payment.Response != nil {
		p := r.Payment.Response
		add("spent", p.SpentAmount)
		add("intendedSpent", p.IntendedSpentAmount)
		add("received", p.ReceivedAmount)
		add("intendedReceived", p.IntendedReceivedAmount)
	}
	if r.BalanceDecreasing != nil && r.BalanceDecreasing.Response != nil {
		add("balanceDecreased", r.BalanceDecreasing.Response.SpentAmount)
	}
	if len(out.Coins) == 0 {
		out.Coins = nil
	}
	return out
}

// decimals is the number of elementary-unit digits per whole coin.
func decimals(c chain.Chain) int32 {
	switch c {
	case chain.BTC, chain.DOGE:
		return 8
	case chain.XRP, chain.ALGO:
		return 6
	default:
		return 0
	}
}

func toCoins(c chain.Chain, amount int64) decimal.Decimal {
	return decimal.New(amount, -decimals(c))
}
