package chain

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		want    Chain
		wantErr bool
	}{
		{value: "btc", want: BTC},
		{value: "Bitcoin", want: BTC},
		{value: "dogecoin", want: DOGE},
		{value: "xrpl", want: XRP},
		{value: " ALGO ", want: ALGO},
		{value: "eth", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := Parse(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedChain) {
				t.Fatalf("Parse() error = %v, want unsupported chain", err)
			}
			if got != tt.want {
				t.Fatalf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseNetwork(t *testing.T) {
	if got, err := ParseNetwork(""); err != nil || got != Mainnet {
		t.Fatalf("ParseNetwork(\"\") = %q, %v", got, err)
	}
	if got, err := ParseNetwork("testnet3"); err != nil || got != Testnet {
		t.Fatalf("ParseNetwork(testnet3) = %q, %v", got, err)
	}
	if _, err := ParseNetwork("regtest"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("ParseNetwork(regtest) error = %v, want invalid parameter", err)
	}
}
