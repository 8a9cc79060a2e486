package abi

import (
	"regexp"
	"sort"
	"strings"

	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"
)

// A denomination is a short lowercase-or-mixed identifier such as "uluna" or "ibc/27394FB0".
var denomPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{1,127}$`)

var coinPattern = regexp.MustCompile(`^([0-9]+)([a-zA-Z][a-zA-Z0-9/:._-]{1,127})$`)

// Coin is an amount of a single denomination.
type Coin struct {
	Denom  string      `json:"denom"`
	Amount TokenAmount `json:"amount"`
}

func NewCoin(amount TokenAmount, denom string) Coin {
	return Coin{Denom: denom, Amount: amount}
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

func (c Coin) IsZero() bool {
	return c.Amount.Int == nil || c.Amount.IsZero()
}

// ValidateDenom checks that a denomination is well formed.
func ValidateDenom(denom string) error {
	if !denomPattern.MatchString(denom) {
		return xerrors.Errorf("invalid denomination %q", denom)
	}
	return nil
}

// ParseCoin parses a single "<amount><denom>" literal, e.g. "1000uluna".
func ParseCoin(s string) (Coin, error) {
	m := coinPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Coin{}, xerrors.Errorf("invalid coin expression %q", s)
	}
	amount, err := big.FromString(m[1])
	if err != nil {
		return Coin{}, xerrors.Errorf("invalid coin amount %q: %w", m[1], err)
	}
	return Coin{Denom: m[2], Amount: amount}, nil
}

// Coins is a list of coins sorted by denomination with at most one entry per denomination.
type Coins []Coin

// ParseCoins parses a comma separated list of coin literals. An empty string yields no coins.
// Repeated denominations are summed.
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out Coins
	for _, part := range strings.Split(s, ",") {
		c, err := ParseCoin(part)
		if err != nil {
			return nil, err
		}
		out = out.Add(c)
	}
	return out, nil
}

// Add returns a new list with `c` merged in.
func (cs Coins) Add(c Coin) Coins {
	out := make(Coins, 0, len(cs)+1)
	merged := false
	for _, existing := range cs {
		if existing.Denom == c.Denom {
			existing = Coin{Denom: c.Denom, Amount: big.Add(existing.Amount, c.Amount)}
			merged = true
		}
		out = append(out, existing)
	}
	if !merged {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out
}

// AmountOf returns the amount held in `denom`, or zero.
func (cs Coins) AmountOf(denom string) TokenAmount {
	for _, c := range cs {
		if c.Denom == denom {
			return c.Amount
		}
	}
	return big.Zero()
}

// NonZero drops coins with a zero amount.
func (cs Coins) NonZero() Coins {
	var out Coins
	for _, c := range cs {
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
