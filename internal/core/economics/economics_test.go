package economics

import (
	"math"
	"testing"
)

func TestExchangeConstantsAreMutualInverses(t *testing.T) {
	if SharePrice*SharesPerMillion != 1_000_000 {
		t.Fatalf("SharePrice (%d) * SharesPerMillion (%d) must equal 1,000,000", SharePrice, SharesPerMillion)
	}
}

func TestAmountSharesRoundTrip(t *testing.T) {
	// Amounts that are exact multiples of the share price round-trip exactly.
	amounts := []float64{0, 10_000, 1_000_000, 5_550_000, 123_450_000, 9_999_990_000}
	for _, a := range amounts {
		if got := SharesToAmount(AmountToShares(a)); got != a {
			t.Fatalf("round trip of %v = %v", a, got)
		}
	}
}

func TestAmountToShares(t *testing.T) {
	cases := []struct {
		amount float64
		want   float64
	}{
		{0, 0},
		{1_000_000, 100},
		{10_000, 1},
		{25_000, 2.5},
		{100_000_000, 10_000},
	}
	for _, tc := range cases {
		if got := AmountToShares(tc.amount); got != tc.want {
			t.Fatalf("AmountToShares(%v) = %v, want %v", tc.amount, got, tc.want)
		}
	}
}

func TestSharesFromRole(t *testing.T) {
	tables := DefaultTables

	cases := []struct {
		name   string
		role   string
		amount float64
		want   float64
	}{
		{"founder triples", "founder", 1_000_000, 300},
		{"angel", "angel", 1_000_000, 250},
		{"shareholder", "shareholder", 1_000_000, 150},
		{"customer neutral", "customer", 1_000_000, 100},
		{"unknown role defaults to 1.0", "galactic-overlord", 1_000_000, 100},
		{"rounds final product half away from zero", "shareholder", 10_000, 2}, // 1 * 1.5 = 1.5 -> 2
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tables.SharesFromRole(tc.role, tc.amount); got != tc.want {
				t.Fatalf("SharesFromRole(%q, %v) = %v, want %v", tc.role, tc.amount, got, tc.want)
			}
		})
	}
}

func TestSharesFromRole_UnknownEqualsBase(t *testing.T) {
	tables := DefaultTables
	for _, amount := range []float64{0, 10_000, 777_000, 12_340_000} {
		want := math.Round(AmountToShares(amount))
		if got := tables.SharesFromRole("no-such-role", amount); got != want {
			t.Fatalf("unknown role at %v = %v, want %v", amount, got, want)
		}
	}
}

func TestReferralBonus(t *testing.T) {
	for n := 0; n <= 9; n++ {
		if got := ReferralBonus(n); got != float64(10*n) {
			t.Fatalf("ReferralBonus(%d) = %v, want %v", n, got, 10*n)
		}
	}
	for _, n := range []int{10, 11, 50, 100000} {
		if got := ReferralBonus(n); got != 100 {
			t.Fatalf("ReferralBonus(%d) = %v, want capped 100", n, got)
		}
	}
	if got := ReferralBonus(-3); got != 0 {
		t.Fatalf("ReferralBonus(-3) = %v, want 0", got)
	}
}

func TestVIPBonus_Boundaries(t *testing.T) {
	cases := []struct {
		total float64
		want  float64
	}{
		{0, 0},
		{9_999_999, 0},
		{10_000_000, 100},
		{19_999_999, 100},
		{20_000_000, 200},
		{50_000_000, 300},
		{99_999_999, 300},
		{100_000_000, 500},
		{250_000_000, 500},
	}
	for _, tc := range cases {
		if got := VIPBonus(tc.total); got != tc.want {
			t.Fatalf("VIPBonus(%v) = %v, want %v", tc.total, got, tc.want)
		}
	}
}

func TestVIPBonus_Monotonic(t *testing.T) {
	prev := 0.0
	for total := 0.0; total <= 150_000_000; total += 1_000_000 {
		got := VIPBonus(total)
		if got < prev {
			t.Fatalf("VIPBonus decreased at %v: %v < %v", total, got, prev)
		}
		prev = got
	}
}

func TestMaxoutAmount(t *testing.T) {
	tables := DefaultTables

	if got, unlimited := tables.MaxoutAmount(5_000_000, "angel"); unlimited || got != 15_000_000 {
		t.Fatalf("angel maxout = (%v, %v), want (15000000, false)", got, unlimited)
	}
	if got, unlimited := tables.MaxoutAmount(5_000_000, "mystery"); unlimited || got != 5_000_000 {
		t.Fatalf("unknown role maxout = (%v, %v), want (5000000, false)", got, unlimited)
	}
	if _, unlimited := tables.MaxoutAmount(5_000_000, "founder"); !unlimited {
		t.Fatalf("founder maxout must be unlimited")
	}
}

func TestWithdrawalFee(t *testing.T) {
	cases := []struct {
		amount float64
		want   float64
	}{
		{0, 0},
		{1_000_000, 1000},
		{1_234_567, 1235}, // 1234.567 rounds half away from zero
		{400, 0},          // 0.4 rounds down
		{500, 1},          // 0.5 rounds half away from zero
	}
	for _, tc := range cases {
		if got := WithdrawalFee(tc.amount); got != tc.want {
			t.Fatalf("WithdrawalFee(%v) = %v, want %v", tc.amount, got, tc.want)
		}
	}
}

func TestTablesFallbacks(t *testing.T) {
	var empty Tables
	if got := empty.Multiplier("anything"); got != 1.0 {
		t.Fatalf("empty tables multiplier = %v, want 1.0", got)
	}
	limit := empty.MaxoutLimit("anything")
	if limit.Unlimited || limit.Factor != 1.0 {
		t.Fatalf("empty tables maxout = %+v, want factor 1.0", limit)
	}
}
