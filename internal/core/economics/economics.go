// Package economics converts between monetary amounts and digital share
// units and applies role multipliers, referral bonuses, VIP tiers and maxout
// caps. All functions are pure; the role tables are injected as versioned
// configuration (see Tables).
package economics

import "math"

// Exchange rate constants. SharePrice and SharesPerMillion must stay mutual
// inverses: SharePrice * SharesPerMillion == 1,000,000.
const (
	// SharePrice is the fixed exchange rate in currency units per share unit.
	SharePrice = 10_000
	// SharesPerMillion is the number of share units granted per 1,000,000
	// currency units invested at multiplier 1.0.
	SharesPerMillion = 100
)

const (
	withdrawalFeeRate = 0.001
	referralPerSignup = 10
	referralCap       = 100
)

// vipTiers maps cumulative investment thresholds to one-time share bonuses,
// highest threshold first. The largest threshold <= investment wins.
var vipTiers = []struct {
	Threshold float64
	Bonus     float64
}{
	{100_000_000, 500},
	{50_000_000, 300},
	{20_000_000, 200},
	{10_000_000, 100},
}

// AmountToShares converts a monetary amount to share units before any
// multiplier. Equivalent to amount / 1,000,000 * SharesPerMillion; written as
// a single division so exact amounts convert without rounding drift.
func AmountToShares(amount float64) float64 {
	return amount / SharePrice
}

// SharesToAmount converts share units back to currency at the fixed rate.
func SharesToAmount(shares float64) float64 {
	return shares * SharePrice
}

// SharesFromRole converts an amount to shares with the role's multiplier
// applied, rounding half away from zero on the final product only.
func (t Tables) SharesFromRole(role string, amount float64) float64 {
	return math.Round(AmountToShares(amount) * t.Multiplier(role))
}

// ReferralBonus grants 10 share units per referred signup, hard-capped at 100.
func ReferralBonus(referrals int) float64 {
	if referrals <= 0 {
		return 0
	}
	bonus := float64(referrals * referralPerSignup)
	if bonus > referralCap {
		return referralCap
	}
	return bonus
}

// VIPBonus returns the one-time share bonus for a cumulative investment
// total. Tiers are evaluated from the highest threshold downward; the first
// threshold at or below the total wins.
func VIPBonus(totalInvestment float64) float64 {
	for _, tier := range vipTiers {
		if totalInvestment >= tier.Threshold {
			return tier.Bonus
		}
	}
	return 0
}

// MaxoutAmount returns the maximum share-equivalent value the role may accrue
// on the invested amount. When the role's limit is unlimited, the returned
// bool is true and the numeric value carries no meaning.
func (t Tables) MaxoutAmount(investmentAmount float64, role string) (float64, bool) {
	limit := t.MaxoutLimit(role)
	if limit.Unlimited {
		return 0, true
	}
	return investmentAmount * limit.Factor, false
}

// WithdrawalFee is the flat 0.1% fee on a withdrawal amount, rounded half
// away from zero.
func WithdrawalFee(amount float64) float64 {
	return math.Round(amount * withdrawalFeeRate)
}
