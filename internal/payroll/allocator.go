package payroll

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"tiproom_backend/internal/models"
)

// ErrNegativePool is returned when the submitted pooled tip total is below
// zero. A zero pool is valid and yields all-zero shares.
var ErrNegativePool = errors.New("pooled tip total is negative")

// LaborRecord is one normalized (employee, role, night) entry from a labor
// report: how long the employee worked under that role and the base wages the
// timekeeping system already computed for the shift.
type LaborRecord struct {
	EID      int64
	Employee string
	Role     string
	Worked   time.Duration
	BasePay  models.Money
}

// Hours returns the worked duration in fractional hours.
func (r LaborRecord) Hours() float64 {
	return r.Worked.Minutes() / 60
}

func (r LaborRecord) minutes() int64 {
	return int64(r.Worked / time.Minute)
}

// TipOutPolicy diverts a cut of each pooled employee's proportional sales to
// a support role. The diverted total forms a secondary pool allocated across
// that role's records by hours, so the night's pool total is conserved.
type TipOutPolicy struct {
	Role    string
	RateBps int64 // cut of proportional sales, in basis points
}

// PoolPolicy configures how a night's pool is split. Weights are per-role
// multipliers in basis points applied to worked minutes; a role without an
// entry weighs 10000 (1.0), so the zero value allocates strictly
// proportionally to hours across all roles.
type PoolPolicy struct {
	Weights map[string]int64
	TipOut  *TipOutPolicy
}

const fullWeightBps = 10000

func (p PoolPolicy) weight(role string) int64 {
	if p.Weights != nil {
		if w, ok := p.Weights[role]; ok {
			return w
		}
	}
	return fullWeightBps
}

// HousePolicy is the policy in production use: servers and bartenders pool
// tips by hours, stewards are funded by a 2.5% tip-out on proportional sales.
func HousePolicy() PoolPolicy {
	return PoolPolicy{
		TipOut: &TipOutPolicy{Role: RoleSteward, RateBps: 250},
	}
}

// Allocate splits the pooled tip total across the night's labor records.
//
// Shares are proportional to weighted worked minutes, resolved to whole cents
// with largest-remainder distribution: each share is truncated to the cent
// and the leftover cents go one at a time to the records with the largest
// fractional remainder, ties to the lowest eid. The returned shares always
// sum to exactly pool. Records with zero worked time are excluded, not given
// a zero share.
func Allocate(pool, totalSales models.Money, records []LaborRecord, policy PoolPolicy) ([]models.Tip, error) {
	if pool.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativePool, pool)
	}

	active := make([]LaborRecord, 0, len(records))
	for _, r := range records {
		if r.Worked > 0 {
			active = append(active, r)
		}
	}
	// Remainder ties resolve by position, so fix the order to ascending eid.
	sort.Slice(active, func(i, j int) bool {
		if active[i].EID != active[j].EID {
			return active[i].EID < active[j].EID
		}
		return active[i].Role < active[j].Role
	})

	var pooled, tippedOut []int
	for i, r := range active {
		if policy.TipOut != nil && r.Role == policy.TipOut.Role {
			tippedOut = append(tippedOut, i)
		} else {
			pooled = append(pooled, i)
		}
	}

	shares := make([]models.Money, len(active))
	weights := make([]int64, len(pooled))
	for i, idx := range pooled {
		weights[i] = active[idx].minutes() * policy.weight(active[idx].Role)
	}
	for i, share := range splitLargestRemainder(pool, weights) {
		shares[pooled[i]] = share
	}

	if len(pooled) == 0 && len(tippedOut) > 0 {
		// Only the tip-out role worked the night. There is no base pool to
		// divert from, so the whole pool splits across its records by hours;
		// dropping it would lose T entirely.
		for i, share := range splitLargestRemainder(pool, minuteWeights(active, tippedOut)) {
			shares[tippedOut[i]] = share
		}
	} else if policy.TipOut != nil && len(tippedOut) > 0 && totalSales > 0 {
		salesShares := splitLargestRemainder(totalSales, weights)
		var diverted models.Money
		for i, idx := range pooled {
			cut := models.Money(int64(salesShares[i]) * policy.TipOut.RateBps / fullWeightBps)
			if cut > shares[idx] {
				cut = shares[idx]
			}
			shares[idx] -= cut
			diverted += cut
		}
		for i, share := range splitLargestRemainder(diverted, minuteWeights(active, tippedOut)) {
			shares[tippedOut[i]] = share
		}
	}

	tips := make([]models.Tip, 0, len(active))
	for i, r := range active {
		net := shares[i]
		var hourly models.Money
		if mins := r.minutes(); mins > 0 {
			hourly = models.Money(int64(net) * 60 / mins)
		}
		tips = append(tips, models.Tip{
			Employee:           r.Employee,
			Role:               r.Role,
			NetTips:            net,
			TotalPayForNight:   r.BasePay.Add(net),
			HourlyPayForNight:  hourly,
			TippedHourForNight: r.Hours(),
			Duration:           r.Hours(),
			EID:                r.EID,
		})
	}
	sort.SliceStable(tips, func(i, j int) bool {
		if tips[i].Role != tips[j].Role {
			return tips[i].Role < tips[j].Role
		}
		return tips[i].Employee < tips[j].Employee
	})
	return tips, nil
}

func minuteWeights(records []LaborRecord, indices []int) []int64 {
	weights := make([]int64, len(indices))
	for i, idx := range indices {
		weights[i] = records[idx].minutes()
	}
	return weights
}

// splitLargestRemainder divides total into len(weights) whole-cent shares
// proportional to weights, summing exactly to total. Ties between equal
// remainders keep input order, which callers arrange to be ascending eid.
func splitLargestRemainder(total models.Money, weights []int64) []models.Money {
	shares := make([]models.Money, len(weights))
	if total <= 0 || len(weights) == 0 {
		return shares
	}
	var sum int64
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return shares
	}

	type slot struct {
		idx int
		rem int64
	}
	slots := make([]slot, len(weights))
	var allocated int64
	for i, w := range weights {
		n := int64(total) * w
		shares[i] = models.Money(n / sum)
		allocated += n / sum
		slots[i] = slot{idx: i, rem: n % sum}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].rem > slots[j].rem
	})
	// Leftover is strictly less than len(weights) cents.
	for i := int64(0); i < int64(total)-allocated; i++ {
		shares[slots[i].idx]++
	}
	return shares
}
