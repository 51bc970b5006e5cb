package payroll

import (
	"errors"
	"testing"
	"time"

	"tiproom_backend/internal/models"
)

func record(eid int64, name, role string, worked time.Duration, basePay models.Money) LaborRecord {
	return LaborRecord{EID: eid, Employee: name, Role: role, Worked: worked, BasePay: basePay}
}

func sumNetTips(tips []models.Tip) models.Money {
	var sum models.Money
	for _, t := range tips {
		sum = sum.Add(t.NetTips)
	}
	return sum
}

func tipByEID(t *testing.T, tips []models.Tip, eid int64) models.Tip {
	t.Helper()
	for _, tip := range tips {
		if tip.EID == eid {
			return tip
		}
	}
	t.Fatalf("no tip for eid %d", eid)
	return models.Tip{}
}

func TestAllocateProportionalToHours(t *testing.T) {
	records := []LaborRecord{
		record(1, "Alice", RoleServer, 6*time.Hour, 12000),
		record(2, "Bob", RoleServer, 4*time.Hour, 8000),
	}

	tips, err := Allocate(10000, 0, records, PoolPolicy{})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	alice := tipByEID(t, tips, 1)
	bob := tipByEID(t, tips, 2)
	if alice.NetTips != 6000 || bob.NetTips != 4000 {
		t.Errorf("net tips = %s / %s, want 60.00 / 40.00", alice.NetTips, bob.NetTips)
	}
	// Proportional shares of the same pool yield identical hourly rates.
	if alice.HourlyPayForNight != 1000 || bob.HourlyPayForNight != 1000 {
		t.Errorf("hourly = %s / %s, want 10.00 / 10.00", alice.HourlyPayForNight, bob.HourlyPayForNight)
	}
	if alice.TotalPayForNight != 18000 {
		t.Errorf("alice total pay = %s, want 180.00", alice.TotalPayForNight)
	}
}

func TestAllocateLeftoverCentsToLowestEID(t *testing.T) {
	records := []LaborRecord{
		record(3, "Cara", RoleServer, time.Hour, 0),
		record(1, "Alice", RoleServer, time.Hour, 0),
		record(2, "Bob", RoleServer, time.Hour, 0),
	}

	tips, err := Allocate(1000, 0, records, PoolPolicy{})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if got := tipByEID(t, tips, 1).NetTips; got != 334 {
		t.Errorf("eid 1 = %s, want 3.34", got)
	}
	if got := tipByEID(t, tips, 2).NetTips; got != 333 {
		t.Errorf("eid 2 = %s, want 3.33", got)
	}
	if got := tipByEID(t, tips, 3).NetTips; got != 333 {
		t.Errorf("eid 3 = %s, want 3.33", got)
	}
}

func TestAllocateSharesSumExactlyToPool(t *testing.T) {
	tests := []struct {
		name string
		pool models.Money
	}{
		{name: "indivisible pool", pool: 10001},
		{name: "single cent", pool: 1},
		{name: "zero pool", pool: 0},
		{name: "large pool", pool: 123456789},
	}
	records := []LaborRecord{
		record(1, "Alice", RoleServer, 7*time.Hour+13*time.Minute, 0),
		record(2, "Bob", RoleBartender, 5*time.Hour+47*time.Minute, 0),
		record(3, "Cara", RoleServer, 3*time.Hour+2*time.Minute, 0),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips, err := Allocate(tt.pool, 0, records, PoolPolicy{})
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}
			if got := sumNetTips(tips); got != tt.pool {
				t.Errorf("sum of shares = %s, want %s", got, tt.pool)
			}
		})
	}
}

func TestAllocateNegativePool(t *testing.T) {
	_, err := Allocate(-1, 0, []LaborRecord{record(1, "Alice", RoleServer, time.Hour, 0)}, PoolPolicy{})
	if !errors.Is(err, ErrNegativePool) {
		t.Fatalf("err = %v, want ErrNegativePool", err)
	}
}

func TestAllocateExcludesZeroHourRecords(t *testing.T) {
	records := []LaborRecord{
		record(1, "Alice", RoleServer, 2*time.Hour, 0),
		record(2, "Bob", RoleServer, 0, 5000),
	}
	tips, err := Allocate(4000, 0, records, PoolPolicy{})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(tips) != 1 {
		t.Fatalf("len(tips) = %d, want 1", len(tips))
	}
	if tips[0].EID != 1 || tips[0].NetTips != 4000 {
		t.Errorf("tip = eid %d net %s, want eid 1 net 40.00", tips[0].EID, tips[0].NetTips)
	}
}

func TestAllocateRoleWeights(t *testing.T) {
	records := []LaborRecord{
		record(1, "Alice", RoleServer, 2*time.Hour, 0),
		record(2, "Bob", "Busser", 2*time.Hour, 0),
	}
	policy := PoolPolicy{Weights: map[string]int64{"Busser": 5000}}

	tips, err := Allocate(3000, 0, records, policy)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got := tipByEID(t, tips, 1).NetTips; got != 2000 {
		t.Errorf("full-weight share = %s, want 20.00", got)
	}
	if got := tipByEID(t, tips, 2).NetTips; got != 1000 {
		t.Errorf("half-weight share = %s, want 10.00", got)
	}
}

func TestAllocateStewardTipOut(t *testing.T) {
	records := []LaborRecord{
		record(1, "Alice", RoleServer, 6*time.Hour, 0),
		record(2, "Bob", RoleServer, 6*time.Hour, 0),
		record(3, "Carol", RoleSteward, 4*time.Hour, 0),
		record(4, "Dan", RoleSteward, 2*time.Hour, 0),
	}

	// $1000.00 in sales at 2.5% diverts $12.50 per server to the stewards.
	tips, err := Allocate(10000, 100000, records, HousePolicy())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if got := sumNetTips(tips); got != 10000 {
		t.Fatalf("pool not conserved: sum = %s, want 100.00", got)
	}
	if got := tipByEID(t, tips, 1).NetTips; got != 3750 {
		t.Errorf("server share = %s, want 37.50", got)
	}
	if got := tipByEID(t, tips, 2).NetTips; got != 3750 {
		t.Errorf("server share = %s, want 37.50", got)
	}
	// The $25.00 diverted total splits across steward hours 4:2.
	if got := tipByEID(t, tips, 3).NetTips; got != 1667 {
		t.Errorf("steward share = %s, want 16.67", got)
	}
	if got := tipByEID(t, tips, 4).NetTips; got != 833 {
		t.Errorf("steward share = %s, want 8.33", got)
	}
}

func TestAllocateTipOutCapsAtShare(t *testing.T) {
	// Sales so large the raw cut would exceed the server's whole share; the
	// cut is capped so no one's net tips go negative.
	records := []LaborRecord{
		record(1, "Alice", RoleServer, 2*time.Hour, 0),
		record(2, "Carol", RoleSteward, 2*time.Hour, 0),
	}
	tips, err := Allocate(100, 10000000, records, HousePolicy())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got := sumNetTips(tips); got != 100 {
		t.Fatalf("pool not conserved: sum = %s, want 1.00", got)
	}
	alice := tipByEID(t, tips, 1)
	if alice.NetTips.IsNegative() {
		t.Errorf("server net tips went negative: %s", alice.NetTips)
	}
	if got := tipByEID(t, tips, 2).NetTips; got != 100 {
		t.Errorf("steward share = %s, want 1.00", got)
	}
}

func TestAllocateStewardOnlyRosterReceivesWholePool(t *testing.T) {
	// A night where only the tip-out role clocked in: with no base pool to
	// divert from, the whole pool goes to the stewards by hours.
	records := []LaborRecord{
		record(1, "Carol", RoleSteward, 4*time.Hour, 0),
		record(2, "Dan", RoleSteward, 2*time.Hour, 0),
	}
	tips, err := Allocate(10000, 50000, records, HousePolicy())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got := sumNetTips(tips); got != 10000 {
		t.Fatalf("pool not conserved: sum = %s, want 100.00", got)
	}
	if got := tipByEID(t, tips, 1).NetTips; got != 6667 {
		t.Errorf("4h steward share = %s, want 66.67", got)
	}
	if got := tipByEID(t, tips, 2).NetTips; got != 3333 {
		t.Errorf("2h steward share = %s, want 33.33", got)
	}
}

func TestAllocateNoStewardsKeepsPoolWithServers(t *testing.T) {
	records := []LaborRecord{
		record(1, "Alice", RoleServer, 3*time.Hour, 0),
		record(2, "Bob", RoleBartender, 3*time.Hour, 0),
	}
	tips, err := Allocate(8000, 50000, records, HousePolicy())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got := sumNetTips(tips); got != 8000 {
		t.Fatalf("sum = %s, want 80.00", got)
	}
	if got := tipByEID(t, tips, 1).NetTips; got != 4000 {
		t.Errorf("share = %s, want 40.00", got)
	}
}

func TestAllocateOutputSortedByRoleThenName(t *testing.T) {
	records := []LaborRecord{
		record(3, "Zoe", RoleServer, time.Hour, 0),
		record(1, "Amy", RoleServer, time.Hour, 0),
		record(2, "Ben", RoleBartender, time.Hour, 0),
	}
	tips, err := Allocate(3000, 0, records, PoolPolicy{})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	want := []string{"Ben", "Amy", "Zoe"}
	for i, name := range want {
		if tips[i].Employee != name {
			t.Errorf("tips[%d] = %s, want %s", i, tips[i].Employee, name)
		}
	}
}

func TestSplitLargestRemainderExact(t *testing.T) {
	tests := []struct {
		name    string
		total   models.Money
		weights []int64
		want    []models.Money
	}{
		{name: "even split", total: 300, weights: []int64{1, 1, 1}, want: []models.Money{100, 100, 100}},
		{name: "remainder to largest fraction", total: 100, weights: []int64{2, 1}, want: []models.Money{67, 33}},
		{name: "tie goes to first position", total: 101, weights: []int64{1, 1}, want: []models.Money{51, 50}},
		{name: "zero weights", total: 100, weights: []int64{0, 0}, want: []models.Money{0, 0}},
		{name: "no weights", total: 100, weights: nil, want: []models.Money{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLargestRemainder(tt.total, tt.weights)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("share[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}
