package loan_test

import (
	"math"
	"testing"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/domain/loan"
)

// FuzzLoanMakePayment tests repayment invariants with random input.
func FuzzLoanMakePayment(f *testing.F) {
	f.Add(1200.0, uint8(12), 100.0, 2000.0) // Seed input
	f.Add(1200.0, uint8(12), 1200.0, 1.0)
	f.Add(500.0, uint8(1), -5.0, 0.0)
	f.Add(1e-300, uint8(255), 1e-300, 1e300)
	f.Add(1e300, uint8(60), math.MaxFloat64, 1.0)
	f.Add(1000.0, uint8(6), math.Inf(1), math.NaN())
	f.Fuzz(func(t *testing.T, principal float64, months uint8, first, second float64) {
		l, err := loan.New(1, 1, principal, int(months), loan.TypeBusiness, "")
		if err != nil {
			t.Skip()
		}
		if err := l.Approve("mgr"); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
		if err := l.Disburse(); err != nil {
			t.Fatalf("Disburse failed: %v", err)
		}
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("MakePayment panicked: %v (principal=%v, payments=%v/%v)", r, principal, first, second)
			}
		}()

		for _, amount := range []float64{first, second} {
			before := l.RemainingBalance
			applied, err := l.MakePayment(amount)
			if err != nil && l.RemainingBalance != before {
				t.Errorf("Rejected payment %v changed the remaining balance", amount)
			}
			if err == nil && (applied <= 0 || applied > before) {
				t.Errorf("Payment %v applied %v against %v", amount, applied, before)
			}
			// Invariant: 0 <= remaining <= total, finite
			if l.RemainingBalance < 0 || l.RemainingBalance > l.TotalAmount() || !domain.IsFinite(l.RemainingBalance) {
				t.Errorf("Remaining balance %v out of [0, %v]", l.RemainingBalance, l.TotalAmount())
			}
			// Invariant: COMPLETED exactly when nothing is owed
			if (l.Status == loan.StatusCompleted) != (l.RemainingBalance == 0) {
				t.Errorf("Status %s with remaining %v", l.Status, l.RemainingBalance)
			}
			if !l.Valid() {
				t.Errorf("Loan invalid after payment %v: %+v", amount, l)
			}
		}
	})
}
