// Package policy holds the static per-product defaults of the bank: interest
// rates, minimum balances and withdrawal caps for each account type, and the
// default interest rate for each loan type.
package policy

// Account types known to the policy table.
const (
	Savings      = "SAVINGS"
	Checking     = "CHECKING"
	FixedDeposit = "FIXED_DEPOSIT"
)

// Loan types known to the policy table.
const (
	Personal    = "PERSONAL"
	Business    = "BUSINESS"
	Education   = "EDUCATION"
	Agriculture = "AGRICULTURE"
)

// AccountDefaults are applied when an account type is first assigned.
// InterestRate is an annual percentage.
type AccountDefaults struct {
	InterestRate           float64
	MinimumBalance         float64
	DailyWithdrawalLimit   float64
	MonthlyWithdrawalLimit float64
}

var accountDefaults = map[string]AccountDefaults{
	Savings:      {InterestRate: 2.5, MinimumBalance: 100, DailyWithdrawalLimit: 5000, MonthlyWithdrawalLimit: 50000},
	Checking:     {InterestRate: 0.5, MinimumBalance: 0, DailyWithdrawalLimit: 10000, MonthlyWithdrawalLimit: 100000},
	FixedDeposit: {InterestRate: 8.0, MinimumBalance: 1000, DailyWithdrawalLimit: 0, MonthlyWithdrawalLimit: 0},
}

// OtherAccount is the row used for account types missing from the table.
var OtherAccount = AccountDefaults{InterestRate: 1.0, MinimumBalance: 0, DailyWithdrawalLimit: 5000, MonthlyWithdrawalLimit: 50000}

var loanRates = map[string]float64{
	Personal:    12.0,
	Business:    10.0,
	Education:   8.0,
	Agriculture: 6.0,
}

// OtherLoanRate is the rate used for loan types missing from the table.
const OtherLoanRate = 15.0

// ForAccountType returns the defaults for the given account type.
func ForAccountType(accountType string) AccountDefaults {
	if d, ok := accountDefaults[accountType]; ok {
		return d
	}
	return OtherAccount
}

// LoanInterestRate returns the default annual interest rate of a loan type.
func LoanInterestRate(loanType string) float64 {
	if r, ok := loanRates[loanType]; ok {
		return r
	}
	return OtherLoanRate
}

// IsKnownAccountType reports whether the type has its own row in the table.
func IsKnownAccountType(accountType string) bool {
	_, ok := accountDefaults[accountType]
	return ok
}

// IsKnownLoanType reports whether the type has its own row in the table.
func IsKnownLoanType(loanType string) bool {
	_, ok := loanRates[loanType]
	return ok
}
