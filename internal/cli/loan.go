package cli

import (
	"context"
	"strings"
	"time"

	"github.com/amirasaad/waribank/pkg/domain/loan"
	loansvc "github.com/amirasaad/waribank/pkg/service/loan"
)

func (ui *UI) loanMenu(ctx context.Context) {
	ui.loop(ctx, menu{
		title: "LOAN MANAGEMENT",
		entries: []entry{
			{"Apply for Loan", ui.applyLoan},
			{"View Loan Applications", ui.listLoans},
			{"Approve/Reject Loan", ui.reviewLoan},
			{"Disburse Loan", ui.disburseLoan},
			{"Make Loan Payment", ui.payLoan},
			{"View Loan Details", ui.viewLoan},
			{"Mark Loan Defaulted", ui.defaultLoan},
		},
		back: "Back to Main Menu",
	})
}

func (ui *UI) applyLoan(ctx context.Context) {
	ui.section("APPLY FOR LOAN")
	customerID, ok := ui.promptID("Enter Customer ID: ", "customer ID")
	if !ok {
		return
	}
	number, ok := ui.prompt("Enter Account Number: ")
	if !ok {
		return
	}
	ui.printf("Available loan types: %s, %s, %s, %s\n", loan.TypePersonal, loan.TypeBusiness, loan.TypeEducation, loan.TypeAgriculture)
	raw, ok := ui.prompt("Enter Loan Type: ")
	if !ok {
		return
	}
	typ, err := loan.ParseType(raw)
	if err != nil {
		ui.fail(err)
		return
	}
	amount, ok := ui.promptAmount("Enter Loan Amount: ")
	if !ok {
		return
	}
	term, ok := ui.promptInt("Enter Term (in months): ")
	if !ok {
		return
	}
	purpose, ok := ui.prompt("Enter Purpose: ")
	if !ok {
		return
	}

	l, err := ui.app.LoanService.Apply(ctx, loansvc.ApplyRequest{
		CustomerID:    customerID,
		AccountNumber: number,
		Type:          typ,
		Amount:        amount,
		TermInMonths:  term,
		Purpose:       purpose,
	})
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Loan application submitted successfully!")
	ui.printf("Loan ID: %d\n", l.ID)
	ui.printf("Loan Type: %s\n", l.Type)
	ui.printf("Loan Amount: %.2f\n", l.Amount)
	ui.printf("Interest Rate: %.2f%%\n", l.InterestRate)
	ui.printf("Monthly Payment: %.2f\n", l.TotalAmount()/float64(l.TermInMonths))
}

func (ui *UI) listLoans(ctx context.Context) {
	ui.section("LOAN APPLICATIONS")
	ls, err := ui.app.LoanService.List(ctx)
	if err != nil {
		ui.fail(err)
		return
	}
	if len(ls) == 0 {
		ui.printf("No loan applications found.\n")
		return
	}

	ui.printf("%-8s %-15s %-15s %-15s %-15s %-10s\n", "Loan ID", "Customer ID", "Type", "Amount", "Status", "Term")
	ui.printf("%s\n", strings.Repeat("=", 80))
	for _, l := range ls {
		ui.printf("%-8d %-15d %-15s %-15.2f %-15s %-10d\n", l.ID, l.CustomerID, l.Type, l.Amount, l.Status, l.TermInMonths)
	}
}

func (ui *UI) findLoan(ctx context.Context) (*loan.Loan, bool) {
	id, ok := ui.promptID("Enter Loan ID: ", "loan ID")
	if !ok {
		return nil, false
	}
	l, err := ui.app.LoanService.Get(ctx, id)
	if err != nil {
		ui.fail(err)
		return nil, false
	}
	return l, true
}

func (ui *UI) reviewLoan(ctx context.Context) {
	ui.section("APPROVE/REJECT LOAN")
	l, ok := ui.findLoan(ctx)
	if !ok {
		return
	}
	if !l.IsPending() {
		ui.printf("This loan is not pending for approval.\n")
		return
	}
	ui.printf("Loan Details:\n")
	ui.lines(l.Details())
	ui.printf("1. Approve\n2. Reject\n")
	raw, ok := ui.prompt("Enter your choice: ")
	if !ok {
		return
	}

	switch raw {
	case "1":
		approver, ok := ui.prompt("Enter approver name: ")
		if !ok {
			return
		}
		if _, err := ui.app.LoanService.Approve(ctx, l.ID, approver); err != nil {
			ui.fail(err)
			return
		}
		ui.ok("Loan approved successfully!")
	case "2":
		reason, ok := ui.prompt("Enter rejection reason: ")
		if !ok {
			return
		}
		if _, err := ui.app.LoanService.Reject(ctx, l.ID, reason); err != nil {
			ui.fail(err)
			return
		}
		ui.ok("Loan rejected successfully!")
	default:
		ui.printf("Invalid choice.\n")
	}
}

func (ui *UI) disburseLoan(ctx context.Context) {
	ui.section("DISBURSE LOAN")
	l, ok := ui.findLoan(ctx)
	if !ok {
		return
	}
	if l.Status != loan.StatusApproved {
		ui.printf("This loan is not approved for disbursement.\n")
		return
	}

	l, tx, err := ui.app.LoanService.Disburse(ctx, l.ID)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Loan disbursed successfully!")
	ui.printf("Amount disbursed: %.2f\n", l.Amount)
	ui.printf("Due date: %s\n", l.DueDate.Format(time.DateOnly))
	ui.printf("Reference Number: %s\n", tx.ReferenceNumber)
}

func (ui *UI) payLoan(ctx context.Context) {
	ui.section("MAKE LOAN PAYMENT")
	l, ok := ui.findLoan(ctx)
	if !ok {
		return
	}
	if !l.IsActive() {
		ui.printf("This loan is not active for payments.\n")
		return
	}
	ui.printf("Remaining balance: %.2f\n", l.RemainingBalance)
	ui.printf("Monthly payment: %.2f\n", l.MonthlyPayment)
	amount, ok := ui.promptAmount("Enter payment amount: ")
	if !ok {
		return
	}
	if amount <= 0 {
		ui.failf("Payment amount must be greater than zero.")
		return
	}
	debit := ui.confirm("Debit the linked account? (y/n): ")

	p, err := ui.app.LoanService.MakePayment(ctx, l.ID, amount, debit)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Loan payment made successfully!")
	ui.printf("Payment amount: %.2f\n", p.Applied)
	ui.printf("Remaining balance: %.2f\n", p.Loan.RemainingBalance)
	if p.Transaction != nil {
		ui.printf("Reference Number: %s\n", p.Transaction.ReferenceNumber)
	}
	if p.Loan.IsCompleted() {
		ui.ok("Loan fully repaid.")
	}
}

func (ui *UI) viewLoan(ctx context.Context) {
	ui.section("VIEW LOAN DETAILS")
	if l, ok := ui.findLoan(ctx); ok {
		ui.lines(l.Details())
	}
}

func (ui *UI) defaultLoan(ctx context.Context) {
	ui.section("MARK LOAN DEFAULTED")
	id, ok := ui.promptID("Enter Loan ID: ", "loan ID")
	if !ok {
		return
	}
	l, err := ui.app.LoanService.MarkDefaulted(ctx, id)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.warn("Loan %d marked as defaulted with %.2f outstanding.", l.ID, l.RemainingBalance)
}
