package cli

import (
	"context"
	"strings"

	"github.com/amirasaad/waribank/pkg/domain/account"
	accountsvc "github.com/amirasaad/waribank/pkg/service/account"
)

func (ui *UI) accountMenu(ctx context.Context) {
	ui.loop(ctx, menu{
		title: "ACCOUNT MANAGEMENT",
		entries: []entry{
			{"Open New Account", ui.openAccount},
			{"View Account Details", ui.viewAccount},
			{"List Customer Accounts", ui.listCustomerAccounts},
			{"Update Account Status", ui.updateAccountStatus},
			{"Close Account", ui.closeAccount},
			{"Post Interest", ui.postInterest},
		},
		back: "Back to Main Menu",
	})
}

func (ui *UI) openAccount(ctx context.Context) {
	ui.section("OPEN NEW ACCOUNT")
	customerID, ok := ui.promptID("Enter Customer ID: ", "customer ID")
	if !ok {
		return
	}
	ui.printf("Available account types: %s, %s, %s\n", account.TypeSavings, account.TypeChecking, account.TypeFixedDeposit)
	raw, ok := ui.prompt("Enter Account Type: ")
	if !ok {
		return
	}
	typ, err := account.ParseType(raw)
	if err != nil {
		ui.fail(err)
		return
	}
	balance, ok := ui.promptAmount("Enter Initial Balance: ")
	if !ok {
		return
	}

	a, err := ui.app.AccountService.Open(ctx, accountsvc.OpenRequest{CustomerID: customerID, Type: typ, InitialBalance: balance})
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Account opened successfully!")
	ui.printf("Account Number: %s\n", a.Number)
	ui.printf("Account Type: %s\n", a.Type)
	ui.printf("Initial Balance: %.2f\n", a.Balance)
}

func (ui *UI) findAccount(ctx context.Context) (*account.Account, bool) {
	number, ok := ui.prompt("Enter Account Number: ")
	if !ok {
		return nil, false
	}
	a, err := ui.app.AccountService.GetByNumber(ctx, number)
	if err != nil {
		ui.fail(err)
		return nil, false
	}
	return a, true
}

func (ui *UI) viewAccount(ctx context.Context) {
	ui.section("VIEW ACCOUNT DETAILS")
	if a, ok := ui.findAccount(ctx); ok {
		ui.lines(a.Details())
	}
}

func (ui *UI) listCustomerAccounts(ctx context.Context) {
	ui.section("CUSTOMER ACCOUNTS")
	customerID, ok := ui.promptID("Enter Customer ID: ", "customer ID")
	if !ok {
		return
	}
	as, err := ui.app.AccountService.ListByCustomer(ctx, customerID)
	if err != nil {
		ui.fail(err)
		return
	}
	if len(as) == 0 {
		ui.printf("No accounts found for this customer.\n")
		return
	}

	ui.printf("%-15s %-15s %-15s %-15s %-10s\n", "Account Number", "Type", "Balance", "Status", "Interest Rate")
	ui.printf("%s\n", strings.Repeat("=", 75))
	for _, a := range as {
		ui.printf("%-15s %-15s %-15.2f %-15s %-10.2f%%\n", a.Number, a.Type, a.Balance, a.Status, a.InterestRate)
	}
}

func (ui *UI) updateAccountStatus(ctx context.Context) {
	ui.section("UPDATE ACCOUNT STATUS")
	a, ok := ui.findAccount(ctx)
	if !ok {
		return
	}
	ui.printf("Current status: %s\n", a.Status)
	ui.printf("Available statuses: ACTIVE, FROZEN, CLOSED\n")
	raw, ok := ui.prompt("Enter new status: ")
	if !ok {
		return
	}
	status, err := account.ParseStatus(raw)
	if err != nil {
		ui.fail(err)
		return
	}

	if _, err := ui.app.AccountService.UpdateStatus(ctx, a.Number, status); err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Account status updated successfully!")
}

func (ui *UI) closeAccount(ctx context.Context) {
	ui.section("CLOSE ACCOUNT")
	a, ok := ui.findAccount(ctx)
	if !ok {
		return
	}
	if a.Balance > 0 {
		ui.warn("Warning: Account has remaining balance of %.2f", a.Balance)
		if !ui.confirm("Are you sure you want to close this account? (y/n): ") {
			ui.printf("Account closure cancelled.\n")
			return
		}
	}

	if _, err := ui.app.AccountService.Close(ctx, a.Number); err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Account closed successfully!")
}

func (ui *UI) postInterest(ctx context.Context) {
	ui.section("POST INTEREST")
	number, ok := ui.prompt("Enter Account Number: ")
	if !ok {
		return
	}
	tx, err := ui.app.AccountService.PostInterest(ctx, number)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Interest posted successfully!")
	ui.printf("Interest Amount: %.2f\n", tx.Amount)
	ui.printf("Reference Number: %s\n", tx.ReferenceNumber)
	ui.printf("New Balance: %.2f\n", tx.BalanceAfter)
}
