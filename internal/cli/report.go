package cli

import (
	"context"
	"time"

	"github.com/amirasaad/waribank/pkg/domain/account"
)

func (ui *UI) reportMenu(ctx context.Context) {
	ui.loop(ctx, menu{
		title: "REPORTS & ANALYTICS",
		entries: []entry{
			{"Customer Statistics", ui.customerStats},
			{"Account Statistics", ui.accountStats},
			{"Transaction Statistics", ui.transactionStats},
			{"Loan Statistics", ui.loanStats},
			{"Generate Report", ui.generateReport},
			{"Overdue Loans", ui.overdueLoans},
		},
		back: "Back to Main Menu",
	})
}

func (ui *UI) systemMenu(ctx context.Context) {
	ui.loop(ctx, menu{
		title: "SYSTEM SETTINGS",
		entries: []entry{
			{"Database Status", ui.databaseStatus},
			{"System Information", func(context.Context) { ui.systemInfo() }},
			{"Backup Database", ui.backup},
			{"Clear Logs", func(context.Context) { ui.clearLogs() }},
		},
		back: "Back to Main Menu",
	})
}

func (ui *UI) customerStats(ctx context.Context) {
	ui.section("CUSTOMER STATISTICS")
	s, err := ui.app.ReportService.CustomerStats(ctx)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.printf("Total Customers: %d\n", s.Total)
	ui.printf("Active Customers: %d\n", s.Active)
	ui.printf("Suspended Customers: %d\n", s.Suspended)
	ui.printf("Inactive Customers: %d\n", s.Inactive)
	ui.printf("Average Credit Score: %s\n", s.AverageCreditScore.StringFixed(2))
}

func (ui *UI) accountStats(ctx context.Context) {
	ui.section("ACCOUNT STATISTICS")
	s, err := ui.app.ReportService.AccountStats(ctx)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.printf("Total Accounts: %d\n", s.Total)
	ui.printf("Active Accounts: %d\n", s.Active)
	ui.printf("Frozen Accounts: %d\n", s.Frozen)
	ui.printf("Closed Accounts: %d\n", s.Closed)
	ui.printf("Savings Accounts: %d\n", s.ByType[account.TypeSavings])
	ui.printf("Checking Accounts: %d\n", s.ByType[account.TypeChecking])
	ui.printf("Fixed Deposit Accounts: %d\n", s.ByType[account.TypeFixedDeposit])
	ui.printf("Total Balance: %s\n", s.TotalBalance.StringFixed(2))
}

func (ui *UI) transactionStats(ctx context.Context) {
	ui.section("TRANSACTION STATISTICS")
	s, err := ui.app.ReportService.TransactionStats(ctx)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.printf("Total Transactions: %d\n", s.Total)
	ui.printf("Completed Transactions: %d\n", s.Completed)
	ui.printf("Pending Transactions: %d\n", s.Pending)
	ui.printf("Failed Transactions: %d\n", s.Failed)
	ui.printf("Cancelled Transactions: %d\n", s.Cancelled)
	ui.printf("Total Amount: %s\n", s.TotalAmount.StringFixed(2))
}

func (ui *UI) loanStats(ctx context.Context) {
	ui.section("LOAN STATISTICS")
	s, err := ui.app.ReportService.LoanStats(ctx)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.printf("Total Loans: %d\n", s.Total)
	ui.printf("Pending Loans: %d\n", s.Pending)
	ui.printf("Approved Loans: %d\n", s.Approved)
	ui.printf("Rejected Loans: %d\n", s.Rejected)
	ui.printf("Active Loans: %d\n", s.Active)
	ui.printf("Completed Loans: %d\n", s.Completed)
	ui.printf("Defaulted Loans: %d\n", s.Defaulted)
	ui.printf("Total Loan Amount: %s\n", s.TotalAmount.StringFixed(2))
	ui.printf("Total Remaining Balance: %s\n", s.TotalRemaining.StringFixed(2))
}

func (ui *UI) generateReport(ctx context.Context) {
	ui.section("GENERATE REPORT")
	path, n, err := ui.app.ReportService.WriteTransactionReport(ctx, "")
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Report generated successfully!")
	ui.printf("File: %s\n", path)
	ui.printf("Transactions: %d\n", n)
}

func (ui *UI) overdueLoans(ctx context.Context) {
	ui.section("OVERDUE LOANS")
	ls, err := ui.app.LoanService.Overdue(ctx)
	if err != nil {
		ui.fail(err)
		return
	}
	if len(ls) == 0 {
		ui.printf("No overdue loans.\n")
		return
	}
	for _, l := range ls {
		ui.printf("%s, Due: %s\n", l.Summary(), l.DueDate.Format(time.DateOnly))
	}
}

func (ui *UI) databaseStatus(ctx context.Context) {
	ui.section("DATABASE STATUS")
	s := ui.app.ReportService.DatabaseStatus(ctx)
	if s.Connected {
		ui.ok("Database Connection: Connected")
	} else {
		ui.failf("Database Connection: Disconnected (%s)", s.Error)
	}
	ui.printf("Database Driver: %s\n", s.Driver)
	ui.printf("Database File: %s\n", s.Location)
}

func (ui *UI) systemInfo() {
	ui.section("SYSTEM INFORMATION")
	info := ui.app.ReportService.SystemInfo()
	ui.printf("Application: %s\n", info.Application)
	ui.printf("Version: %s\n", info.Version)
	ui.printf("Go Version: %s\n", info.GoVersion)
	ui.printf("Platform: %s\n", info.OS)
	ui.printf("Current Time: %s\n", info.CurrentTime.Format(time.DateTime))
}

func (ui *UI) backup(ctx context.Context) {
	ui.section("BACKUP DATABASE")
	path, err := ui.app.ReportService.Backup(ctx)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Database backed up to %s", path)
}

func (ui *UI) clearLogs() {
	ui.section("CLEAR LOGS")
	if err := ui.app.ReportService.ClearLogs(); err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Log file cleared.")
}
