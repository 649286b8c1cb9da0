package cli

import (
	"context"
	"strings"
	"time"

	"github.com/amirasaad/waribank/pkg/domain/transaction"
	transactionsvc "github.com/amirasaad/waribank/pkg/service/transaction"
)

func (ui *UI) transactionMenu(ctx context.Context) {
	ui.loop(ctx, menu{
		title: "TRANSACTION MANAGEMENT",
		entries: []entry{
			{"Deposit Money", ui.deposit},
			{"Withdraw Money", ui.withdraw},
			{"Transfer Money", ui.transfer},
			{"View Transaction History", ui.history},
			{"View Account Balance", ui.balance},
		},
		back: "Back to Main Menu",
	})
}

// movement reads the amount and description shared by every money
// movement. Non-positive amounts are refused before reaching the service.
func (ui *UI) movement() (float64, string, bool) {
	amount, ok := ui.promptAmount("Enter Amount: ")
	if !ok {
		return 0, "", false
	}
	if amount <= 0 {
		ui.failf("Amount must be greater than zero.")
		return 0, "", false
	}
	desc, ok := ui.prompt("Enter Description (optional): ")
	return amount, desc, ok
}

func (ui *UI) receipt(msg string, tx *transaction.Transaction) {
	ui.ok("%s", msg)
	ui.printf("Transaction ID: %d\n", tx.ID)
	ui.printf("Reference Number: %s\n", tx.ReferenceNumber)
	ui.printf("New Balance: %.2f\n", tx.BalanceAfter)
}

func (ui *UI) deposit(ctx context.Context) {
	ui.section("DEPOSIT MONEY")
	number, ok := ui.prompt("Enter Account Number: ")
	if !ok {
		return
	}
	amount, desc, ok := ui.movement()
	if !ok {
		return
	}
	tx, err := ui.app.TransactionService.Deposit(ctx, number, amount, desc)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.receipt("Deposit successful!", tx)
}

func (ui *UI) withdraw(ctx context.Context) {
	ui.section("WITHDRAW MONEY")
	number, ok := ui.prompt("Enter Account Number: ")
	if !ok {
		return
	}
	amount, desc, ok := ui.movement()
	if !ok {
		return
	}
	tx, err := ui.app.TransactionService.Withdraw(ctx, number, amount, desc)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.receipt("Withdrawal successful!", tx)
}

func (ui *UI) transfer(ctx context.Context) {
	ui.section("TRANSFER MONEY")
	from, ok := ui.prompt("Enter From Account Number: ")
	if !ok {
		return
	}
	to, ok := ui.prompt("Enter To Account Number: ")
	if !ok {
		return
	}
	amount, desc, ok := ui.movement()
	if !ok {
		return
	}
	tx, err := ui.app.TransactionService.Transfer(ctx, transactionsvc.TransferRequest{
		FromAccountNumber: from,
		ToAccountNumber:   to,
		Amount:            amount,
		Description:       desc,
	})
	if err != nil {
		ui.fail(err)
		return
	}
	ui.receipt("Transfer successful!", tx)
}

func (ui *UI) history(ctx context.Context) {
	ui.section("TRANSACTION HISTORY")
	number, ok := ui.prompt("Enter Account Number: ")
	if !ok {
		return
	}
	txs, err := ui.app.TransactionService.History(ctx, number)
	if err != nil {
		ui.fail(err)
		return
	}
	if len(txs) == 0 {
		ui.printf("No transactions found for this account.\n")
		return
	}

	ui.printf("%-15s %-18s %-15s %-20s %-15s\n", "Reference", "Type", "Amount", "Date", "Status")
	ui.printf("%s\n", strings.Repeat("=", 85))
	for _, tx := range txs {
		ui.printf("%-15s %-18s %-15s %-20s %-15s\n",
			tx.ReferenceNumber, tx.Type, tx.FormattedAmount(), tx.Date.Format(time.DateTime), tx.Status)
	}
}

func (ui *UI) balance(ctx context.Context) {
	ui.section("ACCOUNT BALANCE")
	number, ok := ui.prompt("Enter Account Number: ")
	if !ok {
		return
	}
	a, err := ui.app.TransactionService.Balance(ctx, number)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.printf("Account Number: %s\n", a.Number)
	ui.printf("Account Type: %s\n", a.Type)
	ui.printf("Current Balance: %.2f\n", a.Balance)
	ui.printf("Status: %s\n", a.Status)
	ui.printf("Interest Rate: %.2f%%\n", a.InterestRate)
}
