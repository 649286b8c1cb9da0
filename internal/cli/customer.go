package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/amirasaad/waribank/pkg/domain/customer"
	customersvc "github.com/amirasaad/waribank/pkg/service/customer"
)

func (ui *UI) customerMenu(ctx context.Context) {
	ui.loop(ctx, menu{
		title: "CUSTOMER MANAGEMENT",
		entries: []entry{
			{"Register New Customer", ui.registerCustomer},
			{"View Customer Details", ui.viewCustomer},
			{"Update Customer Information", ui.updateCustomer},
			{"List All Customers", ui.listCustomers},
			{"Search Customer", ui.searchCustomer},
			{"Update Customer Status", ui.updateCustomerStatus},
			{"Update Credit Score", ui.updateCreditScore},
		},
		back: "Back to Main Menu",
	})
}

func (ui *UI) registerCustomer(ctx context.Context) {
	ui.section("CUSTOMER REGISTRATION")
	var req customersvc.RegisterRequest
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter First Name: ", &req.FirstName},
		{"Enter Last Name: ", &req.LastName},
		{"Enter Email: ", &req.Email},
		{"Enter Phone Number: ", &req.PhoneNumber},
		{"Enter Address: ", &req.Address},
		{"Enter National ID: ", &req.NationalID},
	}
	for _, f := range fields {
		v, ok := ui.prompt(f.label)
		if !ok {
			return
		}
		*f.dst = v
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.NationalID == "" {
		ui.failf("Required fields cannot be empty.")
		return
	}

	c, err := ui.app.CustomerService.Register(ctx, req)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Customer registered successfully!")
	ui.printf("Customer ID: %d\n", c.ID)
}

func (ui *UI) viewCustomer(ctx context.Context) {
	ui.section("VIEW CUSTOMER DETAILS")
	c, ok := ui.findCustomer(ctx)
	if !ok {
		return
	}
	ui.lines(c.Details())
}

func (ui *UI) findCustomer(ctx context.Context) (*customer.Customer, bool) {
	id, ok := ui.promptID("Enter Customer ID: ", "customer ID")
	if !ok {
		return nil, false
	}
	c, err := ui.app.CustomerService.Get(ctx, id)
	if err != nil {
		ui.fail(err)
		return nil, false
	}
	return c, true
}

func (ui *UI) updateCustomer(ctx context.Context) {
	ui.section("UPDATE CUSTOMER INFORMATION")
	c, ok := ui.findCustomer(ctx)
	if !ok {
		return
	}
	ui.printf("Current customer information:\n")
	ui.lines(c.Details())

	var req customersvc.UpdateRequest
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter new First Name (or press Enter to keep current): ", &req.FirstName},
		{"Enter new Last Name (or press Enter to keep current): ", &req.LastName},
		{"Enter new Phone Number (or press Enter to keep current): ", &req.PhoneNumber},
		{"Enter new Address (or press Enter to keep current): ", &req.Address},
	}
	for _, f := range fields {
		v, ok := ui.prompt(f.label)
		if !ok {
			return
		}
		*f.dst = v
	}

	if _, err := ui.app.CustomerService.Update(ctx, c.ID, req); err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Customer information updated successfully!")
}

func (ui *UI) listCustomers(ctx context.Context) {
	ui.section("ALL CUSTOMERS")
	cs, err := ui.app.CustomerService.List(ctx)
	if err != nil {
		ui.fail(err)
		return
	}
	if len(cs) == 0 {
		ui.printf("No customers found.\n")
		return
	}

	ui.printf("%-5s %-20s %-20s %-30s %-15s %-10s\n", "ID", "First Name", "Last Name", "Email", "Status", "Credit Score")
	ui.printf("%s\n", strings.Repeat("=", 100))
	for _, c := range cs {
		ui.printf("%-5d %-20s %-20s %-30s %-15s %-10.2f\n", c.ID, c.FirstName, c.LastName, c.Email, c.Status, c.CreditScore)
	}
}

func (ui *UI) searchCustomer(ctx context.Context) {
	ui.section("SEARCH CUSTOMER")
	ui.printf("1. Search by Email\n2. Search by National ID\n")
	raw, ok := ui.prompt("Enter your choice: ")
	if !ok {
		return
	}

	var (
		c   *customer.Customer
		err error
	)
	switch raw {
	case "1":
		email, ok := ui.prompt("Enter Email: ")
		if !ok {
			return
		}
		c, err = ui.app.CustomerService.GetByEmail(ctx, email)
	case "2":
		nationalID, ok := ui.prompt("Enter National ID: ")
		if !ok {
			return
		}
		c, err = ui.app.CustomerService.GetByNationalID(ctx, nationalID)
	default:
		if _, convErr := strconv.Atoi(raw); convErr != nil {
			ui.failf("Please enter a valid choice.")
			return
		}
		ui.printf("Invalid choice.\n")
		return
	}
	if err != nil {
		ui.fail(err)
		return
	}
	ui.lines(c.Details())
}

func (ui *UI) updateCustomerStatus(ctx context.Context) {
	ui.section("UPDATE CUSTOMER STATUS")
	c, ok := ui.findCustomer(ctx)
	if !ok {
		return
	}
	ui.printf("Current status: %s\n", c.Status)
	ui.printf("Available statuses: ACTIVE, SUSPENDED, INACTIVE\n")
	raw, ok := ui.prompt("Enter new status: ")
	if !ok {
		return
	}
	status, err := customer.ParseStatus(raw)
	if err != nil {
		ui.fail(err)
		return
	}

	if _, err := ui.app.CustomerService.UpdateStatus(ctx, c.ID, status); err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Customer status updated successfully!")
}

func (ui *UI) updateCreditScore(ctx context.Context) {
	ui.section("UPDATE CREDIT SCORE")
	c, ok := ui.findCustomer(ctx)
	if !ok {
		return
	}
	ui.printf("Current credit score: %.2f\n", c.CreditScore)
	score, ok := ui.promptAmount("Enter new credit score (0-1000): ")
	if !ok {
		return
	}

	c, err := ui.app.CustomerService.UpdateCreditScore(ctx, c.ID, score)
	if err != nil {
		ui.fail(err)
		return
	}
	ui.ok("Credit score updated to %.2f", c.CreditScore)
}
