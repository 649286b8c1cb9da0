// Package cli is the interactive, menu driven front end of WariBank. It
// reads operator input line by line and drives the application services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amirasaad/waribank/pkg/app"
	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

const menuWidth = 62

var (
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1).Width(menuWidth)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

type entry struct {
	label  string
	action func(ctx context.Context)
}

type menu struct {
	title   string
	entries []entry
	back    string
}

// UI is one operator session.
type UI struct {
	app *app.App
	in  *bufio.Reader
	out io.Writer

	// done is set once input is exhausted or unreadable.
	done bool

	heading *color.Color
	success *color.Color
	warning *color.Color
	failure *color.Color
}

// New creates a UI reading from in and writing to out. Colour follows the
// log colour setting and is only used when out is a terminal.
func New(a *app.App, in io.Reader, out io.Writer) *UI {
	ui := &UI{
		app:     a,
		in:      bufio.NewReader(in),
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}

	colored := false
	if f, ok := out.(*os.File); ok && a.Config != nil && a.Config.Log != nil {
		colored = logging.ColorEnabled(f, a.Config.Log.Color)
	}
	for _, c := range []*color.Color{ui.heading, ui.success, ui.warning, ui.failure} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return ui
}

// Run shows the main menu until the operator exits or input ends. An
// input that fails to read ends the session like EOF does.
func (ui *UI) Run(ctx context.Context) {
	ui.heading.Fprintln(ui.out, "Welcome to WariBank")
	ui.loop(ctx, menu{
		title: "WARI BANK MAIN MENU",
		entries: []entry{
			{"Customer Management", ui.customerMenu},
			{"Account Management", ui.accountMenu},
			{"Transaction Management", ui.transactionMenu},
			{"Loan Management", ui.loanMenu},
			{"Reports & Analytics", ui.reportMenu},
			{"System Settings", ui.systemMenu},
		},
		back: "Exit",
	})
	fmt.Fprintln(ui.out, "\nThank you for using WariBank!")
	fmt.Fprintln(ui.out, "Goodbye!")
}

func (ui *UI) loop(ctx context.Context, m menu) {
	for !ui.done && ctx.Err() == nil {
		ui.render(m)
		choice, ok := ui.choice(len(m.entries))
		if !ok || choice == 0 {
			return
		}
		m.entries[choice-1].action(ctx)
	}
}

func (ui *UI) render(m menu) {
	lines := make([]string, 0, len(m.entries)+3)
	lines = append(lines, lipgloss.PlaceHorizontal(menuWidth-2, lipgloss.Center, titleStyle.Render(m.title)), "")
	for i, e := range m.entries {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, e.label))
	}
	lines = append(lines, "0. "+m.back)
	fmt.Fprintln(ui.out)
	fmt.Fprintln(ui.out, boxStyle.Render(strings.Join(lines, "\n")))
}

// choice reads a menu selection in [0, n], re-prompting until it gets one.
func (ui *UI) choice(n int) (int, bool) {
	for {
		raw, ok := ui.prompt("Enter your choice: ")
		if !ok {
			return 0, false
		}
		c, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(ui.out, "Please enter a valid number.")
			continue
		}
		if c < 0 || c > n {
			fmt.Fprintln(ui.out, "Invalid choice. Please try again.")
			continue
		}
		return c, true
	}
}

// prompt prints label and returns the trimmed reply. It reports false once
// input is exhausted.
func (ui *UI) prompt(label string) (string, bool) {
	if ui.done {
		return "", false
	}
	fmt.Fprint(ui.out, label)
	line, err := ui.in.ReadString('\n')
	if err != nil && line == "" {
		if !errors.Is(err, io.EOF) {
			ui.app.Deps.Logger.Warn("Reading input failed, ending session", "error", err)
		}
		ui.done = true
		fmt.Fprintln(ui.out)
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (ui *UI) promptID(label, what string) (uint, bool) {
	raw, ok := ui.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		ui.failf("Please enter a valid %s.", what)
		return 0, false
	}
	return uint(id), true
}

func (ui *UI) promptAmount(label string) (float64, bool) {
	raw, ok := ui.prompt(label)
	if !ok {
		return 0, false
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || !domain.IsFinite(amount) {
		ui.failf("Please enter a valid amount.")
		return 0, false
	}
	return amount, true
}

func (ui *UI) promptInt(label string) (int, bool) {
	raw, ok := ui.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		ui.failf("Please enter valid numbers.")
		return 0, false
	}
	return n, true
}

func (ui *UI) confirm(label string) bool {
	raw, ok := ui.prompt(label)
	return ok && strings.EqualFold(raw, "y")
}

func (ui *UI) section(title string) {
	ui.heading.Fprintf(ui.out, "\n=== %s ===\n", title)
}

func (ui *UI) ok(format string, args ...any) {
	ui.success.Fprintf(ui.out, format+"\n", args...)
}

func (ui *UI) warn(format string, args ...any) {
	ui.warning.Fprintf(ui.out, format+"\n", args...)
}

func (ui *UI) fail(err error) {
	ui.failure.Fprintf(ui.out, "Error: %v\n", err)
}

func (ui *UI) failf(format string, args ...any) {
	ui.failure.Fprintf(ui.out, "Error: "+format+"\n", args...)
}

func (ui *UI) printf(format string, args ...any) {
	fmt.Fprintf(ui.out, format, args...)
}

func (ui *UI) lines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(ui.out, l)
	}
}
