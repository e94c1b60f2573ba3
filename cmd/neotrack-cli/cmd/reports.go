package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"neotrack/internal/core"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals, balance and trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			s := svc.Summary(cmd.Context())

			lines := []string{
				titleStyle.Render("Summary"),
				row("Income", incomeStyle.Render(core.FormatCurrency(s.Income))+mutedStyle.Render(fmt.Sprintf(" (%d)", s.IncomeCount))),
				row("Expenses", expenseStyle.Render(core.FormatCurrency(s.Expense))+mutedStyle.Render(fmt.Sprintf(" (%d)", s.ExpenseCount))),
				row("Balance", signedStyle(s.Balance).Render(core.FormatCurrency(s.Balance))),
				row("Expense ratio", strconv.Itoa(s.ExpenseRatio)+"%"),
			}
			if s.Trend != nil {
				lines = append(lines, row("Trend", signedStyle(float64(*s.Trend)).Render(fmt.Sprintf("%+d%%", *s.Trend))))
			} else {
				lines = append(lines, row("Trend", mutedStyle.Render("not enough data")))
			}
			if s.Remaining != nil {
				lines = append(lines,
					row("Budget", core.FormatCurrency(s.Budget)),
					row("Remaining", signedStyle(*s.Remaining).Render(core.FormatCurrency(*s.Remaining))))
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return nil
		},
	}
}

func newBreakdownCmd(a *app) *cobra.Command {
	var year, month, top int
	c := &cobra.Command{
		Use:   "breakdown",
		Short: "Show the top expense categories of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if (year == 0) != (month == 0) {
				return fmt.Errorf("--year and --month must be given together")
			}
			if month < 0 || month > 12 || year < 0 || top < 0 {
				return fmt.Errorf("invalid period or top value")
			}

			ov := svc.Breakdown(cmd.Context(), year, month, top)
			period := time.Date(ov.Year, time.Month(ov.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(period)+" "+
				mutedStyle.Render("total ")+expenseStyle.Render(core.FormatCurrency(ov.Total)))
			if len(ov.ByCategory) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No expenses this month."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), sharesTable(ov.ByCategory))
			return nil
		},
	}
	c.Flags().IntVar(&year, "year", 0, "year (default current)")
	c.Flags().IntVar(&month, "month", 0, "month 1-12 (default current)")
	c.Flags().IntVar(&top, "top", 0, "number of categories (default from BREAKDOWN_TOP)")
	return c
}

func newBudgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "budget [VALUE]",
		Short: "Show or set the budget; 0 clears it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if _, err := svc.SetBudget(cmd.Context(), args[0]); err != nil {
					return err
				}
			}
			if b := svc.Budget(cmd.Context()); b > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), row("Budget", core.FormatCurrency(b)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No budget set."))
			}
			return nil
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	var typ string
	c := &cobra.Command{
		Use:   "categories",
		Short: "List the categories offered for new transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if typ != "" {
				if _, err := core.ParseType(typ); err != nil {
					return fmt.Errorf("invalid type %q: must be income or expense", typ)
				}
				typ = strings.ToLower(strings.TrimSpace(typ))
			}
			tax, err := svc.Categories(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if typ == "" || typ == string(core.Income) {
				fmt.Fprintln(out, row("Income", strings.Join(tax.Income, ", ")))
			}
			if typ == "" || typ == string(core.Expense) {
				fmt.Fprintln(out, row("Expense", strings.Join(tax.Expense, ", ")))
			}
			return nil
		},
	}
	c.Flags().StringVarP(&typ, "type", "t", "", "income or expense (default both)")
	return c
}
