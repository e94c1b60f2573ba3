package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"neotrack/internal/core"
	"neotrack/internal/services"
)

func newAddCmd(a *app) *cobra.Command {
	var in services.CreateInput
	c := &cobra.Command{
		Use:   "add TITLE AMOUNT",
		Short: "Record an income or expense",
		Long: `Record a transaction. The amount accepts a dot or comma as the decimal
separator. Type defaults to expense, date to today and category to Other.

Example:
  neotrack-cli add "Groceries" 42,10 --category Food --date 2025-06-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			in.Title, in.Amount = args[0], args[1]
			t, err := svc.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				titleStyle.Render("Added"), t.ID, t.Title, amountStyle(t.Type).Render(core.FormatSigned(t)))
			return nil
		},
	}
	c.Flags().StringVarP(&in.Type, "type", "t", "expense", "income or expense")
	c.Flags().StringVarP(&in.Category, "category", "c", "", "category (default Other)")
	c.Flags().StringVarP(&in.Date, "date", "d", "", "date as YYYY-MM-DD (default today)")
	c.Flags().StringVarP(&in.Notes, "notes", "n", "", "free-form notes")
	return c
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}
			removed, err := svc.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("No transaction #%d", id)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", titleStyle.Render("Removed"), id)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		typ   string
		limit int
		all   bool
	)
	c := &cobra.Command{
		Use:   "list",
		Short: "Show the newest transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			filter, err := core.ParseFilter(typ)
			if err != nil {
				return fmt.Errorf("invalid type %q: must be all, income or expense", typ)
			}
			if limit < 0 {
				return fmt.Errorf("invalid limit %d", limit)
			}

			var txs core.Ledger
			if all {
				txs = core.FilterByType(svc.All(cmd.Context()), filter)
			} else {
				txs = svc.List(cmd.Context(), filter, limit)
			}
			if len(txs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No transactions yet."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), transactionsTable(txs))
			return nil
		},
	}
	c.Flags().StringVarP(&typ, "type", "t", "all", "all, income or expense")
	c.Flags().IntVarP(&limit, "limit", "l", 0, "maximum rows (default from LIST_LIMIT)")
	c.Flags().BoolVarP(&all, "all", "a", false, "show every transaction")
	return c
}
