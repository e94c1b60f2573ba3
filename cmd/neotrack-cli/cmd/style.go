package cmd

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"neotrack/internal/core"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Width(16)
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func amountStyle(t core.Type) lipgloss.Style {
	if t == core.Income {
		return incomeStyle
	}
	return expenseStyle
}

// signedStyle colours a figure by its sign.
func signedStyle(v float64) lipgloss.Style {
	if v < 0 {
		return expenseStyle
	}
	return incomeStyle
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func transactionsTable(l core.Ledger) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "DATE", "TYPE", "CATEGORY", "TITLE", "AMOUNT").
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			if c == 5 && r >= 0 && r < len(l) {
				return amountStyle(l[r].Type).Padding(0, 1)
			}
			return cellStyle
		})
	for _, tx := range l {
		date := tx.Date.String()
		if date == "" {
			date = "-"
		}
		t.Row(strconv.FormatInt(tx.ID, 10), date, tx.Type.String(), tx.Category, tx.Title, core.FormatSigned(tx))
	}
	return t.String()
}

func sharesTable(shares []core.CategoryShare) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("CATEGORY", "AMOUNT", "SHARE").
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, s := range shares {
		t.Row(s.Name, core.FormatCurrency(s.Amount), strconv.Itoa(s.Percent)+"%")
	}
	return t.String()
}
