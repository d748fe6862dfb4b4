package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/aggregator"
)

const (
	// MaxTransactions caps the transaction section
	MaxTransactions = 20
	// LinesPerPage is the page height of the text rendition
	LinesPerPage = 40
	// goalSectionMinLines is the room the goal header needs on the current page
	goalSectionMinLines = 10

	pageBreak = "\f"
)

// FormatBRL formats an amount as Brazilian reais, e.g. "R$ 1.234,56"
func FormatBRL(amount decimal.Decimal) string {
	s := "R$ " + humanize.FormatFloat("#.###,##", amount.Abs().Round(2).InexactFloat64())
	if amount.IsNegative() {
		return "-" + s
	}
	return s
}

// RenderText writes the plain-text report. Pages are separated by form feeds.
func RenderText(w io.Writer, snap *Snapshot) error {
	p := &pager{w: w}

	p.line("Relatório Financeiro Pessoal")
	p.line("")
	p.line("Período: " + snap.PeriodLabel)
	p.line("Gerado em: " + snap.GeneratedAt.Format("02/01/2006"))
	p.line("")

	p.line("RESUMO FINANCEIRO")
	p.line("Receitas: " + FormatBRL(snap.Income))
	p.line("Despesas: " + FormatBRL(snap.Expenses))
	p.line("Saldo: " + FormatBRL(snap.Balance))
	p.line("")

	p.line("TRANSAÇÕES")
	txns := snap.Transactions
	if len(txns) > MaxTransactions {
		txns = txns[:MaxTransactions]
	}
	for _, tx := range txns {
		sign := "-"
		if tx.Type == domain.TransactionTypeIncome {
			sign = "+"
		}
		p.line(fmt.Sprintf("%s | %s%s | %s | %s", tx.Date, sign, FormatBRL(tx.Amount), tx.Category, tx.Description))
	}

	if len(snap.Goals) > 0 {
		p.ensure(goalSectionMinLines)
		p.line("")
		p.line("METAS FINANCEIRAS")
		for _, g := range snap.Goals {
			progress := aggregator.GoalProgress(g).StringFixed(1)
			p.line(fmt.Sprintf("%s: %s / %s (%s%%)", g.Name, FormatBRL(g.CurrentAmount), FormatBRL(g.TargetAmount), strings.Replace(progress, ".", ",", 1)))
		}
	}

	return p.err
}

// pager writes lines and inserts a page break once a page is full.
// The first write error sticks and suppresses further output.
type pager struct {
	w     io.Writer
	lines int
	err   error
}

func (p *pager) line(s string) {
	if p.lines == LinesPerPage {
		p.write(pageBreak)
		p.lines = 0
	}
	p.write(s + "\n")
	p.lines++
}

// ensure starts a new page unless n more lines fit on the current one
func (p *pager) ensure(n int) {
	if p.lines > 0 && p.lines+n > LinesPerPage {
		p.write(pageBreak)
		p.lines = 0
	}
}

func (p *pager) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}
