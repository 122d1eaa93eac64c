package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer, followed by narrative sections.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Symbol, t.Direction, shortID(t.ID))
	if t.Grade != "" {
		heading += fmt.Sprintf(" [%s]", t.Grade)
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":ACCOUNT_ID: %s\n", t.AccountID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":INSTRUMENT_TYPE: %s\n", t.InstrumentType))
	if t.Session != "" {
		b.WriteString(fmt.Sprintf(":SESSION: %s\n", t.Session))
	}
	b.WriteString(fmt.Sprintf(":POSITION_SIZE: %g\n", t.PositionSize))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %.5f\n", t.StopLoss))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.5f\n", t.TakeProfit))
	if t.ActualExit != nil {
		b.WriteString(fmt.Sprintf(":ACTUAL_EXIT: %.5f\n", *t.ActualExit))
	}
	b.WriteString(fmt.Sprintf(":RISK_AMOUNT: %.2f\n", t.Risk()))
	b.WriteString(fmt.Sprintf(":RR: %.2f\n", t.RiskToReward))
	b.WriteString(fmt.Sprintf(":CONFLUENCE: %.1f\n", t.ConfluenceScore))
	if t.Completed() {
		b.WriteString(fmt.Sprintf(":RESULT: %s\n", t.Result))
		b.WriteString(fmt.Sprintf(":PNL: %.2f\n", ComputeTradePnl(t)))
	}
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", t.CreatedAt.UTC().Format(time.RFC3339)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Checklist\n")
	for _, c := range t.Checklist {
		b.WriteString(fmt.Sprintf("- [X] %s\n", c))
	}
	b.WriteString("\n*** Notes\n")
	if t.Notes != "" {
		b.WriteString(t.Notes)
		b.WriteString("\n")
	} else {
		b.WriteString("- \n")
	}
	b.WriteString("\n*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
