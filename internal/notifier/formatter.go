package notifier

import (
	"fmt"
	"strings"
	"time"

	"MarketGrid/internal/model"
)

// FormatPrice renders a price with two decimals. The exact binary value is
// rounded, so 2.675 prints as 2.67.
func FormatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// FormatSymbolSummary is the console block for one symbol.
func FormatSymbolSummary(r *model.SymbolReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Symbol: %s\n", r.Symbol))
	b.WriteString(fmt.Sprintf("Last Close: %s\n", FormatPrice(r.LastClose)))
	b.WriteString(fmt.Sprintf("Trend: %s\n", r.Signal))
	return b.String()
}

// FormatTelegramReport formats all symbol reports into one HTML message.
func FormatTelegramReport(reports []*model.SymbolReport, fastWindow, slowWindow int, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>MarketGrid</b> | %s\n", now.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("SMA %d / %d\n\n", fastWindow, slowWindow))
	for _, r := range reports {
		icon := "➖"
		switch r.Signal {
		case model.TrendUp:
			icon = "📈"
		case model.TrendDown:
			icon = "📉"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b>: %s (%s)\n", icon, r.Symbol, FormatPrice(r.LastClose), r.Signal))
		if r.Insufficient {
			b.WriteString("   ⚠️ not enough history for both averages\n")
		}
	}
	return b.String()
}
