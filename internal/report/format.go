// Package report renders simulator state into display strings for the
// console summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"SatoshiSim/internal/model"
)

// FormatAmount compacts large amounts the way the page does: billions,
// millions and thousands get a suffix, anything smaller is shown whole.
func FormatAmount(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// FormatUSD renders a dollar amount with thousands separators and two
// decimals.
func FormatUSD(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := int64(v)
	cents := int64((v-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(whole), cents)
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatValuation renders one what-if evaluation.
func FormatValuation(v model.Valuation, fiatAmount float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 5KBTC 后悔模拟 | %s\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("买入年份: %d年 (均价 %s)\n", v.Year, FormatUSD(v.HistoricalPrice)))
	b.WriteString(fmt.Sprintf("投入: ¥%.0f → %.4f BTC\n", fiatAmount, v.BTCAmount))
	b.WriteString(fmt.Sprintf("现值: %s\n", FormatUSD(v.CurrentValue)))
	delta := FormatUSD(v.Delta)
	if v.Delta >= 0 {
		delta = "+" + delta
	}
	b.WriteString(fmt.Sprintf("相对持币不动: %s\n", delta))
	return b.String()
}

// FormatQuote renders the live price line.
func FormatQuote(q model.Quote) string {
	arrow := "📈"
	if q.Change24h < 0 {
		arrow = "📉"
	}
	return fmt.Sprintf("%s BTC %s (24h %+.2f%%)", arrow, FormatUSD(q.USD), q.Change24h)
}

// FormatCartSummary renders the standing cart footer. A negative remainder
// gets the broke warning, never an error.
func FormatCartSummary(totalValue, cartTotal, remaining float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("总资产价值: %s\n", FormatUSD(totalValue)))
	b.WriteString(fmt.Sprintf("购物车总计: %s\n", FormatUSD(cartTotal)))
	b.WriteString(fmt.Sprintf("剩余资产: %s\n", FormatUSD(remaining)))
	if remaining < 0 {
		b.WriteString("⚠️ 这都能破产，你到底想要干啥？\n")
	}
	return b.String()
}

// FormatOrder renders a checkout receipt.
func FormatOrder(o model.Order) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧾 订单 %s | %s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04:05")))
	for _, line := range o.Lines {
		b.WriteString(fmt.Sprintf("  %s × %d = %s\n", line.Name, line.Quantity, FormatUSD(line.Subtotal)))
	}
	b.WriteString(fmt.Sprintf("  合计: %s (剩余 %s)\n", FormatUSD(o.Total), FormatUSD(o.Remaining)))
	b.WriteString("我的朋友，请勤劳致富！早起早睡，梦里什么都有！\n")
	return b.String()
}
