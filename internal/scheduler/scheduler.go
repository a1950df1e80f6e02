package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"SatoshiSim/internal/cart"
	"SatoshiSim/internal/catalog"
	"SatoshiSim/internal/live"
	"SatoshiSim/internal/market"
	"SatoshiSim/internal/prefs"
	"SatoshiSim/internal/recorder"
	"SatoshiSim/internal/report"
	"SatoshiSim/internal/valuation"
)

// Scheduler owns the periodic work: the live price refresh and the valuation
// snapshot. Fetches are fire-and-forget; a failed or slow fetch never touches
// shared state, and a late response simply loses to whichever quote was
// applied after it.
type Scheduler struct {
	Cron        *cron.Cron
	Fetcher     live.Fetcher
	Market      *market.State
	Scenario    valuation.Scenario
	Ledger      *cart.Ledger
	Catalog     *catalog.Catalog
	Prefs       *prefs.Prefs
	Recorder    recorder.Recorder
	HoldingsBTC float64
	DefaultYear int
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, fetcher live.Fetcher, mkt *market.State, scenario valuation.Scenario,
	ledger *cart.Ledger, cat *catalog.Catalog, pr *prefs.Prefs, rec recorder.Recorder,
	holdingsBTC float64, defaultYear int) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Fetcher:     fetcher,
		Market:      mkt,
		Scenario:    scenario,
		Ledger:      ledger,
		Catalog:     cat,
		Prefs:       pr,
		Recorder:    rec,
		HoldingsBTC: holdingsBTC,
		DefaultYear: defaultYear,
		Ctx:         ctx,
	}
}

// RegisterAll registers the refresh and snapshot tasks.
func (s *Scheduler) RegisterAll(refreshCron, snapshotCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully. No refresh outlives the process.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RefreshNow executes the refresh task immediately (for manual trigger / startup).
func (s *Scheduler) RefreshNow() {
	s.refreshTask()
}

// SnapshotNow executes the snapshot task immediately.
func (s *Scheduler) SnapshotNow() {
	s.snapshotTask()
}

// HandleCommand processes a user command and returns a reply. This is the
// surface the presentation layer drives: year selection and cart mutation
// come in here as discrete events.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return s.help()
	}

	switch fields[0] {
	case "status":
		return s.statusReply()

	case "year":
		if len(fields) == 1 || fields[1] == "clear" {
			s.Prefs.ClearSelectedYear()
			return fmt.Sprintf("已重置买入年份 (默认 %d年)", s.Market.EarliestYear(s.DefaultYear))
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Sprintf("无法识别年份 %q", fields[1])
		}
		s.Prefs.SetSelectedYear(year)
		return s.valuationReply(year)

	case "items":
		return s.itemsReply()

	case "add", "remove":
		if len(fields) < 2 {
			return "用法: " + fields[0] + " <编号> [数量]"
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Sprintf("无法识别编号 %q", fields[1])
		}
		qty := 1
		if len(fields) > 2 {
			if qty, err = strconv.Atoi(fields[2]); err != nil {
				return fmt.Sprintf("无法识别数量 %q", fields[2])
			}
		}
		if fields[0] == "add" {
			s.Ledger.Add(idx, qty)
		} else {
			s.Ledger.Remove(idx, qty)
		}
		totalValue := s.Market.TotalValue(s.HoldingsBTC)
		return report.FormatCartSummary(totalValue, s.Ledger.Total(), s.Ledger.Remaining(totalValue))

	case "clear":
		s.Ledger.Clear()
		return "购物车已清空"

	case "buy":
		order, err := s.Ledger.Checkout(s.Market.TotalValue(s.HoldingsBTC))
		if err != nil {
			return "购物车是空的，先挑点什么吧"
		}
		if err := s.Recorder.RecordOrder(order); err != nil {
			log.Printf("[ERROR] record order: %v", err)
		}
		return report.FormatOrder(order)

	default:
		return s.help()
	}
}

func (s *Scheduler) help() string {
	return "可用命令:\n• status\n• year <年份> | year clear\n• items\n• add <编号> [数量]\n• remove <编号> [数量]\n• clear\n• buy"
}

func (s *Scheduler) statusReply() string {
	year := s.Prefs.SelectedYear(s.Market.EarliestYear(s.DefaultYear))
	totalValue := s.Market.TotalValue(s.HoldingsBTC)
	cartTotal := s.Ledger.Total()
	return report.FormatQuote(s.Market.Quote()) + "\n" +
		s.valuationReply(year) +
		report.FormatCartSummary(totalValue, cartTotal, totalValue-cartTotal)
}

func (s *Scheduler) valuationReply(year int) string {
	v, err := s.Scenario.Evaluate(year, s.Market.PriceForYear, s.Market.Quote().USD)
	if err != nil {
		return fmt.Sprintf("无法计算 %d年 的估值: %v", year, err)
	}
	return report.FormatValuation(v, s.Scenario.FiatAmount)
}

func (s *Scheduler) itemsReply() string {
	totalValue := s.Market.TotalValue(s.HoldingsBTC)
	remaining := s.Ledger.Remaining(totalValue)

	var b strings.Builder
	for i, item := range s.Catalog.Items() {
		inCart := s.Ledger.QuantityOf(i)
		can := valuation.Purchasable(remaining, item.Price, inCart)
		b.WriteString(fmt.Sprintf("%d. %s 单价 %s | 购物车 %d%s | 还能买 %d%s\n",
			i, item.Name, report.FormatUSD(item.Price), inCart, item.Unit, can, item.Unit))
	}
	return b.String()
}

// refreshTask fetches the live price and applies it. Every failure mode here
// is soft: the previous quote stays, a warning is logged, and the next tick
// tries again.
func (s *Scheduler) refreshTask() {
	ctx, cancel := context.WithTimeout(s.Ctx, 25*time.Second)
	defer cancel()

	q, err := s.Fetcher.FetchQuote(ctx)
	if err != nil {
		log.Printf("[WARN] price refresh failed (%s): %v, keeping previous quote", s.Fetcher.Name(), err)
		return
	}
	if !s.Market.ApplyQuote(q) {
		return
	}
	log.Printf("[INFO] %s", report.FormatQuote(q))

	if err := s.Recorder.RecordQuote(q); err != nil {
		log.Printf("[ERROR] record quote: %v", err)
	}
}

// snapshotTask evaluates the configured scenario for the selected year and
// logs it together with the cart summary.
func (s *Scheduler) snapshotTask() {
	year := s.Prefs.SelectedYear(s.Market.EarliestYear(s.DefaultYear))

	v, err := s.Scenario.Evaluate(year, s.Market.PriceForYear, s.Market.Quote().USD)
	if err != nil {
		log.Printf("[ERROR] snapshot valuation for %d: %v", year, err)
		return
	}
	log.Printf("[INFO] snapshot:\n%s", report.FormatValuation(v, s.Scenario.FiatAmount))

	totalValue := s.Market.TotalValue(s.HoldingsBTC)
	cartTotal := s.Ledger.Total()
	log.Printf("[INFO] cart:\n%s", report.FormatCartSummary(totalValue, cartTotal, totalValue-cartTotal))

	if err := s.Recorder.RecordValuation(v); err != nil {
		log.Printf("[ERROR] record valuation: %v", err)
	}
}
