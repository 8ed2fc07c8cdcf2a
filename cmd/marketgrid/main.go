package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"MarketGrid/internal/chart"
	"MarketGrid/internal/collector"
	"MarketGrid/internal/config"
	"MarketGrid/internal/notifier"
	"MarketGrid/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketGrid starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var base collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		base = collector.NewVsTraderFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		yf := collector.NewYahooFetcher(cfg.Proxy)
		for k, v := range cfg.DataSource.YahooSymbols {
			yf.SymbolMap[k] = v
		}
		base = yf
	}
	fetcher := collector.NewRoutingFetcher(base)
	if len(cfg.Binance.Symbols) > 0 {
		bf := collector.NewBinanceFetcher(cfg.Binance.APIKey, cfg.Binance.SecretKey, cfg.Binance.Symbols)
		for symbol := range cfg.Binance.Symbols {
			fetcher.Route(bf, symbol)
		}
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, collector.Settings{
		Symbols:        cfg.Symbols,
		FastWindow:     cfg.Analysis.FastWindow,
		SlowWindow:     cfg.Analysis.SlowWindow,
		LookbackMonths: cfg.Analysis.LookbackMonths,
	})

	// Presenters: console, chart, then Telegram so the chart exists when it sends.
	grid := chart.NewGridRenderer(cfg.Output.ChartPath)
	grid.Columns = cfg.Output.Columns
	presenters := notifier.MultiPresenter{notifier.NewConsoleNotifier(os.Stdout), grid}
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		tn.Chart = grid
		tn.FastWindow = cfg.Analysis.FastWindow
		tn.SlowWindow = cfg.Analysis.SlowWindow
		presenters = append(presenters, tn)
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, col, presenters)

	if cfg.Schedule.Cron == "" {
		if err := sched.RunNow(ctx); err != nil {
			stop()
			log.Fatalf("[FATAL] run failed: %v", err)
		}
		log.Println("[INFO] MarketGrid finished")
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}

	// Optional: run immediately, before cron can fire a concurrent run
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing report now")
		if err := sched.RunNow(ctx); err != nil {
			log.Printf("[ERROR] initial report: %v", err)
		}
	}
	sched.Start()

	log.Printf("[INFO] MarketGrid is running on %q. Press Ctrl+C to stop.", cfg.Schedule.Cron)
	<-ctx.Done()

	log.Println("[INFO] shutdown signal received, stopping...")
	sched.Stop()
	log.Println("[INFO] MarketGrid stopped")
}
