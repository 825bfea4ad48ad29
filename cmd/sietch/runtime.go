package main

import (
	"fmt"

	"github.com/pders01/sietch/internal/config"
	"github.com/pders01/sietch/internal/debuglog"
	"github.com/pders01/sietch/internal/search"
	"github.com/pders01/sietch/internal/session"
	"github.com/pders01/sietch/internal/storage"
	"github.com/pders01/sietch/internal/swarm"
	"github.com/pders01/sietch/internal/tui"
	"github.com/pders01/sietch/internal/validation"
)

// runtime is everything a command needs once flags and config are resolved.
type runtime struct {
	cfg      *config.Config
	client   *swarm.Client
	exec     *session.Executor
	store    *storage.Store
	searcher search.Searcher
	palettes map[string]tui.Palette
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	validator := validation.NewServiceURLValidator()
	if cfg.API.AllowPrivate {
		validator = validation.NewPermissiveServiceURLValidator()
	}
	normalized, err := validator.ValidateAndNormalize(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	cfg.API.BaseURL = normalized
	return cfg, nil
}

func openRuntime() (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	rt := &runtime{cfg: cfg, client: swarm.NewClient(cfg)}

	palettes, err := tui.LoadPalettes(cfg.UI.ThemeFile)
	if err != nil {
		debuglog.Warnf("theme file %s ignored: %v", cfg.UI.ThemeFile, err)
		palettes, _ = tui.LoadPalettes("")
	}
	rt.palettes = palettes

	var opts []session.Option
	if cfg.Journal.Enabled {
		// A locked or unreadable journal must not keep the client from
		// talking to the swarm.
		if err := rt.openJournal(); err != nil {
			debuglog.Warnf("journal disabled: %v", err)
		} else {
			opts = append(opts, session.WithJournal(rt.store), session.WithIndex(rt.searcher))
		}
	}
	rt.exec = session.NewExecutor(rt.client, opts...)

	debuglog.WithFields(debuglog.Fields{
		"base_url": cfg.API.BaseURL,
		"journal":  rt.store != nil,
	}).Infof("runtime ready")
	return rt, nil
}

func (rt *runtime) openJournal() error {
	store, err := storage.NewStore(rt.cfg.Journal.Path, rt.cfg.Journal.Timeout)
	if err != nil {
		return err
	}
	rt.store = store

	searcher, err := search.NewBleveEngine(store, rt.cfg.Journal.Index)
	if err != nil {
		debuglog.Warnf("journal index unavailable, using linear search: %v", err)
		searcher = search.NewEngine(store)
	}
	rt.searcher = searcher

	stats := rt.journalStats()
	debuglog.WithFields(debuglog.Fields{
		"entries": stats.entries,
		"indexed": stats.indexed,
	}).Infof("journal open at %s", rt.cfg.Journal.Path)
	return nil
}

type journalStats struct {
	entries int
	indexed int
}

// journalStats reports how many entries are stored and how many the
// searcher covers. Either is -1 when it cannot be read.
func (rt *runtime) journalStats() journalStats {
	stats := journalStats{entries: -1, indexed: -1}
	if rt.store == nil {
		return stats
	}
	if n, err := rt.store.Count(); err == nil {
		stats.entries = n
	} else {
		debuglog.Warnf("counting journal entries: %v", err)
	}
	if ds, ok := rt.searcher.(search.DebugStatser); ok {
		if n, err := ds.DocCount(); err == nil {
			stats.indexed = n
		} else {
			debuglog.Warnf("counting indexed entries: %v", err)
		}
	}
	return stats
}

func (rt *runtime) Close() {
	if c, ok := rt.searcher.(search.Closer); ok {
		if err := c.Close(); err != nil {
			debuglog.Warnf("closing journal index: %v", err)
		}
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			debuglog.Warnf("closing journal: %v", err)
		}
	}
	_ = debuglog.Close()
}
