package main

import (
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"cinematch-engine/internal/catalog"
	"cinematch-engine/internal/config"
	"cinematch-engine/internal/events"
	"cinematch-engine/internal/httpapi"
	"cinematch-engine/internal/session"
	"cinematch-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one),
	// else local folder.
	dataDir := os.Getenv("CINEMATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; two processes sharing the db would fight.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		raw, err := config.Load(userCfgPath)
		if err != nil {
			return raw, err
		}
		normalized, vr := config.NormalizeAndValidate(raw)
		if !vr.OK() {
			return raw, errors.New(vr.Errors[0])
		}
		for _, warn := range vr.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	// Catalog and snapshot db are independent; open them in parallel.
	var (
		cat *catalog.Catalog
		db  *store.DB
	)
	var g errgroup.Group
	g.Go(func() error {
		started := time.Now()
		c, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		log.Printf("[catalog] loaded %d movies, %d genres in %s",
			c.Len(), len(c.Genres()), time.Since(started).Round(time.Millisecond))
		cat = c
		return nil
	})
	g.Go(func() error {
		d, err := store.Open(filepath.Join(dataDir, "cinematch.db"))
		if err != nil {
			return err
		}
		if err := store.Migrate(d.Pool); err != nil {
			_ = d.Close()
			return err
		}
		db = d
		return nil
	})
	if err := g.Wait(); err != nil {
		var le *catalog.LoadError
		if errors.As(err, &le) {
			// no catalog, no recommendations; nothing useful to serve
			log.Fatalf("[catalog] %v", le)
		}
		log.Fatal(err)
	}
	defer db.Close()

	hub := events.NewHub()
	sessions := session.NewManager(cat)

	mux := httpapi.NewMux(httpapi.Deps{
		Catalog:     cat,
		Sessions:    sessions,
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	limiter := httpapi.NewClientLimiter(10, 20)
	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.RateLimit(limiter),
		httpapi.Cors,
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
