// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/tagraph"
	"github.com/poiesic/tagraph/corpus"
	"github.com/poiesic/tagraph/storage"
	"github.com/poiesic/tagraph/storage/badger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	defaults := tagraph.DefaultConfig()

	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
	languageFlag := &cli.StringFlag{
		Name:  "language",
		Usage: "Stemmer and stopword language",
		Value: defaults.Language,
	}
	buildFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "corpus",
			Aliases:  []string{"c"},
			Usage:    "Path to a YAML or JSON corpus file",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "min-count",
			Usage: "Drop canonical tags seen fewer times than this",
			Value: defaults.MinCount,
		},
		&cli.IntFlag{
			Name:  "pool-size",
			Usage: "Number of construction workers",
			Value: defaults.PoolSize,
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "Report construction progress on stderr",
		},
	}

	return &cli.App{
		Name:  "tagraph",
		Usage: "Tag-graph retrieval over categorized catalog items",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build an index from a corpus and store it",
				Action: buildCommand,
				Flags:  append([]cli.Flag{dbFlag, languageFlag}, buildFlags...),
			},
			{
				Name:      "query",
				Usage:     "Resolve a query against a stored index",
				ArgsUsage: "WORDS...",
				Action:    queryCommand,
				Flags: []cli.Flag{
					dbFlag,
					languageFlag,
					&cli.IntFlag{
						Name:  "min-number",
						Usage: "Smallest candidate set a query may narrow to",
						Value: defaults.MinNumber,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Acceptance floor for fuzzy expansion",
						Value: defaults.MinSimilarity,
					},
					&cli.BoolFlag{
						Name:  "no-expand",
						Usage: "Disable fuzzy query expansion",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Log every tag the query applies",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Describe a stored index",
				Action: statsCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.BoolFlag{
						Name:  "tags",
						Usage: "List canonical tags with their variants",
					},
				},
			},
			{
				Name:   "watch",
				Usage:  "Rebuild and store the index whenever the corpus changes",
				Action: watchCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					languageFlag,
					&cli.DurationFlag{
						Name:  "debounce",
						Usage: "Quiet period before a rebuild",
						Value: tagraph.DefaultDebounce,
					},
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "Serve Prometheus metrics on this address (e.g. :9090)",
					},
				}, buildFlags...),
			},
		},
	}
}

// openRepository opens the snapshot store at the --db path.
// The returned func closes both repository and backend.
func openRepository(c *cli.Context) (storage.SnapshotRepository, func(), error) {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	repo, err := badger.NewSnapshotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			slog.Error("error closing snapshot repository", "err", err)
		}
		if err := backend.Close(); err != nil {
			slog.Error("error closing backend storage", "err", err)
		}
	}, nil
}

func buildConfig(c *cli.Context) *tagraph.Config {
	opts := []tagraph.ConfigOption{tagraph.WithLanguage(c.String("language"))}
	if c.IsSet("min-count") {
		opts = append(opts, tagraph.WithMinCount(c.Int("min-count")))
	}
	if c.IsSet("pool-size") {
		opts = append(opts, tagraph.WithPoolSize(c.Int("pool-size")))
	}
	if c.IsSet("min-number") {
		opts = append(opts, tagraph.WithMinNumber(c.Int("min-number")))
	}
	if c.IsSet("min-similarity") {
		opts = append(opts, tagraph.WithMinSimilarity(c.Float64("min-similarity")))
	}
	if c.Bool("no-expand") {
		opts = append(opts, tagraph.WithoutExpansion())
	}
	opts = append(opts, tagraph.WithVerbose(c.Bool("verbose")))
	return tagraph.NewConfig(opts...)
}

func buildCommand(c *cli.Context) error {
	ctx := c.Context

	items, err := corpus.Load(c.String("corpus"))
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	engineOpts := []tagraph.EngineOption{tagraph.WithConfig(buildConfig(c))}
	if c.Bool("progress") {
		engineOpts = append(engineOpts, tagraph.WithProgress(c.App.ErrWriter))
	}
	engine, err := tagraph.NewEngine(engineOpts...)
	if err != nil {
		return err
	}

	idx, err := engine.Build(ctx, items)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	repo, closeRepo, err := openRepository(c)
	if err != nil {
		return err
	}
	defer closeRepo()

	meta, err := engine.SaveSnapshot(ctx, repo)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Corpus: %s (%d items)\n", c.String("corpus"), len(items))
	fmt.Fprintf(c.App.Writer, "Index: %d items, %d tags, %d edges\n",
		idx.Graph.NumItems(), idx.Graph.NumTags(), idx.Graph.NumEdges())
	fmt.Fprintf(c.App.Writer, "Stored generation %d in %s\n", meta.Generation, c.String("db"))
	return nil
}

func queryCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query words are required")
	}

	cfg := buildConfig(c)
	engine, err := tagraph.NewEngine(tagraph.WithConfig(cfg))
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(c)
	if err != nil {
		return err
	}
	defer closeRepo()

	if _, err := engine.LoadSnapshot(c.Context, repo); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no index stored in %s, run build first", c.String("db"))
		}
		return err
	}

	res, err := engine.Query(query)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if len(res.Expanded) > 0 {
		fmt.Fprintf(w, "Expanded: %s\n", strings.Join(res.Expanded, ", "))
	}
	applied := make([]string, 0, len(res.Applied))
	for _, tag := range res.Applied {
		applied = append(applied, tag.Key.String())
	}
	fmt.Fprintf(w, "Applied tags: %s\n", strings.Join(applied, " "))
	if res.EarlyStopped() {
		fmt.Fprintf(w, "Stopped at %s with %d candidates\n", res.StoppedAt.Key, len(res.Narrowed))
	}

	fmt.Fprintf(w, "Narrowed (%d):\n", len(res.Narrowed))
	for _, item := range res.NarrowedItems() {
		fmt.Fprintf(w, "  %s: %s\n", item.ID, item.Name)
	}
	fmt.Fprintf(w, "Previous (%d):\n", len(res.Previous))
	for _, item := range res.PreviousItems() {
		fmt.Fprintf(w, "  %s: %s\n", item.ID, item.Name)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	repo, closeRepo, err := openRepository(c)
	if err != nil {
		return err
	}
	defer closeRepo()

	w := c.App.Writer
	if !c.Bool("tags") {
		meta, err := repo.LoadMeta(c.Context)
		if err != nil {
			return err
		}
		printMeta(c, meta)
		return nil
	}

	snapshot, err := repo.LoadSnapshot(c.Context)
	if err != nil {
		return err
	}
	printMeta(c, &snapshot.Meta)
	fmt.Fprintln(w, "Tags:")
	for _, tag := range snapshot.Tags {
		variants := make([]string, 0, len(tag.Variants))
		for _, name := range tag.VariantNames() {
			variants = append(variants, fmt.Sprintf("%s=%d", name, tag.Variants[name]))
		}
		fmt.Fprintf(w, "  %-16s %-30s %5d  %s\n", tag.Category, tag.Key, tag.Count, strings.Join(variants, ", "))
	}
	return nil
}

func printMeta(c *cli.Context, meta *storage.Meta) {
	w := c.App.Writer
	fmt.Fprintf(w, "Generation: %d\n", meta.Generation)
	fmt.Fprintf(w, "Built at: %s\n", meta.BuiltAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Language: %s\n", meta.Language)
	fmt.Fprintf(w, "Min count: %d\n", meta.MinCount)
	fmt.Fprintf(w, "Items: %d\n", meta.NumItems)
	fmt.Fprintf(w, "Tags: %d\n", meta.NumTags)
	fmt.Fprintf(w, "Edges: %d\n", meta.NumEdges)
}

func watchCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	engineOpts := []tagraph.EngineOption{
		tagraph.WithConfig(buildConfig(c)),
		tagraph.WithMetrics(tagraph.NewMetrics(reg)),
	}
	if c.Bool("progress") {
		engineOpts = append(engineOpts, tagraph.WithProgress(c.App.ErrWriter))
	}
	engine, err := tagraph.NewEngine(engineOpts...)
	if err != nil {
		return err
	}

	if addr := c.String("metrics-addr"); addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "addr", addr, "err", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		slog.Info("serving metrics", "addr", addr)
	}

	repo, closeRepo, err := openRepository(c)
	if err != nil {
		return err
	}
	defer closeRepo()

	path := c.String("corpus")
	items, err := corpus.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	if _, err := engine.Build(ctx, items); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	if _, err := engine.SaveSnapshot(ctx, repo); err != nil {
		return err
	}

	watcher, err := engine.WatchCorpus(path, tagraph.WithDebounce(c.Duration("debounce")))
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	for ev := range watcher.Reloads() {
		if ev.Err != nil {
			continue
		}
		meta, err := engine.SaveSnapshot(ctx, repo)
		if err != nil {
			slog.Error("failed to store rebuilt index", "err", err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "Stored generation %d (%d items, %d tags)\n",
			meta.Generation, meta.NumItems, meta.NumTags)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
