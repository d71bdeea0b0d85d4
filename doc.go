// Package tagraph is a tag-graph retrieval engine.
//
// Items carry free-text descriptive tags grouped by category. The engine
// collapses surface variants of a tag into one canonical tag keyed by its
// lemma tuple, drops tags rarer than a frequency floor, and links every item
// to its canonical tags in a bipartite graph. Queries are lemmatized and
// narrow the full item set one matching tag at a time, stopping before the
// candidate set shrinks below a minimum size.
//
// # Usage
//
//	engine, err := tagraph.NewEngine(tagraph.WithConfig(tagraph.NewConfig(
//	    tagraph.WithMinCount(5),
//	    tagraph.WithMinNumber(2),
//	)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items, err := corpus.Load("recipes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := engine.Build(ctx, items); err != nil {
//	    log.Fatal(err)
//	}
//	res, err := engine.Query("постный ужин")
//
// Before resolution a query is enriched with the single-word tags closest
// to its tokens, so misspelled tag words still match.
//
// # Concurrency
//
// Build constructs a complete new index and publishes it atomically; queries
// running meanwhile see either the old or the new index, never a mix.
// CorpusWatcher rebuilds on every change to a corpus file.
//
// # Persistence
//
// SaveSnapshot and LoadSnapshot store an index in a storage.SnapshotRepository
// such as the BadgerDB one in storage/badger, so a serving process can start
// without rebuilding.
package tagraph
