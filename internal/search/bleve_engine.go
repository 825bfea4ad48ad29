package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/sietch/internal/debuglog"
	"github.com/pders01/sietch/internal/storage"
)

type bleveEngine struct {
	store *storage.Store
	idx   bleve.Index
}

// NewBleveEngine creates or opens a Bleve index at indexPath and indexes the
// current journal. An empty indexPath keeps the index in memory.
func NewBleveEngine(store *storage.Store, indexPath string) (Searcher, error) {
	var idx bleve.Index
	var err error

	if indexPath == "" {
		idx, err = bleve.NewMemOnly(buildIndexMapping())
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(indexPath), 0o755); mkErr != nil {
			return nil, fmt.Errorf("creating index directory: %w", mkErr)
		}
		idx, err = bleve.Open(indexPath)
		if err != nil {
			idx, err = bleve.New(indexPath, buildIndexMapping())
		}
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal index: %w", err)
	}

	be := &bleveEngine{store: store, idx: idx}
	if err := be.reindexAll(); err != nil {
		idx.Close()
		return nil, err
	}
	return be, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	name := bleve.NewTextFieldMapping()
	name.Analyzer = standard.Name
	name.Store = true
	name.IncludeTermVectors = true

	message := bleve.NewTextFieldMapping()
	message.Analyzer = standard.Name
	message.Store = true

	recordID := bleve.NewTextFieldMapping()
	recordID.Analyzer = keyword.Name
	recordID.Store = true

	op := bleve.NewTextFieldMapping()
	op.Analyzer = keyword.Name
	op.Store = true

	dm.AddFieldMappingsAt("name", name)
	dm.AddFieldMappingsAt("message", message)
	dm.AddFieldMappingsAt("record_id", recordID)
	dm.AddFieldMappingsAt("op", op)

	im.DefaultMapping = dm
	return im
}

func entryDoc(e *storage.Entry) map[string]any {
	return map[string]any{
		"name":      e.Name,
		"message":   e.Message,
		"record_id": e.RecordID,
		"op":        string(e.Op),
	}
}

func (b *bleveEngine) reindexAll() error {
	entries, err := b.store.List(0)
	if err != nil {
		return err
	}

	batch := b.idx.NewBatch()
	for _, e := range entries {
		if err := batch.Index(e.ID, entryDoc(e)); err != nil {
			return err
		}
	}
	return b.idx.Batch(batch)
}

func (b *bleveEngine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	var qs []bleveQuery.Query
	for _, tok := range tokenize(query) {
		qn := bleve.NewMatchQuery(tok)
		qn.SetField("name")
		qn.SetBoost(4.0)
		qs = append(qs, qn)
		qnp := bleve.NewPrefixQuery(tok)
		qnp.SetField("name")
		qnp.SetBoost(3.5)
		qs = append(qs, qnp)

		qm := bleve.NewMatchQuery(tok)
		qm.SetField("message")
		qm.SetBoost(2.0)
		qs = append(qs, qm)

		qr := bleve.NewPrefixQuery(tok)
		qr.SetField("record_id")
		qr.SetBoost(1.0)
		qs = append(qs, qr)

		qo := bleve.NewTermQuery(tok)
		qo.SetField("op")
		qo.SetBoost(0.5)
		qs = append(qs, qo)
	}
	if len(qs) == 0 {
		return []*Result{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits))
	scores := make(map[string]float64, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
		scores[h.ID] = h.Score
	}

	entries, err := b.store.GetMany(ids)
	if err != nil {
		return nil, err
	}
	out := make([]*Result, 0, len(entries))
	for _, e := range entries {
		out = append(out, &Result{Entry: e, Score: scores[e.ID]})
	}
	return out, nil
}

// OnEntryAppended indexes a freshly journaled entry.
func (b *bleveEngine) OnEntryAppended(entry *storage.Entry) {
	if entry == nil || entry.ID == "" {
		return
	}
	if err := b.idx.Index(entry.ID, entryDoc(entry)); err != nil {
		debuglog.Warnf("indexing journal entry %s: %v", entry.ID, err)
	}
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	return int(n), err
}

func (b *bleveEngine) Close() error {
	return b.idx.Close()
}
