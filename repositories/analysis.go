//go:generate go run go.uber.org/mock/mockgen -source=analysis.go -destination=../mocks/mock_analysis_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"docusense/domain"
	apperrors "docusense/errors"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	AnalysisPrefix = "analysis:"
	TimelinePrefix = "idx:at:"

	fieldSummary       = "summary"
	fieldJustification = "justification"
	fieldSentiment     = "sentiment"
	fieldMode          = "mode"
	fieldAt            = "at"
)

type IAnalysisRepository interface {
	Store(ctx context.Context, analysis Analysis) error
	Get(ctx context.Context, id uuid.UUID) (Analysis, error)
	List(ctx context.Context, cursor *string) ([]Analysis, *string, error)
	Search(ctx context.Context, query string) ([]Analysis, error)
}

// Analysis is a successful result as it is kept on disk.
type Analysis struct {
	ID          uuid.UUID
	At          time.Time
	InputType   domain.InputType
	SummaryType domain.SummaryMode
	FileName    string
	Result      domain.AnalysisResult
}

type AnalysisRepository struct {
	db     *badger.DB
	writer *bluge.Writer
	log    *slog.Logger
	limit  int
}

func NewAnalysisRepository(db *badger.DB, writer *bluge.Writer, log *slog.Logger, limit int) *AnalysisRepository {
	return &AnalysisRepository{db: db, writer: writer, log: log, limit: limit}
}

type storedAnalysis struct {
	ID          string                `json:"id"`
	At          time.Time             `json:"at"`
	InputType   string                `json:"inputType"`
	SummaryType string                `json:"summaryType"`
	FileName    string                `json:"fileName,omitempty"`
	Result      domain.AnalysisResult `json:"result"`
}

func analysisKey(id uuid.UUID) []byte {
	return []byte(AnalysisPrefix + id.String())
}

// timelineKey is "idx:at:{timestamp_padded}:{uuid}": the 19-digit padding keeps
// the lexicographical order chronological.
func timelineKey(analysis Analysis) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", TimelinePrefix, analysis.At.UnixNano(), analysis.ID))
}

// Store writes the record and its timeline entry in one transaction,
// then indexes the summary for full-text search.
func (a *AnalysisRepository) Store(_ context.Context, analysis Analysis) error {
	bytes, err := json.Marshal(fromAnalysis(analysis))
	if err != nil {
		return fmt.Errorf("encoding analysis %s: %w", analysis.ID, err)
	}
	err = a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(analysisKey(analysis.ID), bytes); err != nil {
			return err
		}
		return txn.Set(timelineKey(analysis), []byte{})
	})
	if err != nil {
		return fmt.Errorf("storing analysis %s: %w", analysis.ID, err)
	}

	doc := toDocument(analysis)
	if err := a.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("indexing analysis %s: %w", analysis.ID, err)
	}
	a.log.Debug("Analysis stored", "id", analysis.ID, "summary_type", analysis.SummaryType)
	return nil
}

func (a *AnalysisRepository) Get(_ context.Context, id uuid.UUID) (Analysis, error) {
	var analysis Analysis
	err := a.db.View(func(txn *badger.Txn) error {
		var err error
		analysis, err = get(txn, id)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Analysis{}, apperrors.ErrAnalysisNotFound
	}
	return analysis, err
}

// List returns the most recent analyses first. The cursor is the timeline
// key suffix of the last returned record.
func (a *AnalysisRepository) List(_ context.Context, cursor *string) ([]Analysis, *string, error) {
	var analyses []Analysis
	var lastKey string
	prefix := []byte(TimelinePrefix)

	err := a.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append([]byte(TimelinePrefix), []byte("9999999999999999999;")...)
		default:
			seekKey = append([]byte(TimelinePrefix), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()[len(prefix):]) == *cursor {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if len(analyses) == a.limit {
				break
			}
			suffix := string(it.Item().Key()[len(prefix):])
			_, rawID, found := strings.Cut(suffix, ":")
			if !found {
				continue
			}
			id, err := uuid.Parse(rawID)
			if err != nil {
				a.log.Warn("Skipping malformed timeline key", "key", string(it.Item().Key()), "error", err)
				continue
			}
			analysis, err := get(txn, id)
			if err != nil {
				return fmt.Errorf("loading analysis %s: %w", id, err)
			}
			analyses = append(analyses, analysis)
			lastKey = suffix
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if lastKey == "" {
		return analyses, nil, nil
	}
	return analyses, &lastKey, nil
}

// Search matches the query against summaries and justifications.
// An empty query lists the most recent analyses.
func (a *AnalysisRepository) Search(ctx context.Context, query string) ([]Analysis, error) {
	if strings.TrimSpace(query) == "" {
		analyses, _, err := a.List(ctx, nil)
		return analyses, err
	}

	reader, err := a.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("opening search reader: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	q := bluge.NewBooleanQuery().
		AddShould(bluge.NewMatchQuery(query).SetField(fieldSummary)).
		AddShould(bluge.NewMatchQuery(query).SetField(fieldJustification)).
		SetMinShould(1)
	matches, err := reader.Search(ctx, bluge.NewTopNSearch(a.limit, q))
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	var ids []uuid.UUID
	match, err := matches.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				if id, parseErr := uuid.ParseBytes(value); parseErr == nil {
					ids = append(ids, id)
				}
			}
			return true
		})
		if err != nil {
			break
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("reading matches for %q: %w", query, err)
	}

	analyses := make([]Analysis, 0, len(ids))
	for _, id := range ids {
		analysis, err := a.Get(ctx, id)
		if errors.Is(err, apperrors.ErrAnalysisNotFound) {
			a.log.Warn("Indexed analysis missing from store", "id", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	return analyses, nil
}

// Scan visits every stored analysis in key order. Secondary index keys are skipped.
func (a *AnalysisRepository) Scan(visit func(key string, analysis Analysis) error) error {
	return a.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(AnalysisPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var analysis Analysis
			if err := item.Value(func(v []byte) error {
				var err error
				analysis, err = DecodeAnalysis(v)
				return err
			}); err != nil {
				a.log.Warn("Skipping undecodable analysis", "key", string(item.Key()), "error", err)
				continue
			}
			if err := visit(string(item.Key()), analysis); err != nil {
				return err
			}
		}
		return nil
	})
}

func get(txn *badger.Txn, id uuid.UUID) (Analysis, error) {
	item, err := txn.Get(analysisKey(id))
	if err != nil {
		return Analysis{}, err
	}
	var analysis Analysis
	if err := item.Value(func(v []byte) error {
		var err error
		analysis, err = DecodeAnalysis(v)
		return err
	}); err != nil {
		return Analysis{}, fmt.Errorf("decoding analysis %s: %w", id, err)
	}
	return analysis, nil
}

// DecodeAnalysis reads the value stored under an AnalysisPrefix key.
func DecodeAnalysis(value []byte) (Analysis, error) {
	var stored storedAnalysis
	if err := json.Unmarshal(value, &stored); err != nil {
		return Analysis{}, err
	}
	return toAnalysis(stored)
}

func toDocument(analysis Analysis) *bluge.Document {
	doc := bluge.NewDocument(analysis.ID.String()).
		AddField(bluge.NewTextField(fieldSummary, analysis.Result.Summary)).
		AddField(bluge.NewTextField(fieldJustification, analysis.Result.Justification)).
		AddField(bluge.NewKeywordField(fieldMode, string(analysis.SummaryType))).
		AddField(bluge.NewDateTimeField(fieldAt, analysis.At).Sortable())
	if analysis.Result.Sentiment != nil {
		doc.AddField(bluge.NewKeywordField(fieldSentiment, *analysis.Result.Sentiment))
	}
	return doc
}

func fromAnalysis(analysis Analysis) storedAnalysis {
	return storedAnalysis{
		ID:          analysis.ID.String(),
		At:          analysis.At.UTC(),
		InputType:   string(analysis.InputType),
		SummaryType: string(analysis.SummaryType),
		FileName:    analysis.FileName,
		Result:      analysis.Result,
	}
}

func toAnalysis(stored storedAnalysis) (Analysis, error) {
	id, err := uuid.Parse(stored.ID)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{
		ID:          id,
		At:          stored.At,
		InputType:   domain.InputType(stored.InputType),
		SummaryType: domain.SummaryMode(stored.SummaryType),
		FileName:    stored.FileName,
		Result:      stored.Result,
	}, nil
}
