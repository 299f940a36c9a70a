// Package state holds the current analysis: the submitted request, the raw
// backend responses and the loading/error flags the screens read.
package state

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/insightify/insightify-go/internal/constants"
	"github.com/insightify/insightify-go/internal/service/cache"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// persistVersion is written next to the state so older blobs can be told apart.
const persistVersion = 0

type AnalysisState struct {
	VideoURL      string          `json:"videoUrl"`
	CommentCount  int             `json:"commentCount"`
	SentimentData json.RawMessage `json:"sentimentData"`
	AIReportData  json.RawMessage `json:"aiReportData"`
	IsLoading     bool            `json:"isLoading"`
	Error         string          `json:"error"`
}

func (s AnalysisState) clone() AnalysisState {
	s.SentimentData = cloneRaw(s.SentimentData)
	s.AIReportData = cloneRaw(s.AIReportData)
	return s
}

// Store is the explicit replacement for a global view-model singleton. It is
// safe for concurrent use; Snapshot returns a copy that shares no memory.
type Store struct {
	mu     sync.RWMutex
	state  AnalysisState
	kv     cache.KeyValueStore
	key    string
	logger *zap.Logger
}

func NewStore(kv cache.KeyValueStore, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		key:    constants.StorageKeys.AnalysisState,
		logger: logger,
	}
}

func (s *Store) update(fn func(*AnalysisState)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
}

func (s *Store) SetVideoURL(url string) {
	s.update(func(st *AnalysisState) { st.VideoURL = url })
}

func (s *Store) SetCommentCount(count int) {
	s.update(func(st *AnalysisState) { st.CommentCount = count })
}

func (s *Store) SetSentimentData(data json.RawMessage) {
	s.update(func(st *AnalysisState) { st.SentimentData = cloneRaw(data) })
}

func (s *Store) SetAIReportData(data json.RawMessage) {
	s.update(func(st *AnalysisState) { st.AIReportData = cloneRaw(data) })
}

func (s *Store) SetLoading(loading bool) {
	s.update(func(st *AnalysisState) { st.IsLoading = loading })
}

func (s *Store) SetError(msg string) {
	s.update(func(st *AnalysisState) { st.Error = msg })
}

// Reset clears every field back to its zero value.
func (s *Store) Reset() {
	s.update(func(st *AnalysisState) { *st = AnalysisState{} })
}

func (s *Store) Snapshot() AnalysisState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// HasResults reports whether a sentiment response is available to render.
func (s *Store) HasResults() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return hasJSON(s.state.SentimentData)
}

// Persist writes the state as {"state": {...}, "version": 0}.
func (s *Store) Persist(ctx context.Context) error {
	blob, err := encode(s.Snapshot())
	if err != nil {
		return err
	}
	return s.kv.SetRaw(ctx, s.key, blob, constants.CacheTTL.AnalysisState)
}

// Restore loads the persisted state. A missing key leaves the store untouched
// and a blob that cannot be read is logged and ignored. A restored state is
// never loading.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	blob, ok, err := s.kv.GetRaw(ctx, s.key)
	if err != nil || !ok {
		return false, err
	}

	restored, ok := decode(blob)
	if !ok {
		s.logger.Warn("Ignoring unreadable persisted state",
			zap.String("key", s.key),
			zap.Int("bytes", len(blob)),
		)
		return false, nil
	}

	s.update(func(st *AnalysisState) { *st = restored })
	return true, nil
}

// Clear resets the state and removes the persisted copy.
func (s *Store) Clear(ctx context.Context) error {
	s.Reset()
	return s.kv.Del(ctx, s.key)
}

func encode(st AnalysisState) ([]byte, error) {
	st.IsLoading = false
	data, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	blob, err := sjson.SetRawBytes([]byte(`{}`), "state", data)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(blob, "version", persistVersion)
}

func decode(blob []byte) (AnalysisState, bool) {
	if !gjson.ValidBytes(blob) {
		return AnalysisState{}, false
	}
	root := gjson.ParseBytes(blob)
	st := root.Get("state")
	if !root.IsObject() || !st.IsObject() {
		return AnalysisState{}, false
	}

	out := AnalysisState{
		VideoURL:      st.Get("videoUrl").String(),
		CommentCount:  int(st.Get("commentCount").Int()),
		SentimentData: rawOf(st.Get("sentimentData")),
		AIReportData:  rawOf(st.Get("aiReportData")),
	}
	if e := st.Get("error"); e.Type == gjson.String {
		out.Error = e.Str
	}
	return out, true
}

func rawOf(r gjson.Result) json.RawMessage {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(r.Raw)
}

func hasJSON(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func cloneRaw(data json.RawMessage) json.RawMessage {
	if data == nil {
		return nil
	}
	return append(json.RawMessage(nil), data...)
}
