package core

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dealerops/invcompare/internal/config"
	"github.com/dealerops/invcompare/internal/logging"
)

// Service wires the loader, comparator, and exporter behind the
// session store. All state it holds is per-session and in memory.
type Service struct {
	cfg      *config.Config
	sessions *SessionStore
}

// SessionInfo is what the UI needs after an upload: the session handle
// and the selector values derived from the files.
type SessionInfo struct {
	SessionID      string    `json:"sessionId"`
	Stores         []string  `json:"stores"`
	InventoryTypes []string  `json:"inventoryTypes"`
	VautoFile      string    `json:"vautoFile"`
	ReynoldsFile   string    `json:"reynoldsFile"`
	VautoRows      int       `json:"vautoRows"`
	ReynoldsRows   int       `json:"reynoldsRows"`
	SkippedRows    int       `json:"skippedRows"`
	StatusCompared bool      `json:"statusCompared"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// NewService creates a Service backed by a fresh session store.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg: cfg,
		sessions: NewSessionStore(
			cfg.Session.TTL,
			cfg.Session.MaxSessions,
			cfg.Session.CleanupInterval,
		),
	}
}

// Close releases the session store's background sweeper.
func (s *Service) Close() {
	s.sessions.Close()
}

// CreateSession parses the two uploads and stores them under a new
// session. Either file failing to parse fails the whole upload; the
// user fixes the file and retries.
func (s *Service) CreateSession(ctx context.Context, vautoName string, vautoFile io.Reader, reynoldsName string, reynoldsFile io.Reader) (*SessionInfo, error) {
	logger := logging.FromContext(ctx)

	vauto, err := LoadVauto(vautoFile, vautoName, s.cfg.Upload.MaxRows)
	if err != nil {
		logger.Warn("vauto upload rejected", "file", vautoName, "error", err)
		return nil, err
	}

	reynolds, err := LoadReynolds(reynoldsFile, reynoldsName, s.cfg.Upload.MaxRows)
	if err != nil {
		logger.Warn("reynolds upload rejected", "file", reynoldsName, "error", err)
		return nil, err
	}

	session, err := s.sessions.Put(vauto, reynolds)
	if err != nil {
		return nil, err
	}

	logger.Info("session created",
		"session_id", session.ID,
		"vauto_rows", len(vauto.Records),
		"reynolds_rows", len(reynolds.Records),
		"vauto_skipped", vauto.SkippedRows,
		"reynolds_skipped", reynolds.SkippedRows,
	)

	return s.sessionInfo(session), nil
}

// Session returns the info for a live session.
func (s *Service) Session(ctx context.Context, id string) (*SessionInfo, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(session), nil
}

// Compare runs the inventory diff for one (store, type) selection.
// The result is computed fresh on every call.
func (s *Service) Compare(ctx context.Context, id, store string, invType InventoryType) (*ComparisonResult, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	result, err := Compare(session.Vauto, session.Reynolds, store, invType)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("comparison computed",
		"session_id", id,
		"store", store,
		"type", invType,
		"matched", result.Summary.Matched,
		"missing_reynolds", result.Summary.MissingFromReynolds,
		"missing_vauto", result.Summary.MissingFromVauto,
		"status_mismatches", result.Summary.StatusMismatches,
	)

	return result, nil
}

// Report runs the comparison and streams the xlsx report into w.
// Returns the suggested download filename.
func (s *Service) Report(ctx context.Context, w io.Writer, id, store string, invType InventoryType) (string, error) {
	result, err := s.Compare(ctx, id, store, invType)
	if err != nil {
		return "", err
	}

	if err := WriteReport(w, result); err != nil {
		return "", err
	}

	return ReportFileName(store, invType), nil
}

// DeleteSession drops a session ahead of its TTL.
func (s *Service) DeleteSession(ctx context.Context, id string) {
	s.sessions.Delete(id)
	logging.FromContext(ctx).Info("session deleted", "session_id", id)
}

// unionStores merges the distinct store names of both uploads so the
// selector offers every store either file mentions.
func unionStores(vauto, reynolds *InventoryTable) []string {
	seen := make(map[string]bool)
	var stores []string
	for _, name := range append(vauto.Stores(), reynolds.Stores()...) {
		key := strings.ToUpper(strings.TrimSpace(name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		stores = append(stores, name)
	}
	sort.Strings(stores)
	return stores
}

func (s *Service) sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		SessionID:      session.ID,
		Stores:         unionStores(session.Vauto, session.Reynolds),
		InventoryTypes: []string{string(TypeNew), string(TypeUsed)},
		VautoFile:      session.Vauto.FileName,
		ReynoldsFile:   session.Reynolds.FileName,
		VautoRows:      len(session.Vauto.Records),
		ReynoldsRows:   len(session.Reynolds.Records),
		SkippedRows:    session.Vauto.SkippedRows + session.Reynolds.SkippedRows,
		StatusCompared: session.Vauto.HasStatus && session.Reynolds.HasStatus,
		ExpiresAt:      s.sessions.ExpiresAt(session),
	}
}
