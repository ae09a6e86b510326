package core

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dealerops/invcompare/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{MaxFileSize: 1 << 20, MaxRows: 1000},
		Session: config.SessionConfig{
			TTL:             time.Minute,
			MaxSessions:     10,
			CleanupInterval: time.Hour,
		},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(testConfig())
	t.Cleanup(svc.Close)
	return svc
}

func vautoUpload(t *testing.T) []byte {
	return buildXLSX(t, [][]string{
		{"VIN", "Stock #", "Dealer Name", "Type", "Status"},
		{"1HGCM82633A004352", "A100", "Store 1", "NEW", "Active"},
		{"5YJ3E1EA7KF317000", "A101", "Store 2", "USED", "Active"},
	})
}

func reynoldsUpload(t *testing.T) []byte {
	return buildXLSX(t, [][]string{
		{"VIN", "Stock #", "Lot Location", "N/U", "Status"},
		{"1HGCM82633A004352", "A100", "Store 1", "N", "Active"},
		{"JM1BL1SF6A1267720", "R300", "Store 3", "U", "In Stock"},
	})
}

func createTestSession(t *testing.T, svc *Service) *SessionInfo {
	t.Helper()
	info, err := svc.CreateSession(context.Background(),
		"vauto.xlsx", bytes.NewReader(vautoUpload(t)),
		"reynolds.xlsx", bytes.NewReader(reynoldsUpload(t)),
	)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return info
}

func TestService_CreateSession(t *testing.T) {
	svc := newTestService(t)
	info := createTestSession(t, svc)

	if info.SessionID == "" {
		t.Error("SessionID is empty")
	}
	if info.VautoRows != 2 || info.ReynoldsRows != 2 {
		t.Errorf("rows = %d/%d, want 2/2", info.VautoRows, info.ReynoldsRows)
	}
	if !info.StatusCompared {
		t.Error("StatusCompared = false, want true when both files carry Status")
	}

	// Selector shows stores from both files, deduplicated and sorted.
	want := []string{"Store 1", "Store 2", "Store 3"}
	if len(info.Stores) != len(want) {
		t.Fatalf("Stores = %v, want %v", info.Stores, want)
	}
	for i := range want {
		if info.Stores[i] != want[i] {
			t.Errorf("Stores[%d] = %q, want %q", i, info.Stores[i], want[i])
		}
	}
}

func TestService_CreateSessionBadUpload(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateSession(context.Background(),
		"vauto.xlsx", bytes.NewReader([]byte("not a workbook")),
		"reynolds.xlsx", bytes.NewReader(reynoldsUpload(t)),
	)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if parseErr.Source != SourceVauto {
		t.Errorf("Source = %q, want %q", parseErr.Source, SourceVauto)
	}
}

func TestService_Compare(t *testing.T) {
	svc := newTestService(t)
	info := createTestSession(t, svc)

	result, err := svc.Compare(context.Background(), info.SessionID, "Store 1", TypeNew)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if result.Summary.Matched != 1 {
		t.Errorf("Matched = %d, want 1", result.Summary.Matched)
	}
	if len(result.MissingFromReynolds) != 0 {
		t.Errorf("MissingFromReynolds = %v, want none", result.MissingFromReynolds)
	}
}

func TestService_CompareUnknownSession(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Compare(context.Background(), "missing", "Store 1", TypeNew)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestService_Report(t *testing.T) {
	svc := newTestService(t)
	info := createTestSession(t, svc)

	var buf bytes.Buffer
	name, err := svc.Report(context.Background(), &buf, info.SessionID, "Store 1", TypeNew)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if name != "inventory_comparison_Store_1_NEW.xlsx" {
		t.Errorf("name = %q", name)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("report is not a readable workbook: %v", err)
	}
	f.Close()
}

func TestService_DeleteSession(t *testing.T) {
	svc := newTestService(t)
	info := createTestSession(t, svc)

	svc.DeleteSession(context.Background(), info.SessionID)

	_, err := svc.Session(context.Background(), info.SessionID)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
