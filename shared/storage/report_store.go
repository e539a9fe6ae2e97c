package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"channelscope/agents/channel-analyzer/analysis"
	"channelscope/internal/models"
)

// ReportStore persists analysis reports and advice as JSON artifacts,
// one file per channel, plus an index of when each channel was last
// analyzed so scheduled runs can skip fresh channels.
type ReportStore struct {
	dataDir      string
	indexPath    string
	lastAnalyzed map[string]time.Time
	mu           sync.RWMutex
	freshFor     time.Duration
}

// StoredReport is the on-disk artifact for one channel analysis.
type StoredReport struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Analysis    *analysis.Report `json:"analysis"`
	Advice      *models.Advice   `json:"advice,omitempty"`
}

type indexEntry struct {
	ChannelID  string    `json:"channel_id"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// NewReportStore creates the store rooted at dataDir. Reports newer
// than freshFor count as fresh.
func NewReportStore(dataDir string, freshFor time.Duration) (*ReportStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := &ReportStore{
		dataDir:      dataDir,
		indexPath:    filepath.Join(dataDir, "analyzed_channels.json"),
		lastAnalyzed: make(map[string]time.Time),
		freshFor:     freshFor,
	}

	if err := store.loadIndex(); err != nil {
		return nil, fmt.Errorf("failed to load report index: %w", err)
	}

	return store, nil
}

// IsFresh reports whether the channel was analyzed within the
// freshness window.
func (rs *ReportStore) IsFresh(channelID string) bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	analyzedAt, exists := rs.lastAnalyzed[channelID]
	if !exists {
		return false
	}
	return time.Since(analyzedAt) < rs.freshFor
}

// SaveReport writes the channel's report artifact and records the
// analysis time in the index.
func (rs *ReportStore) SaveReport(channelID string, report *StoredReport) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	file, err := os.Create(rs.reportPath(channelID))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report for %s: %w", channelID, err)
	}

	rs.lastAnalyzed[channelID] = report.GeneratedAt
	return rs.saveIndex()
}

// LoadReport reads the stored artifact for a channel. A missing
// artifact returns os.ErrNotExist wrapped with context.
func (rs *ReportStore) LoadReport(channelID string) (*StoredReport, error) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	file, err := os.Open(rs.reportPath(channelID))
	if err != nil {
		return nil, fmt.Errorf("failed to open report for %s: %w", channelID, err)
	}
	defer file.Close()

	var report StoredReport
	if err := json.NewDecoder(file).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report for %s: %w", channelID, err)
	}
	return &report, nil
}

// AnalyzedCount returns how many channels have stored reports.
func (rs *ReportStore) AnalyzedCount() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.lastAnalyzed)
}

func (rs *ReportStore) reportPath(channelID string) string {
	return filepath.Join(rs.dataDir, fmt.Sprintf("report_%s.json", channelID))
}

func (rs *ReportStore) loadIndex() error {
	file, err := os.Open(rs.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open index file: %w", err)
	}
	defer file.Close()

	var entries []indexEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return fmt.Errorf("failed to decode index data: %w", err)
	}

	for _, e := range entries {
		rs.lastAnalyzed[e.ChannelID] = e.AnalyzedAt
	}
	return nil
}

func (rs *ReportStore) saveIndex() error {
	var entries []indexEntry
	for channelID, analyzedAt := range rs.lastAnalyzed {
		entries = append(entries, indexEntry{
			ChannelID:  channelID,
			AnalyzedAt: analyzedAt,
		})
	}

	file, err := os.Create(rs.indexPath)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}
