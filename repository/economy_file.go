package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"discshop/models"
)

const (
	economyFile   = "economy_data.json"
	gachaFile     = "gacha_data.json"
	inventoryFile = "inventory_data.json"
)

// FileEconomyRepository persists accounts as a single JSON snapshot on
// disk. The full in-memory state is rewritten on every save via a temp
// file and rename, so a crash mid-write never corrupts the snapshot.
//
// The gacha and inventory files are loaded and rewritten as opaque
// blobs so data written by other tooling survives a round trip.
type FileEconomyRepository struct {
	mu       sync.Mutex
	dataDir  string
	accounts map[string]*models.Account

	gachaData     json.RawMessage
	inventoryData json.RawMessage
}

// NewFileEconomyRepository loads the snapshot files from dataDir,
// creating the directory if needed.
func NewFileEconomyRepository(dataDir string) (*FileEconomyRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileEconomyRepository{
		dataDir:  dataDir,
		accounts: make(map[string]*models.Account),
	}

	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *FileEconomyRepository) load() error {
	path := filepath.Join(r.dataDir, economyFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Info("No economy snapshot found, starting fresh")
		} else {
			return fmt.Errorf("failed to read economy snapshot: %w", err)
		}
	} else if err := json.Unmarshal(data, &r.accounts); err != nil {
		return fmt.Errorf("failed to parse economy snapshot: %w", err)
	}

	r.gachaData = readOpaqueBlob(filepath.Join(r.dataDir, gachaFile))
	r.inventoryData = readOpaqueBlob(filepath.Join(r.dataDir, inventoryFile))

	log.WithField("accounts", len(r.accounts)).Info("Loaded economy snapshot")
	return nil
}

func readOpaqueBlob(path string) json.RawMessage {
	data, err := os.ReadFile(path)
	if err != nil {
		return json.RawMessage("{}")
	}
	if !json.Valid(data) {
		log.WithField("path", path).Warn("Ignoring invalid JSON blob")
		return json.RawMessage("{}")
	}
	return json.RawMessage(data)
}

// GetAccount returns the stored account, or (nil, nil) when the user
// has no account yet.
func (r *FileEconomyRepository) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[userID]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

// SaveAccounts stores the given accounts and rewrites the snapshot.
func (r *FileEconomyRepository) SaveAccounts(ctx context.Context, accounts ...*models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range accounts {
		copied := *account
		r.accounts[account.UserID] = &copied
	}
	return r.flush()
}

// TopBalances returns up to limit accounts ordered by balance descending.
func (r *FileEconomyRepository) TopBalances(ctx context.Context, limit int) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*models.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		copied := *account
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Balance > all[j].Balance
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Close flushes the snapshot one final time.
func (r *FileEconomyRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flush()
}

// flush writes all snapshot files. Caller must hold the mutex.
func (r *FileEconomyRepository) flush() error {
	data, err := json.MarshalIndent(r.accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(r.dataDir, economyFile), data); err != nil {
		return fmt.Errorf("failed to write economy snapshot: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(r.dataDir, gachaFile), r.gachaData); err != nil {
		return fmt.Errorf("failed to write gacha data: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(r.dataDir, inventoryFile), r.inventoryData); err != nil {
		return fmt.Errorf("failed to write inventory data: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
