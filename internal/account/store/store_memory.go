package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"ibangate/internal/account"
)

// Memory keeps accounts in a map. It intentionally favors clarity over
// performance and is the fallback when no database is configured. Records
// hold the validated value object directly, so the restore contract is
// trivially upheld.
type Memory struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]account.Account
}

func NewMemory() *Memory {
	return &Memory{accounts: make(map[uuid.UUID]account.Account)}
}

func (s *Memory) Save(_ context.Context, acct account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[acct.ID] = acct
	return nil
}

func (s *Memory) FindByID(_ context.Context, id uuid.UUID) (account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if acct, ok := s.accounts[id]; ok {
		return acct, nil
	}
	return account.Account{}, ErrNotFound
}

func (s *Memory) List(_ context.Context) ([]account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]account.Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		accounts = append(accounts, acct)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}
