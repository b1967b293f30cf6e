// Package mocks provides test doubles for the usecase interfaces: in-memory
// fakes with overridable funcs, plus generated gomock mocks (see
// mock_interfaces.go).
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/mindwell/creditledger/internal/domain"
	"github.com/mindwell/creditledger/internal/usecase"
)

// FakeAccountRepository is an in-memory AccountRepository. Any behavior can
// be overridden per test by assigning the matching func field.
type FakeAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	CreateTxFunc          func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	AdjustBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, delta int64, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores an account directly, bypassing any override.
func (m *FakeAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *FakeAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; ok {
		return domain.ErrAccountAlreadyExists
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *FakeAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	return m.Create(ctx, account)
}

func (m *FakeAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *FakeAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *FakeAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *FakeAccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta int64, updatedAt time.Time) error {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance += delta
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *FakeAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	if offset >= len(accounts) {
		return nil, nil
	}
	accounts = accounts[offset:]
	if limit < len(accounts) {
		accounts = accounts[:limit]
	}
	return accounts, nil
}

// FakeEntryRepository is an in-memory EntryRepository.
type FakeEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.Entry, error)
	ExistsBySettlementRefFunc func(ctx context.Context, tx usecase.Transaction, ref string) (bool, error)
	ListForAccountFunc        func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	CountForAccountFunc       func(ctx context.Context, accountID string) (int64, error)
	SumForAccountFunc         func(ctx context.Context, accountID string) (int64, error)
}

func NewFakeEntryRepository() *FakeEntryRepository {
	return &FakeEntryRepository{}
}

// Entries returns a snapshot of everything appended so far.
func (m *FakeEntryRepository) Entries() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *FakeEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.SettlementRef != nil {
		for _, e := range m.entries {
			if e.SettlementRef != nil && *e.SettlementRef == *entry.SettlementRef {
				return domain.ErrDuplicateSettlement
			}
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *FakeEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (m *FakeEntryRepository) ExistsBySettlementRef(ctx context.Context, tx usecase.Transaction, ref string) (bool, error) {
	if m.ExistsBySettlementRefFunc != nil {
		return m.ExistsBySettlementRefFunc(ctx, tx, ref)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.SettlementRef != nil && *e.SettlementRef == ref {
			return true, nil
		}
	}
	return false, nil
}

func (m *FakeEntryRepository) ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	if m.ListForAccountFunc != nil {
		return m.ListForAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if e.To == accountID || (e.From != nil && *e.From == accountID) {
			matched = append(matched, e)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *FakeEntryRepository) CountForAccount(ctx context.Context, accountID string) (int64, error) {
	if m.CountForAccountFunc != nil {
		return m.CountForAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, e := range m.entries {
		if e.To == accountID || (e.From != nil && *e.From == accountID) {
			count++
		}
	}
	return count, nil
}

func (m *FakeEntryRepository) SumForAccount(ctx context.Context, accountID string) (int64, error) {
	if m.SumForAccountFunc != nil {
		return m.SumForAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, e := range m.entries {
		if e.To == accountID {
			sum += e.Amount
		}
		if e.From != nil && *e.From == accountID {
			sum -= e.Amount
		}
	}
	return sum, nil
}

// FakeOutboxRepository is an in-memory OutboxRepository.
type FakeOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewFakeOutboxRepository() *FakeOutboxRepository {
	return &FakeOutboxRepository{}
}

// Events returns a snapshot of recorded events.
func (m *FakeOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *FakeOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *FakeOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *FakeOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *FakeOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// FakeTransaction records whether it was committed or rolled back.
type FakeTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (t *FakeTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *FakeTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// FakeTransactionManager hands out FakeTransactions.
type FakeTransactionManager struct {
	mu           sync.Mutex
	transactions []*FakeTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &FakeTransaction{}
	m.transactions = append(m.transactions, tx)
	return tx, nil
}

// Transactions returns every transaction handed out so far.
func (m *FakeTransactionManager) Transactions() []*FakeTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*FakeTransaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// FakeIDGenerator issues sequential IDs.
type FakeIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (g *FakeIDGenerator) Generate() string {
	if g.GenerateFunc != nil {
		return g.GenerateFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return "id-" + string(rune('0'+g.counter%10)) + "-x"
}

// PassthroughRetrier runs the operation once without retrying.
type PassthroughRetrier struct{}

func (PassthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// FakeCache is an in-memory Cache.
type FakeCache struct {
	mu     sync.RWMutex
	values map[string]string

	Deleted []string
}

func NewFakeCache() *FakeCache {
	return &FakeCache{values: make(map[string]string)}
}

func (c *FakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", usecase.ErrCacheMiss
}

func (c *FakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *FakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	c.Deleted = append(c.Deleted, key)
	return nil
}

// FakeVerifier accepts every payload unless VerifyFunc is set.
type FakeVerifier struct {
	VerifyFunc func(payload []byte, signature string) error
}

func (v *FakeVerifier) Verify(payload []byte, signature string) error {
	if v.VerifyFunc != nil {
		return v.VerifyFunc(payload, signature)
	}
	return nil
}

// FakeRecipientPolicy reports a fixed eligibility answer.
type FakeRecipientPolicy struct {
	Eligible bool
	Err      error
}

func (p *FakeRecipientPolicy) EligibleRecipient(ctx context.Context, account *domain.Account) (bool, error) {
	return p.Eligible, p.Err
}
