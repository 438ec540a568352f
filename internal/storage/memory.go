package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
)

// MemoryStore holds all data in memory, for tests and local development
type MemoryStore struct {
	listings map[string]*models.Listing
	users    map[string]*models.User
	otps     map[string]*models.OTP

	// Mutexes for thread safety
	listingMu sync.RWMutex
	userMu    sync.RWMutex
	otpMu     sync.RWMutex
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		listings: make(map[string]*models.Listing),
		users:    make(map[string]*models.User),
		otps:     make(map[string]*models.OTP),
	}
}

// Listing operations

func (m *MemoryStore) CreateListing(listing *models.Listing) (*models.Listing, error) {
	m.listingMu.Lock()
	defer m.listingMu.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	if listing.Status == "" {
		listing.Status = models.StatusAvailable
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt

	m.listings[listing.ID] = listing
	return listing, nil
}

func (m *MemoryStore) GetListing(id string) (*models.Listing, error) {
	m.listingMu.RLock()
	defer m.listingMu.RUnlock()

	listing, exists := m.listings[id]
	if !exists {
		return nil, ErrNotFound
	}
	return listing, nil
}

func (m *MemoryStore) GetAllListings() ([]*models.Listing, error) {
	m.listingMu.RLock()
	defer m.listingMu.RUnlock()

	listings := make([]*models.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		listings = append(listings, l)
	}
	// Map order is random; newest-first keeps the default view deterministic
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func (m *MemoryStore) GetListingsByUser(userID string) ([]*models.Listing, error) {
	m.listingMu.RLock()
	defer m.listingMu.RUnlock()

	var listings []*models.Listing
	for _, l := range m.listings {
		if l.UserID == userID {
			listings = append(listings, l)
		}
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func (m *MemoryStore) UpdateListing(listing *models.Listing) error {
	m.listingMu.Lock()
	defer m.listingMu.Unlock()

	if _, exists := m.listings[listing.ID]; !exists {
		return ErrNotFound
	}
	listing.UpdatedAt = time.Now()
	m.listings[listing.ID] = listing
	return nil
}

func (m *MemoryStore) UpdateListingStatus(id string, status string) error {
	m.listingMu.Lock()
	defer m.listingMu.Unlock()

	listing, exists := m.listings[id]
	if !exists {
		return ErrNotFound
	}
	listing.Status = status
	listing.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) DeleteListing(id string) error {
	m.listingMu.Lock()
	defer m.listingMu.Unlock()

	if _, exists := m.listings[id]; !exists {
		return ErrNotFound
	}
	delete(m.listings, id)
	return nil
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUser(id string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

// OTP operations

func (m *MemoryStore) ReplaceActiveOTP(otp *models.OTP) (*models.OTP, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	// Supersede before insert, under one lock
	for _, existing := range m.otps {
		if existing.UserID == otp.UserID && !existing.Used {
			existing.Used = true
		}
	}

	if otp.ID == "" {
		otp.ID = uuid.NewString()
	}
	otp.CreatedAt = time.Now()
	m.otps[otp.ID] = otp
	return otp, nil
}

func (m *MemoryStore) ConsumeOTP(userID, phone, code string, now time.Time) (*models.OTP, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var match *models.OTP
	for _, o := range m.otps {
		if o.UserID != userID || o.Phone != phone || o.Code != code {
			continue
		}
		if !o.Active(now) {
			continue
		}
		if match == nil || o.CreatedAt.After(match.CreatedAt) {
			match = o
		}
	}
	if match == nil {
		return nil, ErrNotFound
	}

	verifiedAt := now
	match.Used = true
	match.VerifiedAt = &verifiedAt

	m.userMu.Lock()
	defer m.userMu.Unlock()
	if user, exists := m.users[userID]; exists {
		user.Phone = phone
		user.PhoneVerified = true
		user.UpdatedAt = now
	}
	return match, nil
}

func (m *MemoryStore) GetOTPsByUser(userID string) ([]*models.OTP, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	var otps []*models.OTP
	for _, o := range m.otps {
		if o.UserID == userID {
			otps = append(otps, o)
		}
	}
	sort.SliceStable(otps, func(i, j int) bool {
		return otps[i].CreatedAt.Before(otps[j].CreatedAt)
	})
	return otps, nil
}

func (m *MemoryStore) DeleteExpiredOTPs(before time.Time) (int64, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var removed int64
	for id, o := range m.otps {
		if o.ExpiresAt.Before(before) {
			delete(m.otps, id)
			removed++
		}
	}
	return removed, nil
}
