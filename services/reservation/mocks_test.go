package reservation

import (
	"context"
	"fmt"
	"sync"

	"sftails/models"
	"sftails/services/payment"
)

// mockBookingRepo is an in-memory BookingRepository with the same CAS
// semantics as the Mongo implementation.
type mockBookingRepo struct {
	mu          sync.Mutex
	bookings    map[string]*models.Booking
	payments    []models.Payment
	transitions int // applied status updates
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (m *mockBookingRepo) CreateBooking(b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.bookings[b.ID]; exists {
		return fmt.Errorf("duplicate booking id %s", b.ID)
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockBookingRepo) GetBookingByID(id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *mockBookingRepo) GetBookingsByClient(clientID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) GetBookingsByStatus(status string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateStatusIfPending(id, next string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != models.BookingStatusPending {
		return nil, nil
	}
	b.Status = next
	m.transitions++
	cp := *b
	return &cp, nil
}

func (m *mockBookingRepo) DeleteBookingsByClient(clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.bookings {
		if b.ClientID == clientID {
			delete(m.bookings, id)
		}
	}
	return nil
}

func (m *mockBookingRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[p.BookingID]; !ok {
		return fmt.Errorf("booking %s not found", p.BookingID)
	}
	m.payments = append(m.payments, *p)
	return nil
}

func (m *mockBookingRepo) GetPaymentsByBooking(bookingID string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, p := range m.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockClientRepo is an in-memory ClientRepository.
type mockClientRepo struct {
	clients map[string]*models.Client
}

func newMockClientRepo(clients ...*models.Client) *mockClientRepo {
	m := &mockClientRepo{clients: make(map[string]*models.Client)}
	for _, c := range clients {
		m.clients[c.ID] = c
	}
	return m
}

func (m *mockClientRepo) GetByID(id string) (*models.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockClientRepo) GetByEmail(email string) (*models.Client, error) {
	for _, c := range m.clients {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockClientRepo) Create(c *models.Client) error { m.clients[c.ID] = c; return nil }
func (m *mockClientRepo) Update(c *models.Client) error { m.clients[c.ID] = c; return nil }
func (m *mockClientRepo) Delete(id string) error        { delete(m.clients, id); return nil }

// mockPetRepo is an in-memory PetRepository.
type mockPetRepo struct {
	pets map[string]*models.Pet
}

func newMockPetRepo(pets ...*models.Pet) *mockPetRepo {
	m := &mockPetRepo{pets: make(map[string]*models.Pet)}
	for _, p := range pets {
		m.pets[p.ID] = p
	}
	return m
}

func (m *mockPetRepo) GetByID(id string) (*models.Pet, error) {
	p, ok := m.pets[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPetRepo) GetByClient(clientID string) ([]models.Pet, error) {
	var out []models.Pet
	for _, p := range m.pets {
		if p.ClientID == clientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPetRepo) Create(p *models.Pet) error { m.pets[p.ID] = p; return nil }
func (m *mockPetRepo) Update(p *models.Pet) error { m.pets[p.ID] = p; return nil }
func (m *mockPetRepo) Delete(id string) error     { delete(m.pets, id); return nil }
func (m *mockPetRepo) DeleteByClient(clientID string) error {
	for id, p := range m.pets {
		if p.ClientID == clientID {
			delete(m.pets, id)
		}
	}
	return nil
}

// mockGateway records authorize calls and returns canned results.
type mockGateway struct {
	mu       sync.Mutex
	err      error
	calls    int
	amounts  []int64
	metadata []map[string]string
}

func (m *mockGateway) Authorize(ctx context.Context, amount int64, currency string, metadata map[string]string) (*payment.Authorization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.amounts = append(m.amounts, amount)
	m.metadata = append(m.metadata, metadata)
	if m.err != nil {
		return nil, m.err
	}
	return &payment.Authorization{
		IntentID:     fmt.Sprintf("pi_%d", m.calls),
		ClientSecret: fmt.Sprintf("pi_%d_secret", m.calls),
	}, nil
}

// mockNotifier records dispatched events.
type mockNotifier struct {
	mu     sync.Mutex
	err    error
	events []recordedEvent
}

type recordedEvent struct {
	Event    string
	Email    string
	Name     string
	Snapshot models.BookingSnapshot
}

func (m *mockNotifier) Notify(ctx context.Context, event, email, name string, snapshot models.BookingSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recordedEvent{Event: event, Email: email, Name: name, Snapshot: snapshot})
	return m.err
}

func (m *mockNotifier) recorded() []recordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]recordedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// mockAuthStore is an in-memory AuthorizationStore.
type mockAuthStore struct {
	mu      sync.Mutex
	records map[string]models.PaymentAuthorization
	saveErr error
}

func newMockAuthStore() *mockAuthStore {
	return &mockAuthStore{records: make(map[string]models.PaymentAuthorization)}
}

func (m *mockAuthStore) Save(ctx context.Context, auth models.PaymentAuthorization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[auth.BookingID] = auth
	return nil
}

func (m *mockAuthStore) Get(ctx context.Context, bookingID string) (*models.PaymentAuthorization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	auth, ok := m.records[bookingID]
	if !ok {
		return nil, nil
	}
	return &auth, nil
}
