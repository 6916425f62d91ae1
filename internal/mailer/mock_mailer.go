package mailer

import (
	"slices"
	"sync"
)

// Delivery is a message captured by MockMailer instead of being sent.
type Delivery struct {
	Recipient string
	Template  string
	Data      any
}

// MockMailer keeps deliveries in memory. It is safe for concurrent use since
// webhook handlers may mail from several requests at once.
type MockMailer struct {
	mu         sync.Mutex
	deliveries []Delivery

	// Err, when set, is returned by Send and nothing is recorded.
	Err error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.deliveries = append(m.deliveries, Delivery{Recipient: recipient, Template: templateFile, Data: data})

	return nil
}

// Deliveries returns a snapshot of everything sent so far.
func (m *MockMailer) Deliveries() []Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.deliveries)
}

// DeliveriesTo filters Deliveries by recipient.
func (m *MockMailer) DeliveriesTo(recipient string) []Delivery {
	var out []Delivery
	for _, d := range m.Deliveries() {
		if d.Recipient == recipient {
			out = append(out, d)
		}
	}
	return out
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deliveries = nil
}
