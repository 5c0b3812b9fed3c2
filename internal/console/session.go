package console

import (
	"sync"

	"github.com/JonMunkholm/console/internal/core"
	"github.com/JonMunkholm/console/internal/core/tables"
)

// Session is one user's view of the console: the three entity pages, the
// active page and the notification queue.
type Session struct {
	mu     sync.Mutex
	active string

	queue     *core.NotificationQueue
	products  *ProductsPage
	orders    *OrdersPage
	customers *CustomersPage
}

// NewSession creates a session with every page at its initial state.
func (s *Service) NewSession() *Session {
	queue := core.NewNotificationQueue(s.queue...)
	return &Session{
		queue:     queue,
		products:  newProductsPage(s, queue),
		orders:    newOrdersPage(s, queue),
		customers: newCustomersPage(s, queue),
	}
}

// Notifications returns the session's notification queue.
func (s *Session) Notifications() *core.NotificationQueue {
	return s.queue
}

// Products returns the products page.
func (s *Session) Products() *ProductsPage { return s.products }

// Orders returns the orders page.
func (s *Session) Orders() *OrdersPage { return s.orders }

// Customers returns the customers page.
func (s *Session) Customers() *CustomersPage { return s.customers }

// Active returns the key of the page last navigated to, or "" before the first navigation.
func (s *Session) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Page returns the page registered under key without navigating to it.
func (s *Session) Page(key string) (Page, error) {
	if _, err := core.Lookup(key); err != nil {
		return nil, err
	}
	switch key {
	case tables.ProductsInfo.Key:
		return s.products, nil
	case tables.OrdersInfo.Key:
		return s.orders, nil
	case tables.CustomersInfo.Key:
		return s.customers, nil
	}
	return nil, core.ErrUnknownTable
}

// Navigate makes page key active. Switching to a different page dismisses
// every visible notification; page state is kept.
func (s *Session) Navigate(key string) (Page, error) {
	page, err := s.Page(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	changed := s.active != key
	s.active = key
	s.mu.Unlock()

	if changed {
		s.queue.Clear()
	}
	return page, nil
}

// Pages returns every page in navigation order.
func (s *Session) Pages() []Page {
	return []Page{s.orders, s.products, s.customers}
}
