// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Soporta los tests de los casos de uso sin una base de datos real;
// el TxRunner toma un snapshot del estado y lo restaura si la función falla,
// de modo que los efectos sean todo-o-nada como en PostgreSQL.
package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// Store estado compartido en memoria. Las operaciones transaccionales se
// serializan con el mutex; los repos no bloquean por sí mismos.
type Store struct {
	mu sync.Mutex
	st state
}

type state struct {
	config       *entity.SystemConfig
	clients      map[int64]entity.Client
	subclients   map[int64]entity.Subclient
	inventory    []entity.InventoryEntry
	reservations map[int64]entity.Reservation
	withdrawals  map[int64]entity.Withdrawal
	users        map[int64]entity.User
	nextID       int64
}

// NewStore crea un store vacío con la fila de configuración por defecto.
func NewStore() *Store {
	return &Store{st: state{
		config: &entity.SystemConfig{
			ID:                   entity.SystemConfigID,
			LimiteDiarioGasolina: decimal.NewFromInt(2000),
		},
		clients:      map[int64]entity.Client{},
		subclients:   map[int64]entity.Subclient{},
		reservations: map[int64]entity.Reservation{},
		withdrawals:  map[int64]entity.Withdrawal{},
		users:        map[int64]entity.User{},
		nextID:       1,
	}}
}

func (s *Store) nextID() int64 {
	id := s.st.nextID
	s.st.nextID++
	return id
}

// SeedClient inserta un cliente y devuelve su id; helper para tests.
func (s *Store) SeedClient(c entity.Client) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextID()
	}
	s.st.clients[c.ID] = c
	return c.ID
}

// SeedSubclient inserta un subcliente y devuelve su id; helper para tests.
func (s *Store) SeedSubclient(sc entity.Subclient) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc.ID == 0 {
		sc.ID = s.nextID()
	}
	s.st.subclients[sc.ID] = sc
	return sc.ID
}

// SetConfig reemplaza la fila de configuración; helper para tests.
func (s *Store) SetConfig(cfg entity.SystemConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.config = &cfg
}

// Config copia de la configuración actual.
func (s *Store) Config() entity.SystemConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *cloneConfig(s.st.config)
}

// Client copia del cliente, o nil si no existe.
func (s *Store) Client(id int64) *entity.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.st.clients[id]; ok {
		return &c
	}
	return nil
}

// Subclient copia del subcliente, o nil si no existe.
func (s *Store) Subclient(id int64) *entity.Subclient {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok := s.st.subclients[id]; ok {
		return &sc
	}
	return nil
}

// InventoryEntries copia del libro de inventario completo.
func (s *Store) InventoryEntries() []entity.InventoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.InventoryEntry, len(s.st.inventory))
	copy(out, s.st.inventory)
	return out
}

// Reservation copia del agendamiento, o nil si no existe.
func (s *Store) Reservation(id int64) *entity.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.st.reservations[id]; ok {
		return &r
	}
	return nil
}

// Withdrawals copias de todos los retiros.
func (s *Store) Withdrawals() []entity.Withdrawal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Withdrawal, 0, len(s.st.withdrawals))
	for _, w := range s.st.withdrawals {
		out = append(out, w)
	}
	return out
}

// snapshot copia profunda del estado, para rollback.
func (s *Store) snapshot() state {
	sn := state{
		config:       cloneConfig(s.st.config),
		clients:      make(map[int64]entity.Client, len(s.st.clients)),
		subclients:   make(map[int64]entity.Subclient, len(s.st.subclients)),
		inventory:    make([]entity.InventoryEntry, len(s.st.inventory)),
		reservations: make(map[int64]entity.Reservation, len(s.st.reservations)),
		withdrawals:  make(map[int64]entity.Withdrawal, len(s.st.withdrawals)),
		users:        make(map[int64]entity.User, len(s.st.users)),
		nextID:       s.st.nextID,
	}
	for k, v := range s.st.clients {
		sn.clients[k] = v
	}
	for k, v := range s.st.subclients {
		sn.subclients[k] = v
	}
	copy(sn.inventory, s.st.inventory)
	for k, v := range s.st.reservations {
		if v.SubclienteID != nil {
			id := *v.SubclienteID
			v.SubclienteID = &id
		}
		sn.reservations[k] = v
	}
	for k, v := range s.st.withdrawals {
		sn.withdrawals[k] = v
	}
	for k, v := range s.st.users {
		sn.users[k] = v
	}
	return sn
}

func cloneConfig(c *entity.SystemConfig) *entity.SystemConfig {
	if c == nil {
		return nil
	}
	out := *c
	if c.FechaUltimoReset != nil {
		f := *c.FechaUltimoReset
		out.FechaUltimoReset = &f
	}
	return &out
}
