package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

// Repos atados al store; no bloquean por sí mismos (ver TxRunner).

var _ repository.ClientRepository = (*ClientRepo)(nil)
var _ repository.SubclientRepository = (*SubclientRepo)(nil)
var _ repository.InventoryRepository = (*InventoryRepo)(nil)
var _ repository.ReservationRepository = (*ReservationRepo)(nil)
var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)
var _ repository.ConfigRepository = (*ConfigRepo)(nil)
var _ repository.UserRepository = (*UserRepo)(nil)

// ClientRepo repositorio de clientes en memoria.
type ClientRepo struct{ s *Store }

// NewClientRepository construye el repositorio.
func NewClientRepository(s *Store) *ClientRepo { return &ClientRepo{s: s} }

func (r *ClientRepo) GetByID(id int64) (*entity.Client, error) {
	if c, ok := r.s.st.clients[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *ClientRepo) GetActiveByID(id int64) (*entity.Client, error) {
	if c, ok := r.s.st.clients[id]; ok && c.Activo {
		return &c, nil
	}
	return nil, nil
}

func (r *ClientRepo) GetByCedula(cedula string) (*entity.Client, error) {
	for _, c := range r.s.st.clients {
		if c.Cedula == cedula && c.Activo {
			cc := c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) GetByTelefono(telefono string) (*entity.Client, error) {
	for _, c := range r.s.st.clients {
		if c.Telefono == telefono && c.Activo {
			cc := c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) GetForUpdate(id int64) (*entity.Client, error) {
	return r.GetActiveByID(id)
}

func (r *ClientRepo) List(busqueda string) ([]entity.Client, error) {
	var out []entity.Client
	q := strings.ToLower(busqueda)
	for _, c := range r.s.st.clients {
		if !c.Activo {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Nombre), q) &&
			!strings.Contains(strings.ToLower(c.Direccion), q) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ClientRepo) Create(c *entity.Client) (int64, error) {
	for _, ex := range r.s.st.clients {
		if ex.Cedula == c.Cedula {
			return 0, domain.ErrDuplicate
		}
	}
	c.ID = r.s.nextID()
	r.s.st.clients[c.ID] = *c
	return c.ID, nil
}

func (r *ClientRepo) Update(c *entity.Client) error {
	if _, ok := r.s.st.clients[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) DecrementBalance(id int64, fuel entity.FuelType, litros decimal.Decimal) error {
	c, ok := r.s.st.clients[id]
	if !ok || !c.Activo {
		return domain.ErrNotFound
	}
	if c.Available(fuel).LessThan(litros) {
		return domain.ErrInsufficientBalance
	}
	if fuel == entity.FuelDiesel {
		c.AvailableDiesel = c.AvailableDiesel.Sub(litros)
	} else {
		c.AvailableGasoline = c.AvailableGasoline.Sub(litros)
	}
	c.AvailableTotal = c.AvailableTotal.Sub(litros)
	r.s.st.clients[id] = c
	return nil
}

func (r *ClientRepo) RestoreAllBalances() (int64, error) {
	var n int64
	for id, c := range r.s.st.clients {
		if !c.Activo {
			continue
		}
		c.AvailableGasoline = c.MonthlyGasoline
		c.AvailableDiesel = c.MonthlyDiesel
		c.AvailableTotal = c.MonthlyTotal
		r.s.st.clients[id] = c
		n++
	}
	return n, nil
}

func (r *ClientRepo) SumWithdrawnInMonth(id int64, ref time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range r.s.st.withdrawals {
		if w.ClienteID == id && w.Fecha.Year() == ref.Year() && w.Fecha.Month() == ref.Month() {
			total = total.Add(w.Litros)
		}
	}
	return total, nil
}

// SubclientRepo repositorio de subclientes en memoria.
type SubclientRepo struct{ s *Store }

// NewSubclientRepository construye el repositorio.
func NewSubclientRepository(s *Store) *SubclientRepo { return &SubclientRepo{s: s} }

func (r *SubclientRepo) GetByID(id int64) (*entity.Subclient, error) {
	if sc, ok := r.s.st.subclients[id]; ok {
		return &sc, nil
	}
	return nil, nil
}

func (r *SubclientRepo) GetForUpdate(id int64) (*entity.Subclient, error) {
	return r.GetByID(id)
}

func (r *SubclientRepo) ListByParent(parentID int64) ([]entity.Subclient, error) {
	var out []entity.Subclient
	for _, sc := range r.s.st.subclients {
		if sc.ParentID == parentID && sc.Activo {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SubclientRepo) Create(sc *entity.Subclient) (int64, error) {
	sc.ID = r.s.nextID()
	r.s.st.subclients[sc.ID] = *sc
	return sc.ID, nil
}

func (r *SubclientRepo) SumMonthlyByParent(parentID int64) (decimal.Decimal, decimal.Decimal, error) {
	gasolina, gasoil := decimal.Zero, decimal.Zero
	for _, sc := range r.s.st.subclients {
		if sc.ParentID == parentID && sc.Activo {
			gasolina = gasolina.Add(sc.MonthlyGasoline)
			gasoil = gasoil.Add(sc.MonthlyDiesel)
		}
	}
	return gasolina, gasoil, nil
}

func (r *SubclientRepo) DecrementBalance(id int64, fuel entity.FuelType, litros decimal.Decimal) error {
	sc, ok := r.s.st.subclients[id]
	if !ok || !sc.Activo {
		return domain.ErrNotFound
	}
	if sc.Available(fuel).LessThan(litros) {
		return domain.ErrInsufficientBalance
	}
	if fuel == entity.FuelDiesel {
		sc.AvailableDiesel = sc.AvailableDiesel.Sub(litros)
	} else {
		sc.AvailableGasoline = sc.AvailableGasoline.Sub(litros)
	}
	r.s.st.subclients[id] = sc
	return nil
}

func (r *SubclientRepo) RestoreAllBalances() (int64, error) {
	var n int64
	for id, sc := range r.s.st.subclients {
		if !sc.Activo {
			continue
		}
		sc.AvailableGasoline = sc.MonthlyGasoline
		sc.AvailableDiesel = sc.MonthlyDiesel
		r.s.st.subclients[id] = sc
		n++
	}
	return n, nil
}

// InventoryRepo libro de inventario en memoria.
type InventoryRepo struct{ s *Store }

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(s *Store) *InventoryRepo { return &InventoryRepo{s: s} }

func (r *InventoryRepo) Latest(fuel entity.FuelType) (*entity.InventoryEntry, error) {
	for i := len(r.s.st.inventory) - 1; i >= 0; i-- {
		if r.s.st.inventory[i].FuelType == fuel {
			e := r.s.st.inventory[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (r *InventoryRepo) LatestForUpdate(fuel entity.FuelType) (*entity.InventoryEntry, error) {
	return r.Latest(fuel)
}

func (r *InventoryRepo) Append(e *entity.InventoryEntry) (int64, error) {
	e.ID = r.s.nextID()
	r.s.st.inventory = append(r.s.st.inventory, *e)
	return e.ID, nil
}

func (r *InventoryRepo) History() ([]entity.InventoryEntry, error) {
	out := make([]entity.InventoryEntry, len(r.s.st.inventory))
	copy(out, r.s.st.inventory)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ReservationRepo agendamientos en memoria.
type ReservationRepo struct{ s *Store }

// NewReservationRepository construye el repositorio.
func NewReservationRepository(s *Store) *ReservationRepo { return &ReservationRepo{s: s} }

func (r *ReservationRepo) GetByID(id int64) (*entity.Reservation, error) {
	if res, ok := r.s.st.reservations[id]; ok {
		return &res, nil
	}
	return nil, nil
}

func (r *ReservationRepo) Create(res *entity.Reservation) (int64, error) {
	for _, ex := range r.s.st.reservations {
		if ex.FechaAgendada.Equal(res.FechaAgendada) && ex.CodigoTicket == res.CodigoTicket {
			return 0, domain.ErrConflict
		}
	}
	res.ID = r.s.nextID()
	r.s.st.reservations[res.ID] = *res
	return res.ID, nil
}

func (r *ReservationRepo) NextTicket(fecha time.Time) (int, error) {
	max := 0
	for _, res := range r.s.st.reservations {
		if res.FechaAgendada.Equal(fecha) && res.CodigoTicket > max {
			max = res.CodigoTicket
		}
	}
	return max + 1, nil
}

func (r *ReservationRepo) MarkDelivered(id int64) (bool, error) {
	res, ok := r.s.st.reservations[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if res.Estado != entity.ReservationPending {
		return false, nil
	}
	res.Estado = entity.ReservationDelivered
	r.s.st.reservations[id] = res
	return true, nil
}

func (r *ReservationRepo) ListByDate(fecha time.Time) ([]entity.Reservation, error) {
	var out []entity.Reservation
	for _, res := range r.s.st.reservations {
		if res.FechaAgendada.Equal(fecha) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodigoTicket < out[j].CodigoTicket })
	return out, nil
}

func (r *ReservationRepo) ListByClient(clienteID int64) ([]entity.Reservation, error) {
	var out []entity.Reservation
	for _, res := range r.s.st.reservations {
		if res.ClienteID == clienteID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *ReservationRepo) SumByDate(fecha time.Time, fuel entity.FuelType) (decimal.Decimal, decimal.Decimal, error) {
	agendados, entregados := decimal.Zero, decimal.Zero
	for _, res := range r.s.st.reservations {
		if !res.FechaAgendada.Equal(fecha) || res.FuelType != fuel {
			continue
		}
		agendados = agendados.Add(res.Litros)
		if res.Estado == entity.ReservationDelivered {
			entregados = entregados.Add(res.Litros)
		}
	}
	return agendados, entregados, nil
}

// WithdrawalRepo retiros en memoria.
type WithdrawalRepo struct{ s *Store }

// NewWithdrawalRepository construye el repositorio.
func NewWithdrawalRepository(s *Store) *WithdrawalRepo { return &WithdrawalRepo{s: s} }

func (r *WithdrawalRepo) Create(w *entity.Withdrawal) (int64, error) {
	w.ID = r.s.nextID()
	r.s.st.withdrawals[w.ID] = *w
	return w.ID, nil
}

func (r *WithdrawalRepo) List(f repository.WithdrawalFilter) ([]entity.Withdrawal, error) {
	var out []entity.Withdrawal
	for _, w := range r.s.st.withdrawals {
		if f.ClienteID != nil && w.ClienteID != *f.ClienteID {
			continue
		}
		if f.Desde != nil && w.Fecha.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && w.Fecha.After(*f.Hasta) {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ConfigRepo fila única de configuración en memoria.
type ConfigRepo struct{ s *Store }

// NewConfigRepository construye el repositorio.
func NewConfigRepository(s *Store) *ConfigRepo { return &ConfigRepo{s: s} }

func (r *ConfigRepo) Get() (*entity.SystemConfig, error) {
	return cloneConfig(r.s.st.config), nil
}

func (r *ConfigRepo) GetForUpdate() (*entity.SystemConfig, error) {
	return cloneConfig(r.s.st.config), nil
}

func (r *ConfigRepo) SetFechaUltimoReset(fecha time.Time) error {
	if r.s.st.config == nil {
		return domain.ErrNotFound
	}
	f := fecha
	r.s.st.config.FechaUltimoReset = &f
	return nil
}

func (r *ConfigRepo) SetRetirosBloqueados(bloqueado bool) error {
	if r.s.st.config == nil {
		return domain.ErrNotFound
	}
	r.s.st.config.RetirosBloqueados = bloqueado
	return nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) GetByUsuario(usuario string) (*entity.User, error) {
	for _, u := range r.s.st.users {
		if u.Usuario == usuario {
			uu := u
			return &uu, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Create(u *entity.User) (int64, error) {
	for _, ex := range r.s.st.users {
		if ex.Usuario == u.Usuario {
			return 0, domain.ErrDuplicate
		}
	}
	u.ID = r.s.nextID()
	r.s.st.users[u.ID] = *u
	return u.ID, nil
}
