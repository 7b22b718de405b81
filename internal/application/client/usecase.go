// Package client administra el padrón de clientes y subclientes: altas,
// edición de cupos, consultas y la contabilidad padre-hijo de los cupos
// mensuales.
package client

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
	"github.com/jhoicas/combustible-api/pkg/logger"
	"github.com/jhoicas/combustible-api/pkg/tz"
)

// TxRunner ejecuta mutaciones del padrón en una transacción.
type TxRunner interface {
	RunPadron(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		subclientRepo repository.SubclientRepository,
	) error) error
}

// UseCase caso de uso del padrón.
type UseCase struct {
	txRunner      TxRunner
	clientRepo    repository.ClientRepository
	subclientRepo repository.SubclientRepository
	log           *logger.Logger
	loc           *time.Location
	now           func() time.Time
}

// NewUseCase construye el caso de uso. Los repos son para lecturas; las
// mutaciones pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	clientRepo repository.ClientRepository,
	subclientRepo repository.SubclientRepository,
	log *logger.Logger,
	utcOffsetHours int,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		clientRepo:    clientRepo,
		subclientRepo: subclientRepo,
		log:           log,
		loc:           tz.Location(utcOffsetHours),
		now:           time.Now,
	}
}

// WithNow reemplaza la fuente de tiempo; para tests.
func (uc *UseCase) WithNow(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// CreateInput datos de alta o edición de un cliente.
type CreateInput struct {
	Nombre      string
	Cedula      string
	Telefono    string
	Direccion   string
	RIF         string
	Placa       string
	Categoria   string
	Huella      bool
	MesGasolina decimal.Decimal
	MesGasoil   decimal.Decimal
}

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.Nombre) == "" || strings.TrimSpace(in.Cedula) == "" {
		return domain.ErrInvalidInput
	}
	if in.MesGasolina.IsNegative() || in.MesGasoil.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create da de alta un cliente. Los saldos disponibles arrancan iguales al
// cupo mensual de cada combustible; el agregado legado es la suma de ambos.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	total := in.MesGasolina.Add(in.MesGasoil)
	c := &entity.Client{
		Nombre:            strings.TrimSpace(in.Nombre),
		Cedula:            strings.TrimSpace(in.Cedula),
		Telefono:          in.Telefono,
		Direccion:         in.Direccion,
		RIF:               in.RIF,
		Placa:             in.Placa,
		Categoria:         in.Categoria,
		Huella:            in.Huella,
		Activo:            true,
		MonthlyGasoline:   in.MesGasolina,
		MonthlyDiesel:     in.MesGasoil,
		MonthlyTotal:      total,
		AvailableGasoline: in.MesGasolina,
		AvailableDiesel:   in.MesGasoil,
		AvailableTotal:    total,
		FechaRegistro:     uc.now().In(uc.loc),
	}
	err := uc.txRunner.RunPadron(ctx, func(
		clientRepo repository.ClientRepository,
		_ repository.SubclientRepository,
	) error {
		id, err := clientRepo.Create(c)
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("cliente_id", c.ID).Str("cedula", c.Cedula).Msg("cliente creado")
	return c, nil
}

// Update edita los datos y cupos mensuales de un cliente. Los saldos
// disponibles del ciclo en curso no se tocan: el nuevo cupo rige a partir
// del próximo reset diario.
//
// Reducir el cupo por debajo de lo ya repartido entre los subclientes activos
// es un conflicto: la suma de cupos de los hijos nunca puede exceder el del
// padre.
func (uc *UseCase) Update(ctx context.Context, id int64, in CreateInput) (*entity.Client, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	var out *entity.Client
	err := uc.txRunner.RunPadron(ctx, func(
		clientRepo repository.ClientRepository,
		subclientRepo repository.SubclientRepository,
	) error {
		c, err := clientRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}

		sumGasolina, sumGasoil, err := subclientRepo.SumMonthlyByParent(id)
		if err != nil {
			return err
		}
		if sumGasolina.GreaterThan(in.MesGasolina) || sumGasoil.GreaterThan(in.MesGasoil) {
			return domain.ErrConflict
		}

		c.Nombre = strings.TrimSpace(in.Nombre)
		c.Cedula = strings.TrimSpace(in.Cedula)
		c.Telefono = in.Telefono
		c.Direccion = in.Direccion
		c.RIF = in.RIF
		c.Placa = in.Placa
		c.Categoria = in.Categoria
		c.Huella = in.Huella
		c.MonthlyGasoline = in.MesGasolina
		c.MonthlyDiesel = in.MesGasoil
		c.MonthlyTotal = in.MesGasolina.Add(in.MesGasoil)
		if err := clientRepo.Update(c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("cliente_id", id).Msg("cliente actualizado")
	return out, nil
}

// Deactivate baja lógica: el cliente deja de autenticarse y de despachar,
// pero su historial permanece.
func (uc *UseCase) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.RunPadron(ctx, func(
		clientRepo repository.ClientRepository,
		_ repository.SubclientRepository,
	) error {
		c, err := clientRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		c.Activo = false
		return clientRepo.Update(c)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("cliente_id", id).Msg("cliente desactivado")
	return nil
}

// Get busca un cliente activo con los litros retirados del mes corriente.
func (uc *UseCase) Get(id int64) (*entity.Client, decimal.Decimal, error) {
	c, err := uc.clientRepo.GetActiveByID(id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if c == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}
	retirados, err := uc.clientRepo.SumWithdrawnInMonth(id, uc.now().In(uc.loc))
	if err != nil {
		return nil, decimal.Zero, err
	}
	return c, retirados, nil
}

// ByTelefono busca un cliente activo por teléfono exacto.
func (uc *UseCase) ByTelefono(telefono string) (*entity.Client, error) {
	if strings.TrimSpace(telefono) == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.clientRepo.GetByTelefono(telefono)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Search lista clientes activos. La búsqueda es insensible a mayúsculas y a
// acentos (Pérez encuentra a perez) sobre nombre, cédula y dirección.
func (uc *UseCase) Search(busqueda string) ([]entity.Client, error) {
	todos, err := uc.clientRepo.List("")
	if err != nil {
		return nil, err
	}
	q := foldSearch(busqueda)
	if q == "" {
		return todos, nil
	}
	out := make([]entity.Client, 0, len(todos))
	for _, c := range todos {
		if strings.Contains(foldSearch(c.Nombre), q) ||
			strings.Contains(foldSearch(c.Cedula), q) ||
			strings.Contains(foldSearch(c.Direccion), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// foldSearch baja a minúsculas y descarta marcas diacríticas.
func foldSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plano, _, err := transform.String(t, s)
	if err != nil {
		plano = s
	}
	return strings.ToLower(strings.TrimSpace(plano))
}

// SubclientInput datos de alta de un subcliente.
type SubclientInput struct {
	Nombre      string
	Cedula      string
	Placa       string
	MesGasolina decimal.Decimal
	MesGasoil   decimal.Decimal
}

// CreateSubclient da de alta un subcliente de un padre activo. El cupo del
// hijo sale del cupo del padre: la suma de cupos de los subclientes activos,
// incluido el nuevo, no puede exceder el cupo mensual del padre por
// combustible; excederlo es un conflicto.
func (uc *UseCase) CreateSubclient(ctx context.Context, parentID int64, in SubclientInput) (*entity.Subclient, error) {
	if parentID <= 0 || strings.TrimSpace(in.Nombre) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MesGasolina.IsNegative() || in.MesGasoil.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	sc := &entity.Subclient{
		ParentID:          parentID,
		Nombre:            strings.TrimSpace(in.Nombre),
		Cedula:            in.Cedula,
		Placa:             in.Placa,
		Activo:            true,
		MonthlyGasoline:   in.MesGasolina,
		MonthlyDiesel:     in.MesGasoil,
		AvailableGasoline: in.MesGasolina,
		AvailableDiesel:   in.MesGasoil,
	}
	err := uc.txRunner.RunPadron(ctx, func(
		clientRepo repository.ClientRepository,
		subclientRepo repository.SubclientRepository,
	) error {
		padre, err := clientRepo.GetForUpdate(parentID)
		if err != nil {
			return err
		}
		if padre == nil {
			return domain.ErrNotFound
		}
		sumGasolina, sumGasoil, err := subclientRepo.SumMonthlyByParent(parentID)
		if err != nil {
			return err
		}
		if sumGasolina.Add(in.MesGasolina).GreaterThan(padre.MonthlyGasoline) ||
			sumGasoil.Add(in.MesGasoil).GreaterThan(padre.MonthlyDiesel) {
			return domain.ErrConflict
		}
		id, err := subclientRepo.Create(sc)
		if err != nil {
			return err
		}
		sc.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("cliente_id", parentID).Int64("subcliente_id", sc.ID).Msg("subcliente creado")
	return sc, nil
}

// Subclients lista los subclientes activos de un padre.
func (uc *UseCase) Subclients(parentID int64) ([]entity.Subclient, error) {
	if parentID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.subclientRepo.ListByParent(parentID)
}
