// Package auth autentica a los dos actores del sistema: usuarios operadores
// (usuario y clave) y clientes (cédula). Emite los JWT que consumen los
// middlewares HTTP.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
	"github.com/jhoicas/combustible-api/pkg/jwt"
	"github.com/jhoicas/combustible-api/pkg/logger"
)

// TokenConfig parámetros de emisión de JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	reset      *quota.ResetUseCase
	log        *logger.Logger
	tokens     TokenConfig
}

// NewUseCase construye el caso de uso. reset se evalúa en cada login de
// cliente, antes de leer los saldos.
func NewUseCase(
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	reset *quota.ResetUseCase,
	log *logger.Logger,
	tokens TokenConfig,
) *UseCase {
	return &UseCase{
		userRepo:   userRepo,
		clientRepo: clientRepo,
		reset:      reset,
		log:        log,
		tokens:     tokens,
	}
}

// AdminLogin autentica un usuario operador por usuario y clave. Credenciales
// inválidas devuelven siempre el mismo ErrUnauthorized, exista o no el
// usuario.
func (uc *UseCase) AdminLogin(ctx context.Context, usuario, password string) (string, *entity.User, error) {
	if usuario == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}
	u, err := uc.userRepo.GetByUsuario(usuario)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		uc.log.Warn().Str("usuario", usuario).Msg("intento de login con clave inválida")
		return "", nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.tokens.Secret, u.ID, u.Nombre, "", jwt.ActorAdmin, uc.tokens.Issuer, uc.tokens.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	uc.log.Info().Str("usuario", usuario).Msg("login de operador")
	return token, u, nil
}

// ClientLogin autentica un cliente activo por cédula. Es el único punto de
// entrada del reset diario perezoso: se evalúa ANTES de leer los saldos, de
// modo que el cliente siempre ve sus litros del día ya repuestos.
func (uc *UseCase) ClientLogin(ctx context.Context, cedula string) (string, *entity.Client, error) {
	if cedula == "" {
		return "", nil, domain.ErrInvalidInput
	}

	if err := uc.reset.CheckAndReset(ctx); err != nil {
		// Un reset fallido no bloquea el login; el próximo intento lo
		// reintenta completo.
		uc.log.Error().Err(err).Msg("reset diario falló durante login de cliente")
	}

	c, err := uc.clientRepo.GetByCedula(cedula)
	if err != nil {
		return "", nil, err
	}
	if c == nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.tokens.Secret, c.ID, c.Nombre, c.Cedula, jwt.ActorCliente, uc.tokens.Issuer, uc.tokens.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	uc.log.Info().Str("cedula", cedula).Int64("cliente_id", c.ID).Msg("login de cliente")
	return token, c, nil
}

// RegisterUser crea un usuario operador con la clave hasheada con bcrypt.
func (uc *UseCase) RegisterUser(ctx context.Context, usuario, password, nombre string, esAdmin bool) (*entity.User, error) {
	if usuario == "" || len(password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Usuario:      usuario,
		PasswordHash: string(hash),
		Nombre:       nombre,
		EsAdmin:      esAdmin,
	}
	id, err := uc.userRepo.Create(u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	uc.log.Info().Str("usuario", usuario).Bool("admin", esAdmin).Msg("usuario creado")
	return u, nil
}
