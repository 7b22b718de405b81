// seed crea el usuario administrador inicial si no existe y garantiza la fila
// única de configuración del sistema.
//
// Uso: go run ./cmd/seed [usuario] [clave]
// Por defecto crea admin/admin123 (cambiar la clave en producción).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/combustible-api/internal/application/auth"
	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/infrastructure/postgres"
	"github.com/jhoicas/combustible-api/pkg/config"
	"github.com/jhoicas/combustible-api/pkg/logger"
)

func main() {
	usuario := "admin"
	password := "admin123"
	if len(os.Args) > 1 {
		usuario = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// EnsureSchema también inserta la fila sistema_config (id = 1) si falta.
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "inicialización del esquema: %v\n", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(pool)
	if existente, err := userRepo.GetByUsuario(usuario); err != nil {
		fmt.Fprintf(os.Stderr, "consultar usuario: %v\n", err)
		os.Exit(1)
	} else if existente != nil {
		fmt.Printf("El usuario %q ya existe (id=%d); nada que hacer\n", usuario, existente.ID)
		return
	}

	resetUC := quota.NewResetUseCase(postgres.NewTxRunner(pool), logger.Nop(), quota.Config{
		CutoffHour:     cfg.Reset.CutoffHour,
		UTCOffsetHours: cfg.Reset.UTCOffsetHours,
	})
	authUC := auth.NewUseCase(userRepo, postgres.NewClientRepository(pool), resetUC, logger.Nop(), auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})

	u, err := authUC.RegisterUser(ctx, usuario, password, "Administrador", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Usuario administrador creado: %s (id=%d)\n", u.Usuario, u.ID)
}
