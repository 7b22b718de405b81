package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL idempotente del motor. Los litros van en NUMERIC: los saldos son
// dinero en especie y no toleran redondeo binario.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id BIGSERIAL PRIMARY KEY,
		usuario VARCHAR(255) UNIQUE NOT NULL,
		contrasena VARCHAR(255) NOT NULL,
		nombre VARCHAR(255) NOT NULL,
		es_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS clientes (
		id BIGSERIAL PRIMARY KEY,
		nombre VARCHAR(255) NOT NULL,
		direccion TEXT NOT NULL DEFAULT '',
		telefono VARCHAR(50) NOT NULL DEFAULT '',
		cedula VARCHAR(50) UNIQUE NOT NULL,
		rif VARCHAR(50) NOT NULL DEFAULT '',
		placa VARCHAR(50) NOT NULL DEFAULT '',
		categoria VARCHAR(100) NOT NULL DEFAULT 'Persona Natural',
		huella BOOLEAN NOT NULL DEFAULT FALSE,
		litros_mes NUMERIC(12,2) NOT NULL DEFAULT 0,
		litros_disponibles NUMERIC(12,2) NOT NULL DEFAULT 0,
		litros_mes_gasolina NUMERIC(12,2) NOT NULL DEFAULT 0,
		litros_mes_gasoil NUMERIC(12,2) NOT NULL DEFAULT 0,
		litros_disponibles_gasolina NUMERIC(12,2) NOT NULL DEFAULT 0,
		litros_disponibles_gasoil NUMERIC(12,2) NOT NULL DEFAULT 0,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		fecha_registro TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS subclientes (
		id BIGSERIAL PRIMARY KEY,
		cliente_padre_id BIGINT NOT NULL REFERENCES clientes (id),
		nombre VARCHAR(255) NOT NULL,
		cedula VARCHAR(50) NOT NULL DEFAULT '',
		placa VARCHAR(50) NOT NULL DEFAULT '',
		litros_mes_gasolina NUMERIC(12,2) NOT NULL DEFAULT 0,
		litros_mes_gasoil NUMERIC(12,2) NOT NULL DEFAULT 0,
		litros_disponibles_gasolina NUMERIC(12,2) NOT NULL DEFAULT 0,
		litros_disponibles_gasoil NUMERIC(12,2) NOT NULL DEFAULT 0,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS retiros (
		id BIGSERIAL PRIMARY KEY,
		cliente_id BIGINT NOT NULL REFERENCES clientes (id),
		fecha DATE NOT NULL,
		hora TIME NOT NULL DEFAULT '00:00:00',
		litros NUMERIC(12,2) NOT NULL,
		usuario_id BIGINT NOT NULL REFERENCES usuarios (id),
		tipo_combustible VARCHAR(20) NOT NULL DEFAULT 'gasolina'
	)`,
	`CREATE TABLE IF NOT EXISTS agendamientos (
		id BIGSERIAL PRIMARY KEY,
		cliente_id BIGINT NOT NULL REFERENCES clientes (id),
		subcliente_id BIGINT REFERENCES subclientes (id),
		tipo_combustible VARCHAR(20) NOT NULL DEFAULT 'gasolina',
		litros NUMERIC(12,2) NOT NULL,
		fecha_agendada DATE NOT NULL,
		codigo_ticket INTEGER NOT NULL,
		estado VARCHAR(20) NOT NULL DEFAULT 'pendiente',
		fecha_creacion TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// El índice único respalda la secuencia MAX+1 de tickets: dos
	// transacciones que calculen el mismo número no pueden confirmar ambas.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_agendamientos_fecha_ticket
		ON agendamientos (fecha_agendada, codigo_ticket)`,
	`CREATE TABLE IF NOT EXISTS inventario (
		id BIGSERIAL PRIMARY KEY,
		tipo_combustible VARCHAR(20) NOT NULL CHECK (tipo_combustible IN ('gasolina', 'gasoil')),
		litros_ingresados NUMERIC(12,2) NOT NULL,
		litros_disponibles NUMERIC(12,2) NOT NULL,
		fecha_ingreso TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		usuario_id BIGINT REFERENCES usuarios (id),
		observaciones TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inventario_tipo_id
		ON inventario (tipo_combustible, id DESC)`,
	`CREATE TABLE IF NOT EXISTS sistema_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		retiros_bloqueados BOOLEAN NOT NULL DEFAULT FALSE,
		limite_diario_gasolina NUMERIC(12,2) NOT NULL DEFAULT 2000,
		fecha_ultimo_reset DATE,
		fecha_actualizacion TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`INSERT INTO sistema_config (id) VALUES (1) ON CONFLICT (id) DO NOTHING`,
}

// EnsureSchema crea las tablas e índices si no existen y garantiza la fila
// única de sistema_config. Seguro de correr en cada arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
