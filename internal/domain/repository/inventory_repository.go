package repository

import "github.com/jhoicas/combustible-api/internal/domain/entity"

// InventoryRepository puerto del libro de inventario append-only.
// Solo el gestor de inventario calcula totales corridos y agrega filas;
// las filas nunca se actualizan ni se borran.
type InventoryRepository interface {
	// Latest fila más reciente para el combustible, o nil si no existe.
	Latest(fuel entity.FuelType) (*entity.InventoryEntry, error)
	// LatestForUpdate igual que Latest pero bloqueando la fila (FOR UPDATE),
	// para serializar appends concurrentes sobre el mismo combustible.
	LatestForUpdate(fuel entity.FuelType) (*entity.InventoryEntry, error)
	// Append agrega una fila nueva al libro. Nunca modifica filas previas.
	Append(e *entity.InventoryEntry) (int64, error)
	// History todas las filas, más recientes primero, con nombre de usuario.
	History() ([]entity.InventoryEntry, error)
}
