// Package cache guarda vistas renderizadas del dashboard y las invalida tras cada mutación.
package cache

import (
	"context"
	"time"
)

// Store almacenamiento clave/valor mínimo que necesita ViewCache.
type Store interface {
	// Get devuelve (valor, true) o ("", false) si la clave no existe o expiró.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set guarda value con expiración ttl (0 = sin expiración).
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr incrementa el contador key (0 si no existe) y devuelve el nuevo valor.
	Incr(ctx context.Context, key string) (int64, error)
	// GetInt lee un contador; 0 si no existe.
	GetInt(ctx context.Context, key string) (int64, error)
}

// Pruner lo implementan los stores que no expiran solos las claves que nadie vuelve a leer.
// DeletePrefix borra las claves con prefix salvo aquellas para las que keep devuelve true.
type Pruner interface {
	DeletePrefix(ctx context.Context, prefix string, keep func(key string) bool) (int, error)
}
