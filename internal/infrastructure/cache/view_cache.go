package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

// ViewCache caché de vistas renderizadas por ruta.
//
// Cada ruta tiene un contador de generación; las entradas se guardan bajo la generación vigente
// al leer. Revalidate incrementa el contador, así que un render que terminó después de la
// invalidación queda guardado bajo una generación vieja y no vuelve a servirse.
type ViewCache struct {
	store Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewViewCache construye la caché. ttl 0 = sin expiración.
func NewViewCache(store Store, ttl time.Duration, log *logger.Logger) *ViewCache {
	if log == nil {
		log = logger.Nop()
	}
	return &ViewCache{store: store, ttl: ttl, log: log}
}

// Entry resultado de Lookup. Generation se pasa a Save.
type Entry struct {
	Body       string
	Hit        bool
	Generation int64
}

func generationKey(path string) string { return "viewgen:" + path }

func entryPrefix(path string) string { return "view:" + path + ":" }

func entryKey(path string, gen int64, variant string) string {
	return fmt.Sprintf("%s%d:%s", entryPrefix(path), gen, variant)
}

// entryGeneration extrae la generación de una clave construida con entryKey.
func entryGeneration(path, key string) (int64, bool) {
	rest, ok := strings.CutPrefix(key, entryPrefix(path))
	if !ok {
		return 0, false
	}
	genText, _, ok := strings.Cut(rest, ":")
	if !ok {
		return 0, false
	}
	gen, err := strconv.ParseInt(genText, 10, 64)
	if err != nil {
		return 0, false
	}
	return gen, true
}

// Lookup busca el render de path para variant (por ejemplo la query string).
// Un error del store se registra y se trata como fallo de caché.
func (c *ViewCache) Lookup(ctx context.Context, path, variant string) Entry {
	gen, err := c.store.GetInt(ctx, generationKey(path))
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("view cache: leer generación")
		return Entry{Generation: -1}
	}
	body, ok, err := c.store.Get(ctx, entryKey(path, gen, variant))
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("view cache: leer entrada")
		return Entry{Generation: gen}
	}
	return Entry{Body: body, Hit: ok, Generation: gen}
}

// Save guarda body bajo la generación leída en Lookup. Generación negativa no guarda nada.
func (c *ViewCache) Save(ctx context.Context, path, variant string, gen int64, body string) {
	if gen < 0 {
		return
	}
	if err := c.store.Set(ctx, entryKey(path, gen, variant), body, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("view cache: guardar entrada")
	}
}

// Revalidate marca como obsoletas todas las variantes de path. Si el store es un Pruner
// además borra las entradas de generaciones anteriores.
func (c *ViewCache) Revalidate(ctx context.Context, path string) error {
	gen, err := c.store.Incr(ctx, generationKey(path))
	if err != nil {
		return fmt.Errorf("view cache: revalidar %s: %w", path, err)
	}
	c.log.Debug().Str("path", path).Int64("generation", gen).Msg("vista revalidada")

	if p, ok := c.store.(Pruner); ok {
		n, err := p.DeletePrefix(ctx, entryPrefix(path), func(key string) bool {
			g, ok := entryGeneration(path, key)
			return ok && g >= gen
		})
		if err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("view cache: podar generaciones viejas")
		} else if n > 0 {
			c.log.Debug().Str("path", path).Int("deleted", n).Msg("view cache: entradas viejas eliminadas")
		}
	}
	return nil
}
