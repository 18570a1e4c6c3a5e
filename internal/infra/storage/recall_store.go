package storage

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/discord-interactions-demo/internal/domain"
)

// DefaultRetention es la ventana de recuerdo de interacciones (15 min).
const DefaultRetention = 900 * time.Second

type RecallOption func(*RecallStore)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) RecallOption {
	return func(s *RecallStore) { s.now = now }
}

// WithLenientMatch devuelve el registro buscado aunque ya esté fuera de la
// ventana, siempre que siga en memoria al momento del lookup. Los demás
// vencidos se purgan igual.
func WithLenientMatch() RecallOption {
	return func(s *RecallStore) { s.lenient = true }
}

// RecallStore guarda en memoria los pares request/response recientes.
// Se purga sólo al leer; no hay timers.
type RecallStore struct {
	mu        sync.Mutex
	records   []domain.InteractionRecord
	retention time.Duration
	now       func() time.Time
	lenient   bool
}

func NewRecallStore(retention time.Duration, opts ...RecallOption) *RecallStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	s := &RecallStore{retention: retention, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *RecallStore) Record(id string, request json.RawMessage, response *discordgo.InteractionResponse) {
	rec := domain.InteractionRecord{
		ID:        id,
		Request:   request,
		Response:  response,
		Timestamp: s.now(),
	}
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
}

// Lookup recorre todo una vez: conserva los que siguen dentro de la ventana,
// descarta el resto y devuelve el que coincide con id.
func (s *RecallStore) Lookup(id string) (domain.InteractionRecord, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		found domain.InteractionRecord
		ok    bool
	)
	kept := s.records[:0]
	for _, rec := range s.records {
		fresh := now.Sub(rec.Timestamp) < s.retention
		if !ok && rec.ID == id && (fresh || s.lenient) {
			found, ok = rec, true
		}
		if fresh {
			kept = append(kept, rec)
		}
	}
	// limpiar la cola del backing array para no retener payloads viejos
	for i := len(kept); i < len(s.records); i++ {
		s.records[i] = domain.InteractionRecord{}
	}
	s.records = kept

	if !ok {
		return domain.InteractionRecord{}, domain.ErrInteractionNotFound
	}
	return found, nil
}

func (s *RecallStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *RecallStore) Retention() time.Duration { return s.retention }
