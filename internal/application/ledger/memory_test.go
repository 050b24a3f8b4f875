package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ware-ledger/internal/domain"
	"github.com/tu-usuario/ware-ledger/internal/domain/entity"
	"github.com/tu-usuario/ware-ledger/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. El memTx emula la
// transacción real: los escritos quedan en un overlay que se aplica al store
// recién en commit (si fn retorna error, se descartan), y GetForUpdate toma
// un mutex exclusivo por variant que se libera al terminar la "transacción",
// igual que el bloqueo de fila de la implementación real.

type memStore struct {
	mu                 sync.Mutex
	variants           map[string]*entity.Variant
	batches            map[string]*entity.Batch
	locks              map[string]*sync.Mutex
	availabilityWrites int
	failAvailability   error // falla inyectada en UpdateAvailability
}

func newMemStore() *memStore {
	return &memStore{
		variants: make(map[string]*entity.Variant),
		batches:  make(map[string]*entity.Batch),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *memStore) lockFor(variantID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[variantID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[variantID] = l
	}
	return l
}

func (s *memStore) seedVariant(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.variants[id] = &entity.Variant{
		ID:        id,
		WareID:    "ware-" + id,
		SizeID:    "size-" + id,
		Price:     decimal.NewFromInt(100),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// memTx representa el alcance de una transacción fake: acumula los escritos
// en un overlay y retiene los locks por variant hasta release.
type memTx struct {
	s            *memStore
	held         map[string]bool
	batches      map[string]*entity.Batch // upserts pendientes
	deleted      map[string]bool          // bajas pendientes de lotes
	availability map[string]bool          // disponibilidad pendiente por variant
}

func newMemTx(s *memStore) *memTx {
	return &memTx{
		s:            s,
		held:         map[string]bool{},
		batches:      map[string]*entity.Batch{},
		deleted:      map[string]bool{},
		availability: map[string]bool{},
	}
}

func (t *memTx) acquire(variantID string) {
	if t.held[variantID] {
		return
	}
	t.s.lockFor(variantID).Lock()
	t.held[variantID] = true
}

func (t *memTx) release() {
	for id := range t.held {
		t.s.lockFor(id).Unlock()
	}
	t.held = map[string]bool{}
}

// commit aplica el overlay al store. Solo se invoca cuando fn terminó sin
// error; en caso contrario el overlay se descarta con la transacción.
func (t *memTx) commit() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for id := range t.deleted {
		delete(t.s.batches, id)
	}
	for id, b := range t.batches {
		cp := *b
		t.s.batches[id] = &cp
	}
	for id, available := range t.availability {
		if v, ok := t.s.variants[id]; ok {
			v.IsAvailable = available
			v.UpdatedAt = time.Now()
			t.s.availabilityWrites++
		}
	}
}

type memTxRunner struct {
	s *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	variantRepo repository.VariantRepository,
) error) error {
	tx := newMemTx(r.s)
	defer tx.release()
	if err := fn(&memBatchRepo{s: r.s, tx: tx}, &memVariantRepo{s: r.s, tx: tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memVariantRepo struct {
	s  *memStore
	tx *memTx // nil fuera de transacción
}

func (r *memVariantRepo) Create(_ context.Context, v *entity.Variant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[v.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *v
	r.s.variants[v.ID] = &cp
	return nil
}

func (r *memVariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	if r.tx != nil {
		if available, staged := r.tx.availability[id]; staged {
			cp.IsAvailable = available
		}
	}
	return &cp, nil
}

func (r *memVariantRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.variants[id]
	return ok, nil
}

func (r *memVariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	if r.tx != nil {
		r.tx.acquire(id)
	}
	return r.GetByID(ctx, id)
}

func (r *memVariantRepo) UpdateAvailability(_ context.Context, id string, isAvailable bool) error {
	r.s.mu.Lock()
	if r.s.failAvailability != nil {
		err := r.s.failAvailability
		r.s.mu.Unlock()
		return err
	}
	_, ok := r.s.variants[id]
	if !ok {
		r.s.mu.Unlock()
		return domain.ErrNotFound
	}
	if r.tx != nil {
		r.s.mu.Unlock()
		r.tx.availability[id] = isAvailable
		return nil
	}
	r.s.variants[id].IsAvailable = isAvailable
	r.s.variants[id].UpdatedAt = time.Now()
	r.s.availabilityWrites++
	r.s.mu.Unlock()
	return nil
}

func (r *memVariantRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.variants, id)
	// cascade, como el esquema real
	for bid, b := range r.s.batches {
		if b.VariantID == id {
			delete(r.s.batches, bid)
		}
	}
	return nil
}

type memBatchRepo struct {
	s  *memStore
	tx *memTx
}

// lookup resuelve un lote a través del overlay de la transacción (si hay).
// Llamar con s.mu tomado.
func (r *memBatchRepo) lookup(id string) (*entity.Batch, bool) {
	if r.tx != nil {
		if r.tx.deleted[id] {
			return nil, false
		}
		if b, ok := r.tx.batches[id]; ok {
			return b, true
		}
	}
	b, ok := r.s.batches[id]
	return b, ok
}

func (r *memBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	if b.Quantity < 0 || b.ExpiryDate.IsZero() {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *b
	if r.tx != nil {
		r.tx.batches[b.ID] = &cp
		return nil
	}
	r.s.batches[b.ID] = &cp
	return nil
}

func (r *memBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.lookup(id)
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	if b.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.lookup(b.ID); !ok {
		return domain.ErrNotFound
	}
	cp := *b
	if r.tx != nil {
		r.tx.batches[b.ID] = &cp
		return nil
	}
	r.s.batches[b.ID] = &cp
	return nil
}

func (r *memBatchRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.lookup(id); !ok {
		return domain.ErrNotFound
	}
	if r.tx != nil {
		delete(r.tx.batches, id)
		r.tx.deleted[id] = true
		return nil
	}
	delete(r.s.batches, id)
	return nil
}

func (r *memBatchRepo) ListByVariant(_ context.Context, variantID string) ([]*entity.Batch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Batch
	for id, b := range r.s.batches {
		if b.VariantID != variantID {
			continue
		}
		if r.tx != nil {
			if r.tx.deleted[id] {
				continue
			}
			if _, staged := r.tx.batches[id]; staged {
				continue // la versión pendiente se agrega abajo
			}
		}
		cp := *b
		list = append(list, &cp)
	}
	if r.tx != nil {
		for _, b := range r.tx.batches {
			if b.VariantID == variantID {
				cp := *b
				list = append(list, &cp)
			}
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// fakeClock reloj controlable para tests deterministas.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
