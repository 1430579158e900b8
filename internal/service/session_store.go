package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/google/uuid"
)

// txHook runs extra writes inside the same transaction as a store mutation.
type txHook func(ctx context.Context, tx db.DBTX) error

// SessionStore owns the in-memory measurement, box and catalog collections
// and is the only writer of them to storage. Every mutation either persists
// or leaves the collections exactly as they were.
type SessionStore struct {
	mu           sync.RWMutex
	measurements []domain.Measurement // newest start first
	boxes        []domain.Box         // newest start first
	catalog      map[string]domain.CatalogEntry
	version      uint64

	measurementRepo repository.MeasurementRepo
	boxRepo         repository.BoxRepo
	catalogRepo     repository.CatalogRepo
	uow             db.UnitOfWork

	pick     func(n int) int
	observer UseCaseObserver
}

// StoreOption customizes a SessionStore.
type StoreOption func(*SessionStore)

// WithColorPicker replaces the random palette index source used for new
// catalog entries.
func WithColorPicker(pick func(n int) int) StoreOption {
	return func(s *SessionStore) { s.pick = pick }
}

// WithObserver receives an event after every store operation.
func WithObserver(o UseCaseObserver) StoreOption {
	return func(s *SessionStore) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewSessionStore(
	measurements repository.MeasurementRepo,
	boxes repository.BoxRepo,
	catalog repository.CatalogRepo,
	uow db.UnitOfWork,
	opts ...StoreOption,
) *SessionStore {
	s := &SessionStore{
		catalog:         make(map[string]domain.CatalogEntry),
		measurementRepo: measurements,
		boxRepo:         boxes,
		catalogRepo:     catalog,
		uow:             uow,
		pick:            rand.IntN,
		observer:        NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collections with the stored ones.
func (s *SessionStore) Load(ctx context.Context) (err error) {
	defer s.track(ctx, "store.load", time.Now(), &err, nil)

	ms, err := s.measurementRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading measurements: %w", err)
	}
	bs, err := s.boxRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading boxes: %w", err)
	}
	entries, err := s.catalogRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.measurements = ms
	s.boxes = bs
	s.catalog = make(map[string]domain.CatalogEntry, len(entries))
	for _, e := range entries {
		s.catalog[e.Name] = e
	}
	s.version++
	return nil
}

// AddMeasurement validates m, ensures its label has a catalog entry, colors
// it from that entry and persists both. The stored copy is returned.
func (s *SessionStore) AddMeasurement(ctx context.Context, m domain.Measurement) (domain.Measurement, error) {
	return s.addMeasurement(ctx, m, nil)
}

func (s *SessionStore) addMeasurement(ctx context.Context, m domain.Measurement, hook txHook) (out domain.Measurement, err error) {
	defer s.track(ctx, "store.add_measurement", time.Now(), &err, map[string]any{"label": m.Label})

	m.Label = domain.NormalizeLabel(m.Label)
	if err := m.Validate(); err != nil {
		return domain.Measurement{}, err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(m.ID) >= 0 {
		return domain.Measurement{}, fmt.Errorf("measurement %s already exists", m.ID)
	}

	snap := s.snapshot()
	entry, created := s.ensureEntryLocked(m.Label)
	m.Color = entry.Color
	s.insertLocked(m)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if created {
			if err := repository.NewSQLiteCatalogRepo(tx).Create(ctx, &entry); err != nil {
				return err
			}
		}
		if err := repository.NewSQLiteMeasurementRepo(tx).Create(ctx, &m); err != nil {
			return err
		}
		if hook != nil {
			return hook(ctx, tx)
		}
		return nil
	})
	if err != nil {
		s.restore(snap)
		return domain.Measurement{}, fmt.Errorf("saving measurement: %w", err)
	}
	s.version++
	return m, nil
}

// UpdateMeasurement replaces the stored measurement with the same ID.
func (s *SessionStore) UpdateMeasurement(ctx context.Context, m domain.Measurement) (out domain.Measurement, err error) {
	defer s.track(ctx, "store.update_measurement", time.Now(), &err, map[string]any{"id": m.ID})

	m.Label = domain.NormalizeLabel(m.Label)
	if err := m.Validate(); err != nil {
		return domain.Measurement{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(m.ID)
	if idx < 0 {
		return domain.Measurement{}, fmt.Errorf("measurement %s: %w", m.ID, repository.ErrNotFound)
	}

	snap := s.snapshot()
	entry, created := s.ensureEntryLocked(m.Label)
	m.Color = entry.Color
	s.measurements[idx] = m
	sortNewestFirst(s.measurements)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if created {
			if err := repository.NewSQLiteCatalogRepo(tx).Create(ctx, &entry); err != nil {
				return err
			}
		}
		return repository.NewSQLiteMeasurementRepo(tx).Update(ctx, &m)
	})
	if err != nil {
		s.restore(snap)
		return domain.Measurement{}, fmt.Errorf("updating measurement: %w", err)
	}
	s.version++
	return m, nil
}

// DeleteMeasurement removes the measurement and returns it so the caller can
// offer a restore.
func (s *SessionStore) DeleteMeasurement(ctx context.Context, id string) (domain.Measurement, error) {
	return s.deleteMeasurement(ctx, id, nil)
}

func (s *SessionStore) deleteMeasurement(ctx context.Context, id string, hook func(removed domain.Measurement) txHook) (out domain.Measurement, err error) {
	defer s.track(ctx, "store.delete_measurement", time.Now(), &err, map[string]any{"id": id})

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Measurement{}, fmt.Errorf("measurement %s: %w", id, repository.ErrNotFound)
	}

	snap := s.snapshot()
	removed := s.measurements[idx]
	s.measurements = append(s.measurements[:idx], s.measurements[idx+1:]...)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteMeasurementRepo(tx).Delete(ctx, id); err != nil {
			return err
		}
		if hook != nil {
			return hook(removed)(ctx, tx)
		}
		return nil
	})
	if err != nil {
		s.restore(snap)
		return domain.Measurement{}, fmt.Errorf("deleting measurement: %w", err)
	}
	s.version++
	return removed, nil
}

// AddBox records a completed box.
func (s *SessionStore) AddBox(ctx context.Context, b domain.Box) (err error) {
	defer s.track(ctx, "store.add_box", time.Now(), &err, map[string]any{"work_minutes": b.WorkMinutes})

	if b.WorkMinutes <= 0 {
		return domain.NewValidationError("work_minutes", "must be > 0, got %d", b.WorkMinutes)
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	s.boxes = append(s.boxes, b)
	sortBoxesNewestFirst(s.boxes)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteBoxRepo(tx).Create(ctx, &b)
	})
	if err != nil {
		s.restore(snap)
		return fmt.Errorf("saving box: %w", err)
	}
	s.version++
	return nil
}

// Import adds every measurement and box whose ID is not already stored, in
// one transaction. Imported measurements take their catalog entry's color;
// an entry created by the import takes the imported color.
func (s *SessionStore) Import(ctx context.Context, ms []domain.Measurement, bs []domain.Box) (res *ImportResult, err error) {
	defer s.track(ctx, "store.import", time.Now(), &err, map[string]any{
		"measurements": len(ms), "boxes": len(bs),
	})

	ms = slices.Clone(ms)
	for i := range ms {
		ms[i].Label = domain.NormalizeLabel(ms[i].Label)
		if err := ms[i].Validate(); err != nil {
			return nil, fmt.Errorf("measurement %s: %w", ms[i].ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	res = &ImportResult{}
	var newEntries []domain.CatalogEntry
	var newMs []domain.Measurement
	var newBs []domain.Box

	for _, m := range ms {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		if s.indexOf(m.ID) >= 0 {
			res.Skipped++
			continue
		}
		entry, ok := s.catalog[m.Label]
		if !ok {
			entry = domain.CatalogEntry{Name: m.Label, Color: m.Color}
			if entry.Color.Validate() != nil {
				entry.Color = s.randomColor()
			}
			s.catalog[m.Label] = entry
			newEntries = append(newEntries, entry)
		}
		m.Color = entry.Color
		s.insertLocked(m)
		newMs = append(newMs, m)
	}

	boxIDs := make(map[string]bool, len(s.boxes))
	for _, b := range s.boxes {
		boxIDs[b.ID] = true
	}
	for _, b := range bs {
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if boxIDs[b.ID] {
			res.Skipped++
			continue
		}
		boxIDs[b.ID] = true
		s.boxes = append(s.boxes, b)
		newBs = append(newBs, b)
	}
	sortBoxesNewestFirst(s.boxes)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		catalogRepo := repository.NewSQLiteCatalogRepo(tx)
		measurementRepo := repository.NewSQLiteMeasurementRepo(tx)
		boxRepo := repository.NewSQLiteBoxRepo(tx)
		for i := range newEntries {
			if err := catalogRepo.Create(ctx, &newEntries[i]); err != nil {
				return err
			}
		}
		for i := range newMs {
			if err := measurementRepo.Create(ctx, &newMs[i]); err != nil {
				return fmt.Errorf("measurement %s: %w", newMs[i].ID, err)
			}
		}
		for i := range newBs {
			if err := boxRepo.Create(ctx, &newBs[i]); err != nil {
				return fmt.Errorf("box %s: %w", newBs[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.restore(snap)
		return nil, fmt.Errorf("importing: %w", err)
	}

	res.Measurements = len(newMs)
	res.Boxes = len(newBs)
	res.CatalogEntries = len(newEntries)
	s.version++
	return res, nil
}

// SetCatalogColor recolors an entry, creating it if needed, and recolors the
// measurements carrying that label.
func (s *SessionStore) SetCatalogColor(ctx context.Context, name string, c domain.Color) (err error) {
	defer s.track(ctx, "store.set_catalog_color", time.Now(), &err, map[string]any{"name": name})

	name = domain.NormalizeLabel(name)
	if name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	entry := domain.CatalogEntry{Name: name, Color: c}
	s.catalog[name] = entry
	var touched []domain.Measurement
	for i := range s.measurements {
		if s.measurements[i].Label == name {
			s.measurements[i].Color = c
			touched = append(touched, s.measurements[i])
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCatalogRepo(tx).Upsert(ctx, &entry); err != nil {
			return err
		}
		measurementRepo := repository.NewSQLiteMeasurementRepo(tx)
		for i := range touched {
			if err := measurementRepo.Update(ctx, &touched[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.restore(snap)
		return fmt.Errorf("saving catalog color: %w", err)
	}
	s.version++
	return nil
}

// Measurements returns a copy ordered newest start first.
func (s *SessionStore) Measurements() []domain.Measurement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Measurement(nil), s.measurements...)
}

// Measurement looks up one measurement by ID.
func (s *SessionStore) Measurement(id string) (domain.Measurement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.measurements[idx], nil
	}
	return domain.Measurement{}, fmt.Errorf("measurement %s: %w", id, repository.ErrNotFound)
}

// Boxes returns a copy ordered newest start first.
func (s *SessionStore) Boxes() []domain.Box {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Box(nil), s.boxes...)
}

// Catalog returns a copy of the entries keyed by name.
func (s *SessionStore) Catalog() map[string]domain.CatalogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.CatalogEntry, len(s.catalog))
	for k, v := range s.catalog {
		out[k] = v
	}
	return out
}

// Version increases after every successful mutation.
func (s *SessionStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

type storeSnapshot struct {
	measurements []domain.Measurement
	boxes        []domain.Box
	catalog      map[string]domain.CatalogEntry
}

func (s *SessionStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		measurements: append([]domain.Measurement(nil), s.measurements...),
		boxes:        append([]domain.Box(nil), s.boxes...),
		catalog:      make(map[string]domain.CatalogEntry, len(s.catalog)),
	}
	for k, v := range s.catalog {
		snap.catalog[k] = v
	}
	return snap
}

func (s *SessionStore) restore(snap storeSnapshot) {
	s.measurements = snap.measurements
	s.boxes = snap.boxes
	s.catalog = snap.catalog
}

// ensureEntryLocked returns the entry for label, adding one with a palette
// color when missing. created reports whether the entry is new.
func (s *SessionStore) ensureEntryLocked(label string) (entry domain.CatalogEntry, created bool) {
	if e, ok := s.catalog[label]; ok {
		return e, false
	}
	e := domain.CatalogEntry{Name: label, Color: s.randomColor()}
	s.catalog[label] = e
	return e, true
}

func (s *SessionStore) randomColor() domain.Color {
	return domain.Palette[s.pick(len(domain.Palette))%len(domain.Palette)]
}

func (s *SessionStore) insertLocked(m domain.Measurement) {
	i := sort.Search(len(s.measurements), func(i int) bool {
		return !s.measurements[i].Start.After(m.Start)
	})
	s.measurements = append(s.measurements, domain.Measurement{})
	copy(s.measurements[i+1:], s.measurements[i:])
	s.measurements[i] = m
}

func (s *SessionStore) indexOf(id string) int {
	for i := range s.measurements {
		if s.measurements[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *SessionStore) track(ctx context.Context, name string, started time.Time, errp *error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:     name,
		Outcome:  outcomeOf(*errp),
		Duration: time.Since(started),
		Version:  s.Version(),
		Err:      *errp,
		Fields:   fields,
	})
}

func sortNewestFirst(ms []domain.Measurement) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Start.After(ms[j].Start) })
}

func sortBoxesNewestFirst(bs []domain.Box) {
	sort.SliceStable(bs, func(i, j int) bool { return bs[i].Start.After(bs[j].Start) })
}
