package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/schedule"
)

// Repository reads and writes the board and the custom colour list.
type Repository struct {
	kv        KV
	stateKey  string
	colorsKey string
	log       *zap.Logger
}

// NewRepository wraps kv. A nil logger is replaced by zap.NewNop.
func NewRepository(kv KV, stateKey, colorsKey string, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{kv: kv, stateKey: stateKey, colorsKey: colorsKey, log: log}
}

// LoadState returns the persisted board. When nothing is stored, or the
// stored document cannot be parsed, it returns fallback and loaded=false.
// Only backend failures are returned as errors.
func (r *Repository) LoadState(ctx context.Context, fallback schedule.State) (st schedule.State, loaded bool, err error) {
	raw, ok, err := r.kv.Get(ctx, r.stateKey)
	if err != nil {
		return schedule.State{}, false, fmt.Errorf("loading board: %w", err)
	}
	if !ok {
		return fallback, false, nil
	}

	st, dropped, err := Decode(raw)
	if err != nil {
		r.log.Warn("discarding unreadable board", zap.String("key", r.stateKey), zap.Error(err))
		return fallback, false, nil
	}
	if dropped > 0 {
		r.log.Warn("dropped sessions with missing pool or course", zap.Int("count", dropped))
	}
	return st, true, nil
}

// Decode parses a board document and drops sessions whose pool or course is
// missing. It returns the number of dropped sessions.
func Decode(raw []byte) (schedule.State, int, error) {
	var st schedule.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return schedule.State{}, 0, fmt.Errorf("decoding board: %w", err)
	}
	st, dropped := prune(st)
	return st.Clone(), dropped, nil
}

// SaveState writes the board.
func (r *Repository) SaveState(ctx context.Context, st schedule.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}
	if err := r.kv.Put(ctx, r.stateKey, raw); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	return nil
}

// ResetState removes the persisted board so the next load falls back to the seed.
func (r *Repository) ResetState(ctx context.Context) error {
	return r.kv.Delete(ctx, r.stateKey)
}

// LoadColors returns the stored custom colours, or nil when none are stored.
func (r *Repository) LoadColors(ctx context.Context) ([]string, error) {
	raw, ok, err := r.kv.Get(ctx, r.colorsKey)
	if err != nil {
		return nil, fmt.Errorf("loading colors: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var colors []string
	if err := json.Unmarshal(raw, &colors); err != nil {
		r.log.Warn("discarding unreadable colors", zap.String("key", r.colorsKey), zap.Error(err))
		return nil, nil
	}
	return colors, nil
}

// SaveColors writes the custom colour list.
func (r *Repository) SaveColors(ctx context.Context, colors []string) error {
	if colors == nil {
		colors = []string{}
	}
	raw, err := json.Marshal(colors)
	if err != nil {
		return fmt.Errorf("encoding colors: %w", err)
	}
	if err := r.kv.Put(ctx, r.colorsKey, raw); err != nil {
		return fmt.Errorf("saving colors: %w", err)
	}
	return nil
}

// Watch saves the board after every store change until the returned func is
// called. Save failures are logged and do not stop the watch.
func (r *Repository) Watch(ctx context.Context, store *schedule.Store) func() {
	return store.Subscribe(func(ev schedule.Event) {
		if err := r.SaveState(ctx, store.Snapshot()); err != nil {
			r.log.Error("autosave failed", zap.String("action", ev.Action), zap.Error(err))
			return
		}
		r.log.Debug("board saved", zap.String("action", ev.Action))
	})
}

// prune removes sessions whose pool or course no longer exists.
func prune(st schedule.State) (schedule.State, int) {
	pools := make(map[string]bool, len(st.Pools))
	for _, p := range st.Pools {
		pools[p.ID] = true
	}
	courses := make(map[string]bool, len(st.Courses))
	for _, c := range st.Courses {
		courses[c.ID] = true
	}

	kept := st.Sessions[:0]
	for _, se := range st.Sessions {
		if pools[se.PoolID] && courses[se.CourseID] {
			kept = append(kept, se)
		}
	}
	dropped := len(st.Sessions) - len(kept)
	st.Sessions = kept
	return st, dropped
}
