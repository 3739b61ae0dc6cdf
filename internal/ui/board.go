package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/drag"
	"github.com/javiermolinar/poolboard/internal/drop"
	"github.com/javiermolinar/poolboard/internal/forms"
	"github.com/javiermolinar/poolboard/internal/logging"
	"github.com/javiermolinar/poolboard/internal/placement"
	"github.com/javiermolinar/poolboard/internal/schedule"
	"github.com/javiermolinar/poolboard/internal/storage"
	"github.com/javiermolinar/poolboard/internal/tui"
)

// Lookup errors.
var (
	ErrPoolNotFound    = errors.New("pool not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrAmbiguousID     = errors.New("ambiguous session id")
)

// board is the loaded schedule with everything needed to change it.
type board struct {
	repo      *storage.Repository
	store     *schedule.Store
	committer *placement.Committer
	validator *forms.Validator
	log       *zap.Logger
	colors    []string
	seeded    bool
}

// open loads the persisted board, falling back to the seed data.
func (a *App) open(ctx context.Context, mode logging.Mode) (*board, error) {
	if a.board != nil {
		return a.board, nil
	}

	log, err := logging.New(a.config.Log, mode, a.debug)
	if err != nil {
		return nil, err
	}

	if a.kv == nil {
		kv, err := storage.Open(ctx, a.config.Storage)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		a.kv = kv
	}
	repo := storage.NewRepository(a.kv, a.config.Storage.StateKey, a.config.Storage.ColorsKey, log)

	g := a.config.Geometry()
	st, loaded, err := repo.LoadState(ctx, schedule.Seed(g))
	if err != nil {
		return nil, err
	}
	colors, err := repo.LoadColors(ctx)
	if err != nil {
		return nil, err
	}

	store := schedule.New(st,
		schedule.WithGrid(g),
		schedule.WithHistoryLimit(a.config.History.Limit),
		schedule.WithLogger(log),
	)
	log.Debug("board opened",
		zap.String("backend", a.config.Storage.Backend),
		zap.Bool("seeded", !loaded))

	a.board = &board{
		repo:      repo,
		store:     store,
		committer: placement.NewCommitter(store, a.config.Placement(), log),
		validator: forms.New(),
		log:       log,
		colors:    colors,
		seeded:    !loaded,
	}
	return a.board, nil
}

// runBoard opens the interactive board and saves every change.
func (a *App) runBoard(ctx context.Context) error {
	b, err := a.open(ctx, logging.ModeTUI)
	if err != nil {
		return err
	}
	if b.seeded {
		// persist the seed so the first autosave has something to replace
		if err := b.save(ctx); err != nil {
			return err
		}
	}
	stop := b.repo.Watch(ctx, b.store)
	defer stop()

	return tui.Run(b.store, a.config,
		tui.WithLogger(b.log),
		tui.WithCustomColors(b.colors, b.repo),
	)
}

func (b *board) save(ctx context.Context) error {
	return b.repo.SaveState(ctx, b.store.Snapshot())
}

// pool resolves a pool by 1-based number, id or case-insensitive title.
func (b *board) pool(ref string) (schedule.Pool, error) {
	pools := b.store.Pools()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(pools) {
		return pools[n-1], nil
	}
	for _, p := range pools {
		if p.ID == ref || strings.EqualFold(p.Title, ref) {
			return p, nil
		}
	}
	return schedule.Pool{}, fmt.Errorf("%w: %q", ErrPoolNotFound, ref)
}

// course resolves a course by 1-based number, id or case-insensitive name.
func (b *board) course(ref string) (schedule.Course, error) {
	courses := b.store.Courses()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(courses) {
		return courses[n-1], nil
	}
	for _, c := range courses {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return schedule.Course{}, fmt.Errorf("%w: %q", ErrCourseNotFound, ref)
}

// session resolves a session by id or unique id prefix.
func (b *board) session(ref string) (schedule.Session, error) {
	var (
		found schedule.Session
		n     int
	)
	for _, se := range b.store.Sessions() {
		if se.ID == ref {
			return se, nil
		}
		if ref != "" && strings.HasPrefix(se.ID, ref) {
			found = se
			n++
		}
	}
	switch n {
	case 0:
		return schedule.Session{}, fmt.Errorf("%w: %q", ErrSessionNotFound, ref)
	case 1:
		return found, nil
	default:
		return schedule.Session{}, fmt.Errorf("%w: %q matches %d sessions", ErrAmbiguousID, ref, n)
	}
}

// drop runs item through the same commit path as a mouse drop on the
// interval (pool, day, start).
func (b *board) drop(item drag.Item, pool schedule.Pool, day schedule.Weekday, start int) placement.Outcome {
	return b.committer.Commit(drop.Result{
		DragID:           uuid.NewString(),
		Item:             item,
		Matched:          true,
		OriginalDuration: item.Duration(),
		Target: drop.Target{
			Kind:        drop.TargetInterval,
			PoolID:      pool.ID,
			Day:         day,
			StartMinute: start,
		},
	})
}

// shortID is the session id prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (b *board) saveColors(ctx context.Context, colors []string) error {
	if err := b.repo.SaveColors(ctx, colors); err != nil {
		return err
	}
	b.colors = colors
	return nil
}
