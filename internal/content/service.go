package content

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Raph13009/notion-blogs/internal/cache"
	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/logger"
	"github.com/Raph13009/notion-blogs/internal/telemetry"
)

const (
	snapshotCacheKey = "snapshot"

	// Cached snapshots outlive the freshness window so a restarted replica
	// can serve stale content while the first refresh runs.
	cacheRetention = 24 * time.Hour

	backgroundRefreshTimeout = 30 * time.Second
)

// Source provides the published posts from the upstream CMS.
type Source interface {
	Name() string
	FetchPosts(ctx context.Context) ([]domain.Post, error)
}

// Snapshot is an immutable view of all published posts, normalized and
// sorted newest first. Callers must not mutate it.
type Snapshot struct {
	Posts     []domain.Post `json:"posts"`
	FetchedAt time.Time     `json:"fetchedAt"`
	Fallback  bool          `json:"fallback"`
}

// Service owns the content snapshot. Reads are served from memory; a
// snapshot past its freshness window is still served while a single
// background refresh rebuilds it.
type Service struct {
	source   Source
	store    cache.Store
	fallback []domain.Post
	ttl      time.Duration
	logger   logger.Logger
	metrics  *telemetry.Provider
	now      func() time.Time

	mu         sync.RWMutex
	snap       *Snapshot
	refreshing atomic.Bool
}

func NewService(source Source, store cache.Store, ttl time.Duration, log logger.Logger, metrics *telemetry.Provider) *Service {
	return &Service{
		source:   source,
		store:    store,
		fallback: LocalPosts(),
		ttl:      ttl,
		logger:   log,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Refresh rebuilds the snapshot from the source and publishes it. Concurrent
// calls race benignly; the last completed fetch wins.
func (s *Service) Refresh(ctx context.Context) error {
	start := s.now()

	posts, err := s.source.FetchPosts(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordRefresh(false, s.now().Sub(start), 0)
		}
		s.logger.Error("Content refresh failed",
			logger.String("source", s.source.Name()),
			logger.Error(err),
		)
		return fmt.Errorf("fetch posts from %s: %w", s.source.Name(), err)
	}

	snap := s.buildSnapshot(posts)
	s.publish(ctx, snap)

	if s.metrics != nil {
		s.metrics.RecordRefresh(true, s.now().Sub(start), len(snap.Posts))
	}
	s.logger.Info("Content snapshot refreshed",
		logger.String("source", s.source.Name()),
		logger.Int("posts", len(snap.Posts)),
		logger.Duration("took", s.now().Sub(start)),
	)
	return nil
}

// Invalidate drops the current snapshot so the next read refetches. Used by
// the publish webhook when the CMS content changes.
func (s *Service) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, snapshotCacheKey); err != nil {
		return fmt.Errorf("invalidate snapshot cache: %w", err)
	}

	s.logger.Info("Content snapshot invalidated")
	return nil
}

// Current returns the active snapshot, refreshing as needed. It always
// returns a usable snapshot; when the source is unreachable and nothing is
// cached it falls back to the bundled posts.
func (s *Service) Current(ctx context.Context) *Snapshot {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap == nil {
		snap = s.loadFromCache(ctx)
	}

	if snap == nil {
		if err := s.Refresh(ctx); err == nil {
			s.mu.RLock()
			snap = s.snap
			s.mu.RUnlock()
		}
	}

	if snap == nil {
		snap = s.fallbackSnapshot(ctx)
	}

	if s.isStale(snap) {
		s.refreshInBackground()
	}
	if s.metrics != nil && !snap.FetchedAt.IsZero() {
		s.metrics.Metrics.SnapshotAge.Set(s.now().Sub(snap.FetchedAt).Seconds())
	}
	return snap
}

// Summaries returns the listing view of every published post, newest first.
func (s *Service) Summaries(ctx context.Context) []domain.PostSummary {
	snap := s.Current(ctx)
	summaries := make([]domain.PostSummary, 0, len(snap.Posts))
	for _, post := range snap.Posts {
		summaries = append(summaries, post.PostSummary)
	}
	return summaries
}

// PostBySlug returns the full post for slug.
func (s *Service) PostBySlug(ctx context.Context, slug string) (domain.Post, bool) {
	snap := s.Current(ctx)
	for _, post := range snap.Posts {
		if post.Slug == slug {
			return post, true
		}
	}
	return domain.Post{}, false
}

// Related returns up to limit posts sharing tags with the post at slug.
func (s *Service) Related(ctx context.Context, slug string, limit int) ([]domain.PostSummary, bool) {
	post, ok := s.PostBySlug(ctx, slug)
	if !ok {
		return nil, false
	}
	return RelatedPosts(s.Summaries(ctx), post.ID, post.Tags, limit), true
}

func (s *Service) isStale(snap *Snapshot) bool {
	if snap.FetchedAt.IsZero() {
		return true
	}
	return s.now().Sub(snap.FetchedAt) > s.ttl
}

// refreshInBackground starts at most one refresh at a time.
func (s *Service) refreshInBackground() {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer s.refreshing.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
		defer cancel()

		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("Background refresh failed, keeping stale snapshot",
				logger.Error(err),
			)
		}
	}()
}

func (s *Service) loadFromCache(ctx context.Context) *Snapshot {
	var snap Snapshot
	found, err := s.store.GetJSON(ctx, snapshotCacheKey, &snap)
	if err != nil {
		s.logger.Warn("Snapshot cache read failed", logger.Error(err))
		return nil
	}
	if !found {
		if s.metrics != nil {
			s.metrics.Metrics.CacheMisses.Inc()
		}
		return nil
	}
	if s.metrics != nil {
		s.metrics.Metrics.CacheHits.Inc()
	}

	s.mu.Lock()
	if s.snap == nil {
		s.snap = &snap
	}
	adopted := s.snap
	s.mu.Unlock()
	return adopted
}

func (s *Service) publish(ctx context.Context, snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if err := s.store.SetJSON(ctx, snapshotCacheKey, snap, cacheRetention); err != nil {
		s.logger.Warn("Snapshot cache write failed", logger.Error(err))
	}
}

// fallbackSnapshot serves the bundled posts when the CMS is unreachable and
// nothing is cached. FetchedAt stays zero so every request keeps retrying
// the source in the background.
func (s *Service) fallbackSnapshot(_ context.Context) *Snapshot {
	if s.metrics != nil {
		s.metrics.Metrics.FallbackServed.Inc()
	}
	s.logger.Warn("Serving bundled fallback posts",
		logger.String("source", s.source.Name()),
	)

	snap := s.buildSnapshot(append([]domain.Post(nil), s.fallback...))
	snap.FetchedAt = time.Time{}
	snap.Fallback = true

	s.mu.Lock()
	if s.snap == nil {
		s.snap = snap
	}
	adopted := s.snap
	s.mu.Unlock()
	return adopted
}

// buildSnapshot normalizes raw CMS posts: newest first, unique slugs, word
// counts filled in.
func (s *Service) buildSnapshot(posts []domain.Post) *Snapshot {
	sort.SliceStable(posts, func(i, j int) bool {
		return parseDate(posts[i].Date).After(parseDate(posts[j].Date))
	})

	taken := make(map[string]bool, len(posts))
	for i := range posts {
		posts[i].Slug = resolveSlug(baseSlug(posts[i].Slug, posts[i].Title, posts[i].ID), posts[i].ID, taken)

		if posts[i].WordCount == 0 && posts[i].Content != "" {
			posts[i].WordCount = WordCount(posts[i].Content)
		}
	}

	return &Snapshot{Posts: posts, FetchedAt: s.now()}
}

func parseDate(value string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
