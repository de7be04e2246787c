package cms

import (
	"context"
	"sync"

	"github.com/Raph13009/notion-blogs/internal/domain"
	"github.com/Raph13009/notion-blogs/internal/logger"
)

// bodyFetchWorkers bounds the concurrent block fetches during a refresh so
// a large database does not hammer the CMS API.
const bodyFetchWorkers = 4

// Source exposes the editorial database as a content source.
type Source struct {
	client     *Client
	databaseID string
	logger     logger.Logger
}

func NewSource(client *Client, databaseID string, log logger.Logger) *Source {
	return &Source{
		client:     client,
		databaseID: databaseID,
		logger:     log,
	}
}

func (s *Source) Name() string { return "cms" }

// FetchPosts loads every published record and its body. A record whose body
// fetch fails is kept with empty content rather than failing the refresh.
func (s *Source) FetchPosts(ctx context.Context) ([]domain.Post, error) {
	records, err := s.client.QueryDatabase(ctx, s.databaseID)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(records))
	for _, record := range records {
		if !IsPublished(record) {
			continue
		}
		posts = append(posts, domain.Post{PostSummary: MapRecord(record)})
	}

	s.fetchBodies(ctx, posts)
	return posts, nil
}

func (s *Source) fetchBodies(ctx context.Context, posts []domain.Post) {
	sem := make(chan struct{}, bodyFetchWorkers)
	var wg sync.WaitGroup

	for i := range posts {
		wg.Add(1)
		sem <- struct{}{}
		go func(post *domain.Post) {
			defer wg.Done()
			defer func() { <-sem }()

			blocks, err := s.client.BlockChildren(ctx, post.ID)
			if err != nil {
				s.logger.Warn("Post body fetch failed, keeping summary only",
					logger.String("post_id", post.ID),
					logger.Error(err),
				)
				return
			}
			post.Content = RenderBlocks(blocks)
		}(&posts[i])
	}

	wg.Wait()
}
