package services

//go:generate mockgen -source=posts.go -destination=mock_posts.go -package=services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

// ErrInvalidPostBody is returned for empty bodies and bodies longer than models.MaxPostLength.
var ErrInvalidPostBody = errors.New("post must be between 1 and 140 characters")

// PostReader lists posts newest first.
type PostReader interface {
	ListFeed(ctx context.Context, userID int64, limit, offset int) ([]models.PostDB, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.PostDB, error)
	ListByAuthor(ctx context.Context, userID int64, limit, offset int) ([]models.PostDB, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.PostDB, error)
}

// PostWriter stores posts.
type PostWriter interface {
	Create(ctx context.Context, userID int64, body string) (*models.PostDB, error)
}

// SearchIndex is a full-text index over posts.
type SearchIndex interface {
	Index(ctx context.Context, id int64, fields map[string]any) error
	Remove(ctx context.Context, id int64) error
	Query(ctx context.Context, text string, page, perPage int) ([]int64, int64, error)
}

// CommitHook runs fn once the request transaction carried by ctx commits.
type CommitHook func(ctx context.Context, fn func(ctx context.Context))

// PostService creates posts and composes the feed, explore, author and search timelines.
type PostService struct {
	reader         PostReader
	writer         PostWriter
	index          SearchIndex
	onCommit       CommitHook
	defaultPerPage int
}

// NewPostService creates a PostService. When onCommit is nil, indexing runs
// right after the insert.
func NewPostService(reader PostReader, writer PostWriter, index SearchIndex, onCommit CommitHook, defaultPerPage int) *PostService {
	return &PostService{
		reader:         reader,
		writer:         writer,
		index:          index,
		onCommit:       onCommit,
		defaultPerPage: defaultPerPage,
	}
}

// CreatePost stores a post written by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID int64, body string) (*models.PostDB, error) {
	body = strings.TrimSpace(body)
	if n := utf8.RuneCountInString(body); n == 0 || n > models.MaxPostLength {
		return nil, ErrInvalidPostBody
	}

	post, err := s.writer.Create(ctx, authorID, body)
	if err != nil {
		logger.Log.Errorw("failed to create post", "author_id", authorID, "err", err)
		return nil, err
	}

	indexPost := func(ctx context.Context) {
		fields := map[string]any{"body": post.Body}
		if err := s.index.Index(ctx, post.ID, fields); err != nil {
			logger.Log.Warnw("failed to index post", "post_id", post.ID, "err", err)
		}
	}
	if s.onCommit != nil {
		s.onCommit(ctx, indexPost)
	} else {
		indexPost(ctx)
	}

	return post, nil
}

// FeedFor returns posts by userID and by everyone userID follows.
func (s *PostService) FeedFor(ctx context.Context, userID int64, page, perPage int) (models.Page[models.PostDB], error) {
	p := models.NewPagination(page, perPage, s.defaultPerPage)
	rows, err := s.reader.ListFeed(ctx, userID, p.PerPage+1, p.Offset())
	if err != nil {
		logger.Log.Errorw("failed to list feed", "user_id", userID, "err", err)
		return models.Page[models.PostDB]{}, err
	}
	return models.NewPage(rows, p), nil
}

// Explore returns posts by every user.
func (s *PostService) Explore(ctx context.Context, page, perPage int) (models.Page[models.PostDB], error) {
	p := models.NewPagination(page, perPage, s.defaultPerPage)
	rows, err := s.reader.ListAll(ctx, p.PerPage+1, p.Offset())
	if err != nil {
		logger.Log.Errorw("failed to list posts", "err", err)
		return models.Page[models.PostDB]{}, err
	}
	return models.NewPage(rows, p), nil
}

// PostsBy returns posts written by authorID.
func (s *PostService) PostsBy(ctx context.Context, authorID int64, page, perPage int) (models.Page[models.PostDB], error) {
	p := models.NewPagination(page, perPage, s.defaultPerPage)
	rows, err := s.reader.ListByAuthor(ctx, authorID, p.PerPage+1, p.Offset())
	if err != nil {
		logger.Log.Errorw("failed to list author posts", "author_id", authorID, "err", err)
		return models.Page[models.PostDB]{}, err
	}
	return models.NewPage(rows, p), nil
}

// Search returns posts matching text in relevance order. A failing or
// unconfigured index gives an empty page.
func (s *PostService) Search(ctx context.Context, text string, page, perPage int) (models.Page[models.PostDB], error) {
	p := models.NewPagination(page, perPage, s.defaultPerPage)
	empty := models.NewPage[models.PostDB](nil, p)

	if strings.TrimSpace(text) == "" {
		return empty, nil
	}

	ids, total, err := s.index.Query(ctx, text, p.Page, p.PerPage)
	if err != nil {
		logger.Log.Warnw("search failed", "query", text, "err", err)
		return empty, nil
	}
	if len(ids) == 0 {
		return empty, nil
	}

	posts, err := s.reader.GetByIDs(ctx, ids)
	if err != nil {
		logger.Log.Errorw("failed to load search hits", "err", err)
		return models.Page[models.PostDB]{}, err
	}

	byID := make(map[int64]models.PostDB, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}
	ranked := make([]models.PostDB, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			ranked = append(ranked, post)
		}
	}

	return models.Page[models.PostDB]{
		Items:   ranked,
		Page:    p.Page,
		PerPage: p.PerPage,
		HasNext: total > int64(p.Page*p.PerPage),
		HasPrev: p.Page > 1,
	}, nil
}
