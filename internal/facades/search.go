package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

// PostsIndex is the Elasticsearch index holding searchable posts.
const PostsIndex = "posts"

// ElasticsearchFacade implements the post search index on Elasticsearch.
type ElasticsearchFacade struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticsearchFacade creates a facade for the given cluster address.
func NewElasticsearchFacade(url, index string) (*ElasticsearchFacade, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &ElasticsearchFacade{client: client, index: index}, nil
}

// Index stores fields under id, replacing any previous document.
func (f *ElasticsearchFacade) Index(ctx context.Context, id int64, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	res, err := f.client.Index(f.index, bytes.NewReader(body),
		f.client.Index.WithContext(ctx),
		f.client.Index.WithDocumentID(strconv.FormatInt(id, 10)),
	)
	if err != nil {
		logger.Log.Errorw("failed to index document", "index", f.index, "id", id, "error", err)
		return err
	}
	defer res.Body.Close()

	return responseError(res)
}

// Remove deletes the document id. A missing document is not an error.
func (f *ElasticsearchFacade) Remove(ctx context.Context, id int64) error {
	res, err := f.client.Delete(f.index, strconv.FormatInt(id, 10),
		f.client.Delete.WithContext(ctx),
	)
	if err != nil {
		logger.Log.Errorw("failed to remove document", "index", f.index, "id", id, "error", err)
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseError(res)
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// Query matches text against every field and returns one page of document
// ids in relevance order together with the total number of hits.
func (f *ElasticsearchFacade) Query(ctx context.Context, text string, page, perPage int) ([]int64, int64, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  text,
				"fields": []string{"*"},
			},
		},
		"from": models.Pagination{Page: page, PerPage: perPage}.Offset(),
		"size": perPage,
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, 0, err
	}

	res, err := f.client.Search(
		f.client.Search.WithContext(ctx),
		f.client.Search.WithIndex(f.index),
		f.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		logger.Log.Errorw("search request failed", "index", f.index, "error", err)
		return nil, 0, err
	}
	defer res.Body.Close()

	if err := responseError(res); err != nil {
		return nil, 0, err
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, parsed.Hits.Total.Value, nil
}

func responseError(res *esapi.Response) error {
	if !res.IsError() {
		return nil
	}
	logger.Log.Errorw("elasticsearch error response", "status", res.Status())
	return fmt.Errorf("elasticsearch: %s", res.Status())
}

// NoopSearchIndex stands in when no cluster is configured: nothing is
// indexed and every query has no results.
type NoopSearchIndex struct{}

func (NoopSearchIndex) Index(ctx context.Context, id int64, fields map[string]any) error {
	return nil
}

func (NoopSearchIndex) Remove(ctx context.Context, id int64) error {
	return nil
}

func (NoopSearchIndex) Query(ctx context.Context, text string, page, perPage int) ([]int64, int64, error) {
	return nil, 0, nil
}
