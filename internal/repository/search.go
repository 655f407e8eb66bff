package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"corpsite-back/internal/model"
)

const searchIndexName = "site-content"

type SearchRepo struct {
	es *elasticsearch.Client
}

func NewSearchRepository(es *elasticsearch.Client) *SearchRepo {
	return &SearchRepo{es: es}
}

func (r *SearchRepo) EnsureIndex(ctx context.Context) (err error) {
	exists, err := r.es.Indices.Exists([]string{searchIndexName}, r.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index existence: %w", err)
	}

	defer func() {
		if cErr := exists.Body.Close(); cErr != nil {
			err = fmt.Errorf("%w, failed to close response body: %w", err, cErr)
		}
	}()

	if exists.StatusCode == http.StatusOK {
		return nil
	}

	if exists.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status on exists: %s", exists.Status())
	}

	mapping := `{
		"settings": {
			"analysis": {
				"analyzer": {
					"en_text": { "type": "english" }
				}
			}
		},
		"mappings": {
			"properties": {
				"kind":      { "type": "keyword" },
				"title":     { "type": "text", "analyzer": "en_text" },
				"body":      { "type": "text", "analyzer": "en_text" },
				"createdAt": { "type": "date" }
			}
		}
	}`

	res, err := r.es.Indices.Create(searchIndexName, r.es.Indices.Create.WithBody(strings.NewReader(mapping)), r.es.Indices.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	defer func() {
		if cErr := res.Body.Close(); cErr != nil {
			err = fmt.Errorf("%w, failed to close response body: %w", err, cErr)
		}
	}()

	if res.IsError() {
		return fmt.Errorf("index creation failed: %s", res.String())
	}

	_, err = r.es.Cluster.Health(
		r.es.Cluster.Health.WithContext(ctx),
		r.es.Cluster.Health.WithWaitForStatus("yellow"),
		r.es.Cluster.Health.WithTimeout(10*time.Second),
	)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	return nil
}

func (r *SearchRepo) Index(ctx context.Context, doc *model.SearchDocument) (err error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := r.es.Index(
		searchIndexName,
		bytes.NewReader(data),
		r.es.Index.WithDocumentID(doc.ID.String()),
		r.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}

	defer func() {
		if cErr := res.Body.Close(); cErr != nil {
			err = fmt.Errorf("%w, failed to close response body: %w", err, cErr)
		}
	}()

	if res.IsError() {
		return fmt.Errorf("failed to index document: %s", res.String())
	}

	return nil
}

func (r *SearchRepo) Delete(ctx context.Context, id string) (err error) {
	res, err := r.es.Delete(searchIndexName, id, r.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}

	defer func() {
		if cErr := res.Body.Close(); cErr != nil {
			err = fmt.Errorf("%w, failed to close response body: %w", err, cErr)
		}
	}()

	// Отсутствующий документ не ошибка: индекс лучшая, а не единственная копия данных.
	if res.StatusCode == http.StatusNotFound {
		return nil
	}

	if res.IsError() {
		return fmt.Errorf("failed to delete document: %s", res.String())
	}

	return nil
}

func (r *SearchRepo) Search(ctx context.Context, params model.SearchParams) (results []model.SearchResult, total int, err error) {
	type multiMatch struct {
		Query  string   `json:"query"`
		Fields []string `json:"fields"`
	}

	type bodyT struct {
		Query struct {
			MultiMatch multiMatch `json:"multi_match"`
		} `json:"query"`
		Highlight struct {
			PreTags  []string               `json:"pre_tags"`
			PostTags []string               `json:"post_tags"`
			Fields   map[string]interface{} `json:"fields"`
		} `json:"highlight"`
		TrackTotalHits bool `json:"track_total_hits"`
		From           int  `json:"from,omitempty"`
		Size           int  `json:"size,omitempty"`
	}

	body := bodyT{}
	body.Query.MultiMatch = multiMatch{
		Query:  params.Q,
		Fields: []string{"title^2", "body"},
	}
	body.Highlight.PreTags = []string{"<em>"}
	body.Highlight.PostTags = []string{"</em>"}
	body.Highlight.Fields = map[string]interface{}{
		"title": struct{}{},
		"body":  struct{}{},
	}

	body.TrackTotalHits = true

	if params.From > 0 {
		body.From = params.From
	}

	if params.Size > 0 {
		body.Size = params.Size
	}

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(&body); err != nil {
		return nil, 0, fmt.Errorf("encode search body: %w", err)
	}

	res, err := r.es.Search(
		r.es.Search.WithContext(ctx),
		r.es.Search.WithIndex(searchIndexName),
		r.es.Search.WithBody(buf),
		r.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}

	defer func() {
		if cErr := res.Body.Close(); cErr != nil {
			err = fmt.Errorf("%w, failed to close response body: %w", err, cErr)
		}
	}()

	if res.IsError() {
		return nil, 0, fmt.Errorf("search error: %s", res.String())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source    model.SearchDocument `json:"_source"`
				Score     float64              `json:"_score"`
				Highlight map[string][]string  `json:"highlight,omitempty"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]model.SearchResult, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		out = append(out, model.SearchResult{
			Document:  hit.Source,
			Score:     hit.Score,
			Highlight: hit.Highlight,
		})
	}

	return out, result.Hits.Total.Value, nil
}
