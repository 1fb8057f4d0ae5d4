// audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/smartlearning/logging"
)

const IndexName = "audit-logs"

type Repository interface {
	Record(ctx context.Context, log AuditLog) error
	Query(ctx context.Context, from, to time.Time, studentID string) ([]AuditLog, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a new repository with a given Elasticsearch client URL.
func NewElasticsearchRepository(esURL string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient, index: IndexName}, nil
}

// Record indexes one audit entry under its own id.
func (r *ElasticsearchRepository) Record(ctx context.Context, log AuditLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: log.ID,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

type searchQuery struct {
	Query struct {
		Bool struct {
			Must []map[string]any `json:"must"`
		} `json:"bool"`
	} `json:"query"`
	Sort []map[string]string `json:"sort"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source AuditLog `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Query returns the entries between from and to, oldest first, optionally
// limited to one student.
func (r *ElasticsearchRepository) Query(ctx context.Context, from, to time.Time, studentID string) ([]AuditLog, error) {
	var q searchQuery
	q.Query.Bool.Must = append(q.Query.Bool.Must, map[string]any{
		"range": map[string]any{
			"timestamp": map[string]any{
				"gte": from.Format(time.RFC3339),
				"lte": to.Format(time.RFC3339),
			},
		},
	})
	if studentID != "" {
		q.Query.Bool.Must = append(q.Query.Bool.Must, map[string]any{
			"match": map[string]any{"student_id": studentID},
		})
	}
	q.Sort = []map[string]string{{"timestamp": "asc"}}

	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, err
	}

	logs := make([]AuditLog, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		logs = append(logs, hit.Source)
	}
	return logs, nil
}

// LogRepository writes audit entries to the application log. It is used when
// no Elasticsearch cluster is configured and cannot be queried.
type LogRepository struct{}

func NewLogRepository() *LogRepository {
	return &LogRepository{}
}

func (LogRepository) Record(_ context.Context, log AuditLog) error {
	logger.Info("Audit",
		zap.String("id", log.ID),
		zap.String("action", log.Action),
		zap.String("studentID", log.StudentID),
		zap.String("dataKind", log.DataKind),
		zap.String("clientIP", log.ClientIP),
		zap.Bool("success", log.Success),
		zap.String("detail", log.Detail))
	return nil
}

func (LogRepository) Query(context.Context, time.Time, time.Time, string) ([]AuditLog, error) {
	return nil, ErrQueryUnsupported
}
