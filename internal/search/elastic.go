package search

import (
	"context"
	"strings"

	"github.com/olivere/elastic/v7"

	"github.com/taskdash/apigateway/internal/domain"
)

const taskIndex = "tasks"

// taskDocument is the indexed projection of a task: the searchable text
// fields plus the owner used to scope queries.
type taskDocument struct {
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
}

// ElasticTaskIndex serves the free-text search filter from Elasticsearch.
// It is optional; when absent the service falls back to in-memory substring
// matching.
type ElasticTaskIndex struct {
	client *elastic.Client
}

func NewElasticTaskIndex(url string) (*ElasticTaskIndex, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, err
	}
	return &ElasticTaskIndex{client: client}, nil
}

func (i *ElasticTaskIndex) Index(ctx context.Context, task *domain.Task) error {
	doc := taskDocument{
		Owner:       task.Owner,
		Title:       task.Title,
		Description: task.Description,
		Assignee:    task.Assignee,
	}
	_, err := i.client.Index().
		Index(taskIndex).
		Id(task.ID).
		BodyJson(doc).
		Do(ctx)
	return err
}

func (i *ElasticTaskIndex) Remove(ctx context.Context, id string) error {
	_, err := i.client.Delete().
		Index(taskIndex).
		Id(id).
		Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}

// Search returns the ids of the owner's tasks whose title, description or
// assignee contains term. The owner term filter is unconditional, matching
// the store-side owner scoping.
func (i *ElasticTaskIndex) Search(ctx context.Context, owner, term string) ([]string, error) {
	pattern := "*" + strings.ToLower(term) + "*"
	q := elastic.NewBoolQuery().
		Filter(elastic.NewTermQuery("owner", owner)).
		MinimumNumberShouldMatch(1).
		Should(
			elastic.NewWildcardQuery("title", pattern),
			elastic.NewWildcardQuery("description", pattern),
			elastic.NewWildcardQuery("assignee", pattern),
		)

	res, err := i.client.Search().
		Index(taskIndex).
		Query(q).
		FetchSource(false).
		Size(1000).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.Id)
	}
	return ids, nil
}
