package es

import (
	"context"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/goccy/go-json"
)

// MaxSearchDepth 深分页保护
const MaxSearchDepth = 400

type PostRepo interface {
	IndexPost(ctx context.Context, post *PostES) error
	DeletePost(ctx context.Context, id string) error
	SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, error)
	GetLatestPosts(ctx context.Context, from, size int) ([]*PostES, error)
}

type postRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &postRepoImpl{client: client}
}

// IndexPost 覆盖写入，文章审核通过或公开内容变更时调用
func (s *postRepoImpl) IndexPost(ctx context.Context, post *PostES) error {
	_, err := s.client.Index(PostIndex).
		Id(post.ID).
		Document(post).
		Do(ctx)
	return err
}

// DeletePost 文章下架/私密/软删除时移出索引，404 视为成功
func (s *postRepoImpl) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.Delete(PostIndex, id).Do(ctx)
	if err != nil {
		if esErr, ok := err.(*types.ElasticsearchError); ok && esErr.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}

// SearchPosts 关键词检索：标题权重最高，其次摘要与标签
func (s *postRepoImpl) SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	query := &types.Query{
		MultiMatch: &types.MultiMatchQuery{
			Query:  keyword,
			Fields: []string{"title^3", "excerpt^2", "tags"},
		},
	}

	resp, err := s.client.Search().
		Index(PostIndex).
		Query(query).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	return decodeHits(resp.Hits.Hits)
}

// GetLatestPosts 最新文章列表，按创建时间倒序
func (s *postRepoImpl) GetLatestPosts(ctx context.Context, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	resp, err := s.client.Search().
		Index(PostIndex).
		Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
			"created_at": {Order: &sortorder.Desc},
		}}).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	return decodeHits(resp.Hits.Hits)
}

func decodeHits(hits []types.Hit) ([]*PostES, error) {
	posts := make([]*PostES, 0, len(hits))
	for _, hit := range hits {
		var post PostES
		if err := json.Unmarshal(hit.Source_, &post); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, nil
}
