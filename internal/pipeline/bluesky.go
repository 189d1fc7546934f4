package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"
	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/structures"
)

const (
	blueskySearchPath = "/xrpc/app.bsky.feed.searchPosts"
	maxOrganismText   = 100
)

type blueskyPost struct {
	URI    string `json:"uri"`
	Author struct {
		Handle string `json:"handle"`
	} `json:"author"`
	Record struct {
		Text string `json:"text"`
	} `json:"record"`
	LikeCount   int `json:"likeCount"`
	RepostCount int `json:"repostCount"`
	ReplyCount  int `json:"replyCount"`
}

type blueskySearchResponse struct {
	Posts []blueskyPost `json:"posts"`
}

// BlueskySource turns recent Bluesky posts into organisms.
type BlueskySource struct {
	conf       *structures.Config
	client     *http.Client
	positioner *Positioner
	logger     providers.Logger
}

func NewBlueskySource(conf *structures.Config, positioner *Positioner, logger providers.Logger) *BlueskySource {
	return &BlueskySource{
		conf:       conf,
		client:     &http.Client{Timeout: conf.Pipeline.FetchTimeout},
		positioner: positioner,
		logger:     logger,
	}
}

func (b *BlueskySource) Name() string {
	return "bluesky"
}

// Collect fetches one batch of posts and maps them to organisms: position
// from text similarity, color from sentiment, size and speed from
// engagement.
func (b *BlueskySource) Collect(ctx context.Context) ([]*models.Organism, error) {
	posts, err := b.fetchPosts(ctx)
	if err != nil {
		return nil, err
	}
	b.logger.Debugf(providers.TypePipeline, "Fetched %d posts from %s", len(posts), b.Name())

	texts := make([]string, len(posts))
	for i, post := range posts {
		texts[i] = post.Record.Text
	}
	positions := b.positioner.Positions(texts)

	organisms := make([]*models.Organism, 0, len(posts))
	for i, post := range posts {
		engagement := post.LikeCount + post.RepostCount*2 + post.ReplyCount
		organisms = append(organisms, &models.Organism{
			ID:       fmt.Sprintf("%s_%d", b.Name(), i),
			Position: positions[i],
			Size:     organismSize(float64(engagement), b.conf.Pipeline.MinOrganismSize, b.conf.Pipeline.MaxOrganismSize),
			Color:    SentimentColor(post.Record.Text),
			Velocity: organismVelocity(float64(engagement)),
			Text:     truncateText(post.Record.Text, maxOrganismText),
			Metadata: &models.OrganismMeta{
				Author:     post.Author.Handle,
				Engagement: engagement,
				Likes:      post.LikeCount,
				Reposts:    post.RepostCount,
				Replies:    post.ReplyCount,
				URI:        post.URI,
				Source:     b.Name(),
			},
		})
	}
	return organisms, nil
}

func (b *BlueskySource) fetchPosts(ctx context.Context) ([]blueskyPost, error) {
	endpoint, err := url.Parse(b.conf.Pipeline.BlueskyAPIBase + blueskySearchPath)
	if err != nil {
		return nil, fmt.Errorf("invalid bluesky endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("q", b.conf.Pipeline.SearchQuery)
	query.Set("limit", strconv.Itoa(b.conf.Pipeline.FetchLimit))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bluesky posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bluesky search returned status %d", resp.StatusCode)
	}

	var parsed blueskySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode bluesky response: %w", err)
	}
	return parsed.Posts, nil
}
