package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

var (
	// ErrWordPressURLRequired is returned when no site URL is configured.
	ErrWordPressURLRequired = errors.New("blog: wordpress url is required")
	// ErrUnexpectedPayload is returned when the posts endpoint does not
	// answer with a JSON array.
	ErrUnexpectedPayload = errors.New("blog: unexpected wordpress payload")
)

// Post is a WordPress post as returned by the REST API. HTML fields are
// left as rendered by WordPress.
type Post struct {
	ID            int64
	Slug          string
	TitleHTML     string
	ExcerptHTML   string
	ContentHTML   string
	Link          string
	FeaturedImage string
	PublishedAt   time.Time
	ModifiedAt    time.Time
}

// PostPage is one page of the posts collection.
type PostPage struct {
	Posts      []Post
	Page       int
	TotalPages int
	Total      int
}

// WordPressClient reads posts from the WordPress REST API.
type WordPressClient struct {
	base    string
	perPage int
	hc      *http.Client
	rl      *rate.Limiter
}

// NewWordPressClient returns a client for the site at baseURL. Requests are
// spaced by at least delay.
func NewWordPressClient(baseURL string, perPage int, delay time.Duration, hc *http.Client) (*WordPressClient, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, ErrWordPressURLRequired
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("blog: invalid wordpress url: %w", err)
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	if hc == nil {
		hc = &http.Client{Timeout: 20 * time.Second}
	}
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &WordPressClient{base: base, perPage: perPage, hc: hc, rl: rate.NewLimiter(limit, 1)}, nil
}

// Posts fetches one page of published posts, oldest first.
func (c *WordPressClient) Posts(ctx context.Context, page int) (PostPage, error) {
	if page < 1 {
		page = 1
	}
	if err := c.rl.Wait(ctx); err != nil {
		return PostPage{}, err
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(c.perPage))
	q.Set("orderby", "date")
	q.Set("order", "asc")
	q.Set("_embed", "wp:featuredmedia")
	endpoint := c.base + "/wp-json/wp/v2/posts?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PostPage{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return PostPage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return PostPage{}, fmt.Errorf("blog: wordpress posts page %d: status %d: %s", page, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return PostPage{}, err
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return PostPage{}, ErrUnexpectedPayload
	}

	out := PostPage{
		Page:       page,
		TotalPages: headerInt(resp.Header, "X-WP-TotalPages"),
		Total:      headerInt(resp.Header, "X-WP-Total"),
	}
	for _, item := range parsed.Array() {
		out.Posts = append(out.Posts, Post{
			ID:            item.Get("id").Int(),
			Slug:          item.Get("slug").String(),
			TitleHTML:     item.Get("title.rendered").String(),
			ExcerptHTML:   item.Get("excerpt.rendered").String(),
			ContentHTML:   item.Get("content.rendered").String(),
			Link:          item.Get("link").String(),
			FeaturedImage: item.Get(`_embedded.wp:featuredmedia.0.source_url`).String(),
			PublishedAt:   parseGMT(item.Get("date_gmt").String()),
			ModifiedAt:    parseGMT(item.Get("modified_gmt").String()),
		})
	}
	if out.TotalPages == 0 && len(out.Posts) > 0 {
		out.TotalPages = page
	}
	return out, nil
}

func headerInt(h http.Header, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(h.Get(key)))
	return n
}

// parseGMT reads WordPress *_gmt timestamps, which carry no zone suffix.
func parseGMT(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
