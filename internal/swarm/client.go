package swarm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pders01/sietch/internal/config"
	"github.com/pders01/sietch/internal/debuglog"
)

const (
	userAgent = "sietch/1.0 (swarm client; github.com/pders01/sietch)"
	timeout   = 30 * time.Second

	// maxErrorBody bounds how much of a rejection body is read for a message.
	maxErrorBody = 64 << 10
)

// Client talks to the sietch REST endpoints of the swarm service.
type Client struct {
	baseURL   string
	userAgent string
	pageSize  int
	client    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	ua := userAgent
	t := timeout
	pageSize := config.DefaultPageSize
	baseURL := config.DefaultBaseURL
	if cfg != nil {
		if cfg.API.UserAgent != "" {
			ua = cfg.API.UserAgent
		}
		if cfg.API.Timeout > 0 {
			t = cfg.API.Timeout
		}
		if cfg.API.PageSize > 0 {
			pageSize = cfg.API.PageSize
		}
		if cfg.API.BaseURL != "" {
			baseURL = cfg.API.BaseURL
		}
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: ua,
		pageSize:  pageSize,
		client: &http.Client{
			Timeout: t,
		},
	}
}

// PageSize is the limit sent with every list query.
func (c *Client) PageSize() int { return c.pageSize }

// ListPage fetches one page of harvesters. Records are returned in
// service order; repeated ids keep their first occurrence.
func (c *Client) ListPage(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page %d", page)
	}
	if limit < 1 {
		limit = c.pageSize
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var body listResponse
	if err := c.do(ctx, http.MethodGet, "/sietch/swarm?"+q.Encode(), nil, &body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return nil, fmt.Errorf("listing page %d: %w: missing data", page, ErrMalformed)
	}

	seen := make(map[string]struct{}, len(*body.Data))
	items := make([]Record, 0, len(*body.Data))
	for _, r := range *body.Data {
		if r.ID == "" {
			return nil, fmt.Errorf("listing page %d: %w: record without id", page, ErrMalformed)
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		items = append(items, r)
	}

	totalPages := body.TotalPages
	if totalPages == 0 && body.TotalWorms > 0 {
		totalPages = (body.TotalWorms + limit - 1) / limit
	}

	return &Page{
		Number:     page,
		Items:      items,
		TotalPages: totalPages,
		TotalCount: body.TotalWorms,
	}, nil
}

// Breed creates a harvester.
func (c *Client) Breed(ctx context.Context, req BreedRequest) error {
	return c.do(ctx, http.MethodPost, "/sietch/breed", req, nil)
}

// Rename replaces the name of the harvester with the given id.
func (c *Client) Rename(ctx context.Context, id, newName string) error {
	return c.do(ctx, http.MethodPut, "/sietch/rename/"+url.PathEscape(id), renameRequest{NewName: newName}, nil)
}

// Recycle deletes the harvester with the given id.
func (c *Client) Recycle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sietch/recycle/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := debuglog.WithFields(debuglog.Fields{"method": method, "path": path})
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warnf("remote call failed after %s: %v", time.Since(start), err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	debuglog.WithFields(debuglog.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debugf("remote call took %s", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rerr := readRemoteError(resp)
		log.Warnf("remote rejected: %v", rerr)
		return rerr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrMalformed, err)
	}
	return nil
}

func readRemoteError(resp *http.Response) error {
	rerr := &RemoteError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return rerr
	}

	var body errorResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return rerr
	}

	if body.Message != "" {
		rerr.Message = body.Message
	} else {
		rerr.Message = body.Error
	}
	return rerr
}
