package client

import (
	"EduForum/config"
	"EduForum/pkg/log"
	"EduForum/pkg/metrics"
	"EduForum/pkg/response"
	"EduForum/types"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxBodySize = 8 << 20

// HttpClient 论坛 REST 后端客户端，所有响应统一为 {success, message, data}
type HttpClient struct {
	baseURL string
	session *types.Session
	http    *http.Client
}

func NewHttpClient(conf *config.Api, session *types.Session) *HttpClient {
	return &HttpClient{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		session: session,
		http:    &http.Client{Timeout: conf.Timeout()},
	}
}

func (c *HttpClient) Get(ctx context.Context, path string, query url.Values, fallback string) (gjson.Result, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil, true, fallback)
}

func (c *HttpClient) Post(ctx context.Context, path string, body any, fallback string) (gjson.Result, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body, true, fallback)
}

func (c *HttpClient) Patch(ctx context.Context, path string, body any, fallback string) (gjson.Result, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body, true, fallback)
}

// Exec 不关心 data 的写操作
func (c *HttpClient) Exec(ctx context.Context, method string, path string, body any, fallback string) error {
	_, err := c.Do(ctx, method, path, nil, body, false, fallback)
	return err
}

func (c *HttpClient) Do(ctx context.Context, method string, path string, query url.Values, body any, wantData bool, fallback string) (gjson.Result, error) {
	start := time.Now()
	route := routeOf(path)
	defer func() {
		metrics.ApiRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}()

	data, err := c.do(ctx, method, path, query, body, wantData, fallback)
	if err != nil {
		metrics.ApiRequestsTotal.WithLabelValues(method, route, "error").Inc()
		log.L.Debug("forum api call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return gjson.Result{}, err
	}
	metrics.ApiRequestsTotal.WithLabelValues(method, route, "ok").Inc()
	return data, nil
}

func (c *HttpClient) do(ctx context.Context, method string, path string, query url.Values, body any, wantData bool, fallback string) (gjson.Result, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, response.Wrap(err, 0, fallback)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return gjson.Result{}, response.Wrap(err, 0, fallback)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, response.Wrap(err, 0, fallback)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return gjson.Result{}, response.Wrap(err, resp.StatusCode, fallback)
	}

	return response.Decode(resp.StatusCode, b, wantData, fallback)
}

// routeOf 把路径里的ID段替换掉，避免指标标签爆炸
func routeOf(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if looksLikeID(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func looksLikeID(s string) bool {
	if len(s) < 8 {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits > 0
}
