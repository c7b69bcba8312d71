package judge

import (
	"bytes"
	"codepad-server/internal/conf"
	"codepad-server/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyToken       = errors.New("execution service returned an empty token")
	ErrResponseTooLarge = errors.New("response from execution service is too large")
)

// 单个响应体的读取上限
var maxResponseSize int64 = 4 << 20

// Client 远程评测服务（Judge0）客户端
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient 替换默认的 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(cfg conf.JudgeConf, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	globalClient *Client
	onceClient   sync.Once
)

// Init 使用配置初始化全局客户端
func Init(cfg conf.JudgeConf) {
	onceClient.Do(func() {
		globalClient = NewClient(cfg)
	})
}

func GetClientInstance() *Client {
	Init(conf.Conf.Judge)
	return globalClient
}

// Submit 提交源代码，返回提交 token
func (c *Client) Submit(ctx context.Context, req model.SubmissionRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	u := c.baseURL + "/submissions?base64_encoded=false&wait=false"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var tok model.SubmissionToken
	if err := c.do(httpReq, &tok); err != nil {
		return "", err
	}
	if tok.Token == "" {
		return "", ErrEmptyToken
	}
	logrus.WithFields(logrus.Fields{
		"language_id": req.LanguageID,
		"token":       tok.Token,
	}).Debug("submission created")
	return tok.Token, nil
}

// Get 查询 token 对应的提交状态
func (c *Client) Get(ctx context.Context, token string) (model.SubmissionResult, error) {
	var res model.SubmissionResult
	u := c.baseURL + "/submissions/" + url.PathEscape(token) + "?base64_encoded=false"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return res, err
	}
	if err := c.do(httpReq, &res); err != nil {
		return res, err
	}
	return res, nil
}

// Statuses 返回评测服务支持的状态列表
func (c *Client) Statuses(ctx context.Context) ([]model.Status, error) {
	var res []model.Status
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/statuses", nil)
	if err != nil {
		return nil, err
	}
	if err := c.do(httpReq, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Languages 返回评测服务支持的语言列表
func (c *Client) Languages(ctx context.Context) ([]model.JudgeLanguage, error) {
	var res []model.JudgeLanguage
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/languages", nil)
	if err != nil {
		return nil, err
	}
	if err := c.do(httpReq, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return err
	}
	if int64(len(data)) > maxResponseSize {
		return ErrResponseTooLarge
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed response from execution service: %w", err)
	}
	return nil
}

// StatusError 评测服务返回非 2xx 状态码
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("Request failed with status code %d", e.Code)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func newStatusError(code int, body []byte) *StatusError {
	var je model.JudgeError
	_ = json.Unmarshal(body, &je)
	detail := je.Error
	if detail == "" {
		detail = je.Message
	}
	return &StatusError{Code: code, Detail: detail}
}
