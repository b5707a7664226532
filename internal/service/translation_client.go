package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"intellistudy_backend/internal/config"
	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/util"
	"intellistudy_backend/pkg/tracing"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Translator 外部机器翻译服务
type Translator interface {
	Translate(ctx context.Context, text string, source, target model.LanguageCode) (string, error)
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText interface{} `json:"translatedText"`
	} `json:"responseData"`
	// 配额用尽等错误也是 HTTP 200，真实状态在这里，可能是数字或字符串
	ResponseStatus interface{} `json:"responseStatus"`
}

func (r myMemoryResponse) statusOK() bool {
	switch v := r.ResponseStatus.(type) {
	case nil:
		return true
	case float64:
		return v == http.StatusOK
	case string:
		code, err := strconv.Atoi(strings.TrimSpace(v))
		return err == nil && code == http.StatusOK
	default:
		return false
	}
}

// MyMemoryClient 调用 MyMemory 公共翻译接口
type MyMemoryClient struct {
	baseURL string
	email   string
	timeout atomic.Int64
	http    *resty.Client
}

func NewMyMemoryClient(cfg config.TranslationConfig) *MyMemoryClient {
	c := &MyMemoryClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		email:   cfg.Email,
		http:    resty.New(),
	}
	c.SetTimeout(cfg.Timeout())
	return c
}

func (c *MyMemoryClient) SetTimeout(d time.Duration) {
	c.timeout.Store(int64(d))
}

func (c *MyMemoryClient) Translate(ctx context.Context, text string, source, target model.LanguageCode) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "translation.mymemory")
	defer span.End()
	span.SetAttributes(attribute.String("translation.target", target.String()))

	if d := time.Duration(c.timeout.Load()); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	req := c.http.R().SetContext(ctx).
		SetQueryParam("q", text).
		SetQueryParam("langpair", source.String()+"|"+target.String())
	if c.email != "" {
		req.SetQueryParam("de", c.email)
	}

	resp, err := req.Get(c.baseURL + "/get")
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("mymemory request: %w", err)
	}
	if resp.IsError() {
		span.SetStatus(codes.Error, resp.Status())
		return "", fmt.Errorf("mymemory %s: %w", resp.Status(), util.ErrMalformedTranslation)
	}

	var body myMemoryResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrMalformedTranslation, err)
	}
	if !body.statusOK() {
		span.SetStatus(codes.Error, fmt.Sprint(body.ResponseStatus))
		return "", fmt.Errorf("mymemory status %v: %w", body.ResponseStatus, util.ErrMalformedTranslation)
	}
	translated, ok := body.ResponseData.TranslatedText.(string)
	if !ok || translated == "" {
		return "", util.ErrMalformedTranslation
	}
	return translated, nil
}
