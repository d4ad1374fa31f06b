package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/zhoukk/slidegen/pkg/logger"
)

// Client 封装Gemini generateContent接口
type Client struct {
	baseUrl    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseUrl, apiKey, model string, timeout time.Duration) *Client {
	httpClient := &http.Client{Timeout: timeout}

	return &Client{
		baseUrl:    baseUrl,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// GenerateContent 发送单轮生成请求并返回模型输出的文本
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(&generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		logger.Error("序列化请求体失败", logger.F("err", err))
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseUrl, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		logger.Error("创建请求失败", logger.F("err", err))
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-goog-api-key", c.apiKey)
	} else {
		logger.Error("未提供API密钥")
		return "", fmt.Errorf("未提供API密钥")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("请求失败", logger.F("err", err))
		return "", err
	}
	defer resp.Body.Close()

	response, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("读取响应失败", logger.F("err", err))
		return "", err
	}

	j := gjson.ParseBytes(response)
	if resp.StatusCode != http.StatusOK {
		message := j.Get("error.message").String()
		logger.Error("生成接口返回错误",
			logger.F("status", resp.StatusCode),
			logger.F("message", message),
		)
		return "", fmt.Errorf("generate content failed: status %d: %s", resp.StatusCode, message)
	}

	text := j.Get("candidates.0.content.parts.0.text")
	if !text.Exists() {
		logger.Error("响应中没有生成文本")
		return "", fmt.Errorf("generate content failed: empty candidates")
	}

	return text.String(), nil
}
