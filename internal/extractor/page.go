package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxPageBytes 单个页面最多读取的字节数，超出部分直接丢弃
const DefaultMaxPageBytes = 2 << 20

// PageFetcher 抓取页面并提取可见文本，作为提示词的上下文
type PageFetcher struct {
	client       *http.Client
	maxBodyBytes int64
}

func NewPageFetcher() *PageFetcher {
	return &PageFetcher{
		client:       &http.Client{Timeout: 30 * time.Second},
		maxBodyBytes: DefaultMaxPageBytes,
	}
}

func isTextContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	contentType = strings.ToLower(contentType)
	return strings.HasPrefix(contentType, "text/") || strings.Contains(contentType, "html") || strings.Contains(contentType, "xml")
}

// Fetch performs an HTTP GET and returns the parsed HTML document.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; llm-catalog/1.0)")
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !isTextContent(ct) {
		return nil, fmt.Errorf("fetching %s: unsupported content type %q", url, ct)
	}

	// 截断的 HTML 仍可解析，只保留前 maxBodyBytes 字节
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", url, err)
	}
	return doc, nil
}

// Text 返回页面正文（去掉 script/style 等），按空白折叠，最多 maxChars 个字符
func (f *PageFetcher) Text(ctx context.Context, url string, maxChars int) (string, error) {
	doc, err := f.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return VisibleText(doc, maxChars), nil
}

func VisibleText(doc *goquery.Document, maxChars int) string {
	var parts []string
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		parts = append(parts, title)
	}
	doc.Find("script, style, noscript, svg, iframe, head").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	parts = append(parts, strings.Fields(body.Text())...)

	text := strings.Join(parts, " ")
	if maxChars > 0 {
		runes := []rune(text)
		if len(runes) > maxChars {
			text = string(runes[:maxChars])
		}
	}
	return text
}
