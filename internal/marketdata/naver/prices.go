package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FetchDailyCloses fetches daily close prices for one stock from the Naver
// Finance chart API.
// ⭐ SSOT: Naver Finance 시세 API 호출은 이 함수에서만
func (c *Client) FetchDailyCloses(ctx context.Context, stockCode string, from, to time.Time) ([]DailyClose, error) {
	fromStr := strings.ReplaceAll(from.Format("2006-01-02"), "-", "")
	toStr := strings.ReplaceAll(to.Format("2006-01-02"), "-", "")

	fullURL := fmt.Sprintf(
		"%s/siseJson.naver?symbol=%s&requestType=1&startTime=%s&endTime=%s&timeframe=day",
		c.chartBaseURL, stockCode, fromStr, toStr,
	)

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{"User-Agent": userAgent})
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	closes, err := parseChartResponse(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}
	for i := range closes {
		closes[i].StockCode = stockCode
	}

	c.logger.WithFields(map[string]interface{}{
		"stock_code": stockCode,
		"count":      len(closes),
	}).Debug("Fetched daily closes")
	return closes, nil
}

// parseChartResponse parses the siseJson response body. The payload is a
// quasi-JSON array with single quotes; the regex path covers responses the
// JSON pass rejects.
func parseChartResponse(body string) ([]DailyClose, error) {
	body = strings.TrimSpace(body)
	body = strings.ReplaceAll(body, "'", "\"")

	var rawData [][]interface{}
	if err := json.Unmarshal([]byte(body), &rawData); err == nil {
		return parseChartRows(rawData), nil
	}
	return parseChartRegex(body)
}

// parseChartRows extracts (date, close) from parsed rows. Row layout:
// [날짜, 시가, 고가, 저가, 종가, 거래량, 외국인소진율]
func parseChartRows(rawData [][]interface{}) []DailyClose {
	var closes []DailyClose
	for i, row := range rawData {
		if i == 0 || len(row) < 6 {
			continue // skip header
		}

		dateStr, ok := row[0].(string)
		if !ok {
			continue
		}
		tradeDate, err := parseChartDate(dateStr)
		if err != nil {
			continue
		}

		closes = append(closes, DailyClose{
			TradeDate: tradeDate,
			Close:     toFloat64(row[4]),
		})
	}
	return closes
}

// parseChartRegex parses using regex (fallback)
func parseChartRegex(body string) ([]DailyClose, error) {
	re := regexp.MustCompile(`\["(\d{8})",\s*(\d+),\s*(\d+),\s*(\d+),\s*(\d+),\s*(\d+)`)
	matches := re.FindAllStringSubmatch(body, -1)

	var closes []DailyClose
	for _, match := range matches {
		if len(match) < 6 {
			continue
		}
		tradeDate, err := parseChartDate(match[1])
		if err != nil {
			continue
		}
		closePrice, _ := strconv.ParseFloat(match[5], 64)
		closes = append(closes, DailyClose{
			TradeDate: tradeDate,
			Close:     closePrice,
		})
	}
	return closes, nil
}

func parseChartDate(s string) (time.Time, error) {
	s = strings.Trim(s, "\"")
	if len(s) == 8 {
		s = s[:4] + "-" + s[4:6] + "-" + s[6:8]
	}
	return time.Parse("2006-01-02", s)
}

// toFloat64 converts various JSON cell types to float64
func toFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		n, _ := strconv.ParseFloat(val, 64)
		return n
	default:
		return 0
	}
}
