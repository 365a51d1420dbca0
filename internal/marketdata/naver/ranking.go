package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mobileAPIResponse is the m.stock.naver.com marketValue ranking payload.
type mobileAPIResponse struct {
	Stocks []mobileStockItem `json:"stocks"`
}

type mobileStockItem struct {
	ItemCode  string `json:"itemCode"`
	StockName string `json:"stockName"`
}

// FetchMarketCapRanking returns the top-N stock codes of a market ordered
// by market cap, from the Naver mobile ranking API with an HTML scrape of
// the 시가총액 listing page as fallback.
// ⭐ SSOT: 시가총액 순위 조회는 이 함수에서만
func (c *Client) FetchMarketCapRanking(ctx context.Context, market string, topN int) ([]string, error) {
	codes, err := c.fetchRankingFromMobileAPI(ctx, market, topN)
	if err == nil && len(codes) > 0 {
		return codes, nil
	}
	if err != nil {
		c.logger.WithError(err).Warn("Mobile ranking API failed, falling back to HTML scrape")
	}
	return c.scrapeMarketCapRanking(ctx, market, topN)
}

// fetchRankingFromMobileAPI pages through m.stock.naver.com until topN
// codes are collected.
func (c *Client) fetchRankingFromMobileAPI(ctx context.Context, market string, topN int) ([]string, error) {
	const pageSize = 100

	var codes []string
	for page := 1; len(codes) < topN; page++ {
		apiURL := fmt.Sprintf(
			"%s/api/stocks/marketValue/%s?page=%d&pageSize=%d",
			c.mobileBaseURL, market, page, pageSize,
		)

		resp, err := c.httpClient.GetWithHeaders(ctx, apiURL, map[string]string{"User-Agent": userAgent})
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		var apiResp mobileAPIResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&apiResp)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("decode response: %w", decodeErr)
		}
		if len(apiResp.Stocks) == 0 {
			break
		}

		for _, stock := range apiResp.Stocks {
			codes = append(codes, stock.ItemCode)
			if len(codes) == topN {
				break
			}
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"market": market,
		"count":  len(codes),
		"source": "m.stock.naver.com",
	}).Debug("Fetched market cap ranking")
	return codes, nil
}

// scrapeMarketCapRanking scrapes finance.naver.com/sise/sise_market_sum
// pages. 모바일 API가 죽었을 때의 예비 경로.
func (c *Client) scrapeMarketCapRanking(ctx context.Context, market string, topN int) ([]string, error) {
	sosok := "0" // KOSPI
	if market == "KOSDAQ" {
		sosok = "1"
	}

	var codes []string
	for page := 1; len(codes) < topN && page <= 30; page++ {
		pageURL := fmt.Sprintf("%s/sise/sise_market_sum.naver?sosok=%s&page=%d", c.baseURL, sosok, page)

		resp, err := c.httpClient.GetWithHeaders(ctx, pageURL, map[string]string{"User-Agent": userAgent})
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parse HTML: %w", err)
		}

		found := 0
		doc.Find("table.type_2 td a.tltle").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, ok := s.Attr("href")
			if !ok {
				return true
			}
			// href 형식: /item/main.naver?code=005930
			idx := strings.Index(href, "code=")
			if idx < 0 {
				return true
			}
			codes = append(codes, href[idx+len("code="):])
			found++
			return len(codes) < topN
		})
		if found == 0 {
			break
		}
	}

	if len(codes) == 0 {
		return nil, fmt.Errorf("no stock codes found in market sum pages")
	}

	c.logger.WithFields(map[string]interface{}{
		"market": market,
		"count":  len(codes),
		"source": "finance.naver.com",
	}).Debug("Scraped market cap ranking")
	return codes, nil
}
