package mealdb

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client TheMealDB API 客戶端
type Client struct {
	client *resty.Client
}

// NewClient 創建 TheMealDB 客戶端
func NewClient(cfg config.MealDBConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json")

	// 未設定時不覆寫預設逾時
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{client: client}
}

// SearchByName 以菜名搜尋，回傳第一筆結果；查無結果時回傳 nil, nil
func (c *Client) SearchByName(ctx context.Context, dish string) (*Meal, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("s", dish).
		Get("/search.php")
	if err != nil {
		common.LogRecipeLookup(dish, false, time.Since(start), err)
		return nil, common.ErrRecipeServiceError.Wrap(fmt.Errorf("failed to send request to TheMealDB: %w", err))
	}

	if resp.StatusCode() != http.StatusOK {
		err := fmt.Errorf("TheMealDB returned status %d", resp.StatusCode())
		common.LogRecipeLookup(dish, false, time.Since(start), err)
		return nil, common.ErrRecipeServiceError.Wrap(err)
	}

	var result searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		common.LogDebug("TheMealDB 回應內容",
			zap.Int("response_length", len(resp.Body())),
		)
		common.LogRecipeLookup(dish, false, time.Since(start), err)
		return nil, common.ErrRecipeServiceError.Wrap(fmt.Errorf("failed to parse TheMealDB response: %w", err))
	}

	if len(result.Meals) == 0 || result.Meals[0] == nil {
		common.LogRecipeLookup(dish, false, time.Since(start), nil)
		return nil, nil
	}

	common.LogRecipeLookup(dish, true, time.Since(start), nil)
	return result.Meals[0], nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
