// Package advice builds a financial summary and asks a language model for commentary.
package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/wealthflow/internal/common"
	"github.com/bobmcallan/wealthflow/internal/interfaces"
	"github.com/bobmcallan/wealthflow/internal/models"
	"github.com/bobmcallan/wealthflow/internal/services/metrics"
)

const (
	// UnavailableMessage is returned when the model cannot be reached.
	UnavailableMessage = "AI 服務暫時無法使用，請稍後再試。"
	// EmptyMessage is returned when the model answers with no text.
	EmptyMessage = "無法生成建議。"

	recentCount = 5
	topCount    = 3
)

// Summary is the projection of a snapshot sent to the model.
type Summary struct {
	TotalBalance       decimal.Decimal      `json:"total_balance"`
	TransactionCount   int                  `json:"transaction_count"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	TopHoldings        []models.Stock       `json:"top_holdings"`
}

// Summarize projects s. Transactions are already newest first.
func Summarize(s *models.AppState, rates metrics.Rates) Summary {
	recent := s.Transactions
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}
	return Summary{
		TotalBalance:       metrics.TotalBalance(s, rates),
		TransactionCount:   len(s.Transactions),
		RecentTransactions: append([]models.Transaction{}, recent...),
		TopHoldings:        metrics.TopHoldings(s, rates, topCount),
	}
}

// BuildPrompt renders the advisor prompt for summary.
func BuildPrompt(summary Summary) string {
	recent, _ := json.Marshal(summary.RecentTransactions)
	top, _ := json.Marshal(summary.TopHoldings)

	var sb strings.Builder
	sb.WriteString("你是一位專業的個人財務顧問。請根據以下使用者的財務數據摘要提供簡短、具體的財務建議與分析（約 200 字）：\n\n")
	fmt.Fprintf(&sb, "總資產: %s\n", summary.TotalBalance.String())
	fmt.Fprintf(&sb, "交易筆數: %d\n", summary.TransactionCount)
	fmt.Fprintf(&sb, "近期交易: %s\n", recent)
	fmt.Fprintf(&sb, "主要持股: %s\n\n", top)
	sb.WriteString("請包含以下幾點：\n")
	sb.WriteString("1. 資產配置健康度簡評。\n")
	sb.WriteString("2. 對近期支出的觀察（若有）。\n")
	sb.WriteString("3. 投資組合的簡單建議。\n")
	sb.WriteString("請使用繁體中文回答，語氣專業且親切。\n")
	return sb.String()
}

// Service generates advice text. It never returns an error; failures become
// user-facing messages.
type Service struct {
	client interfaces.AdviceClient
	rates  metrics.Rates
	logger *common.Logger
}

// NewService creates an advice service. client may be nil when no API key is configured.
func NewService(client interfaces.AdviceClient, rates metrics.Rates, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{client: client, rates: rates, logger: logger}
}

// Generate returns advice for s.
func (svc *Service) Generate(ctx context.Context, s *models.AppState) string {
	if svc.client == nil {
		svc.logger.Warn().Msg("Advice requested but no model client is configured")
		return UnavailableMessage
	}

	prompt := BuildPrompt(Summarize(s, svc.rates))
	text, err := svc.client.GenerateContent(ctx, prompt)
	if err != nil {
		svc.logger.Error().Err(err).Msg("Advice generation failed")
		return UnavailableMessage
	}
	if strings.TrimSpace(text) == "" {
		return EmptyMessage
	}
	return text
}
