package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/application/ports"
	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/internal/domain/compliance"
	"github.com/itcguard/itc-api/internal/domain/entity"
	"github.com/itcguard/itc-api/internal/domain/repository"
	"github.com/itcguard/itc-api/pkg/logger"
)

// assistantRecentLimit caps how many records go into the model context.
const assistantRecentLimit = 10

// AssistantUseCase answers CFO questions grounded in the live record set.
type AssistantUseCase struct {
	assistant ports.Assistant
	repo      repository.TaxRecordRepository
	timeout   time.Duration
	log       *logger.Logger
}

// NewAssistantUseCase builds the use case.
func NewAssistantUseCase(assistant ports.Assistant, repo repository.TaxRecordRepository, timeout time.Duration, log *logger.Logger) *AssistantUseCase {
	return &AssistantUseCase{assistant: assistant, repo: repo, timeout: timeout, log: log.WithComponent("assistant")}
}

// Reply answers in.Message.
func (uc *AssistantUseCase) Reply(ctx context.Context, in dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	records, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("assistant: list records: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	reply, err := uc.assistant.Reply(callCtx, assistantContext(compliance.ComputeStats(records), records), message)
	if err != nil {
		return nil, fmt.Errorf("assistant: %w", err)
	}
	uc.log.Debug().Int("records", len(records)).Int("reply_len", len(reply)).Msg("assistant replied")
	return &dto.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

// assistantContext renders the stats and the most recent records (records
// arrive newest first) as the system prompt.
func assistantContext(stats entity.AggregateStats, records []*entity.TaxRecord) string {
	var b strings.Builder
	b.WriteString("You are an AI CFO assistant for Indian MSMEs tracking GST input tax credit.\n")
	b.WriteString("Current Financial Status:\n")
	fmt.Fprintf(&b, "- Total Outstanding: ₹%s\n", stats.TotalOutstanding.StringFixed(2))
	fmt.Fprintf(&b, "- ITC at Risk: ₹%s\n", stats.ITCAtRisk.StringFixed(2))
	fmt.Fprintf(&b, "- Safe to Pay: ₹%s\n", stats.SafeToPay.StringFixed(2))

	b.WriteString("\nRecent Invoices:\n")
	if len(records) == 0 {
		b.WriteString("(none)\n")
	}
	for i, r := range records {
		if i == assistantRecentLimit {
			break
		}
		gstin := r.TaxID
		if gstin == "" {
			gstin = "not provided"
		}
		fmt.Fprintf(&b, "- %s: ₹%s (%s) [GSTIN: %s]\n", r.VendorName, r.Amount.StringFixed(2), r.Status, gstin)
	}

	b.WriteString(`
INSTRUCTIONS:
1. Answer questions based on the above real-time data if relevant.
2. Do NOT use any markdown formatting (no bold, no headers, no lists).
3. Write plain text only.
4. Keep answers concise and professional.`)
	return b.String()
}
