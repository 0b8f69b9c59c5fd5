package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"wastage-backend/internal/models"
	"wastage-backend/internal/validation"
)

const (
	MsgNoSummaryData   = "No wastage data available for the selected period to generate a summary."
	MsgNoInsightsData  = "No wastage data available for the selected period to generate insights."
	MsgNoIngredients   = "Please enter some ingredients."
	MsgSummaryFailed   = "Failed to generate summary. The AI model might be busy. Please try again later."
	MsgInsightsFailed  = "Failed to generate insights. The AI model might be busy. Please try again later."
	MsgRecipesFailed   = "Failed to generate recipes. The AI model might be busy. Please try again later."
	defaultFlowTimeout = 60 * time.Second
)

// Flows: durumsuz; aynı anda çağrılabilir, önbellek yok
type Flows struct {
	gen     Generator
	timeout time.Duration
	log     *logrus.Logger
}

func NewFlows(gen Generator, timeout time.Duration, log *logrus.Logger) *Flows {
	if timeout <= 0 {
		timeout = defaultFlowTimeout
	}
	if gen == nil {
		gen = Unavailable{}
	}
	return &Flows{gen: gen, timeout: timeout, log: log}
}

// recordPayload: modele giden kayıt biçimi
type recordPayload struct {
	Item     string   `json:"item"`
	Quantity string   `json:"quantity"` // "2 kg"
	Reason   string   `json:"reason"`
	Date     string   `json:"date"` // YYYY-MM-DD (UTC)
	Cost     *float64 `json:"cost,omitempty"`
}

// SerializeRecords: kayıtları prompt'a gömülecek JSON listesine çevirir
func SerializeRecords(records []models.WastageEntry) string {
	payload := make([]recordPayload, 0, len(records))
	for _, r := range records {
		payload = append(payload, recordPayload{
			Item:     r.Item,
			Quantity: strconv.FormatFloat(r.Quantity, 'f', -1, 64) + " " + string(r.Unit),
			Reason:   string(r.Reason),
			Date:     r.Date.UTC().Format("2006-01-02"),
			Cost:     r.Cost,
		})
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

// WeeklySummary: boş listede modele gidilmez
func (f *Flows) WeeklySummary(ctx context.Context, records []models.WastageEntry) Outcome[WeeklySummaryOutput] {
	if len(records) == 0 {
		return ValidationRejected[WeeklySummaryOutput](MsgNoSummaryData)
	}
	prompt, err := weeklySummaryPrompt.Render(map[string]string{"wastageData": SerializeRecords(records)})
	if err != nil {
		return UpstreamFailed[WeeklySummaryOutput](MsgSummaryFailed)
	}
	return run[WeeklySummaryOutput](ctx, f, Request{Name: weeklySummaryPrompt.Name, Prompt: prompt, Schema: weeklySummarySchema}, MsgSummaryFailed)
}

func (f *Flows) SmartInsights(ctx context.Context, records []models.WastageEntry) Outcome[SmartInsightsOutput] {
	if len(records) == 0 {
		return ValidationRejected[SmartInsightsOutput](MsgNoInsightsData)
	}
	prompt, err := smartInsightsPrompt.Render(map[string]string{"wastageData": SerializeRecords(records)})
	if err != nil {
		return UpstreamFailed[SmartInsightsOutput](MsgInsightsFailed)
	}
	return run[SmartInsightsOutput](ctx, f, Request{Name: smartInsightsPrompt.Name, Prompt: prompt, Schema: smartInsightsSchema}, MsgInsightsFailed)
}

// Recipes: ingredients virgülle ayrılmış serbest metin
func (f *Flows) Recipes(ctx context.Context, ingredients string) Outcome[RecipesOutput] {
	ingredients = strings.TrimSpace(ingredients)
	if ingredients == "" {
		return ValidationRejected[RecipesOutput](MsgNoIngredients)
	}
	prompt, err := recipesPrompt.Render(map[string]string{"ingredients": ingredients})
	if err != nil {
		return ValidationRejected[RecipesOutput](MsgNoIngredients)
	}
	return run[RecipesOutput](ctx, f, Request{Name: recipesPrompt.Name, Prompt: prompt, Schema: recipesSchema}, MsgRecipesFailed)
}

// run: üretim + JSON çözme + şema doğrulama. Her hata (panic dahil) failMsg olur.
func run[T any](ctx context.Context, f *Flows, req Request, failMsg string) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			f.fail(req.Name, fmt.Errorf("panic: %v", r))
			out = UpstreamFailed[T](failMsg)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	raw, err := f.gen.Generate(ctx, req)
	if err != nil {
		f.fail(req.Name, err)
		return UpstreamFailed[T](failMsg)
	}

	var data T
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		f.fail(req.Name, fmt.Errorf("decode: %w", err))
		return UpstreamFailed[T](failMsg)
	}
	if err := validation.Struct(data); err != nil {
		f.fail(req.Name, fmt.Errorf("schema: %w", err))
		return UpstreamFailed[T](failMsg)
	}
	return Success(data)
}

func (f *Flows) fail(flow string, err error) {
	if f.log == nil {
		return
	}
	f.log.WithField("flow", flow).WithError(err).Error("ai flow failed")
}
