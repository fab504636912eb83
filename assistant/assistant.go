// Package assistant drafts product descriptions, stock forecasts and order
// summaries with a text generation model. Calls are single shot: a failure
// is turned into a fixed apology and never retried.
package assistant

import (
	"context"
	"errors"
	"log/slog"
	"time"

	models "inventory-dashboard/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// GuidanceMessage is shown instead of calling the model when the
	// product name or keywords are missing.
	GuidanceMessage = "Veuillez entrer un nom de produit et des mots-clés."

	DescriptionFailure = "Désolé, une erreur est survenue lors de la génération de la description."
	ForecastFailure    = "Désolé, une erreur est survenue lors de l'analyse des prévisions de stock."
	SummaryFailure     = "Désolé, une erreur est survenue lors de la génération du résumé des commandes."

	// ForecastWindow is how far back orders are sent for a forecast.
	ForecastWindow = 30 * 24 * time.Hour
)

// ErrNotConfigured is returned by Unavailable.
var ErrNotConfigured = errors.New("assistant: no model configured")

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Unavailable always fails. It stands in when no API key is set.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

// Models names the model used for each task.
type Models struct {
	Description string
	Forecast    string
	Summary     string
}

func DefaultModels() Models {
	return Models{
		Description: "gemini-2.5-flash",
		Forecast:    "gemini-2.5-pro",
		Summary:     "gemini-2.5-flash",
	}
}

type Gateway struct {
	gen    Generator
	models Models
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Gateway)

// WithClock overrides time.Now, used for the forecast window.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

func NewGateway(gen Generator, m Models, opts ...Option) *Gateway {
	g := &Gateway{gen: gen, models: m, now: time.Now, logger: slog.Default()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// GenerateDescription drafts marketing copy. Callers check that both
// inputs are non-empty.
func (g *Gateway) GenerateDescription(ctx context.Context, productName, keywords string) string {
	return g.run(ctx, "description", g.models.Description, descriptionPrompt(productName, keywords), DescriptionFailure)
}

// ForecastStock sends current stock and the orders of the last 30 days.
func (g *Gateway) ForecastStock(ctx context.Context, products []models.Product, orders []models.Order) string {
	cutoff := g.now().Add(-ForecastWindow)
	recent := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Date.After(cutoff) {
			recent = append(recent, o)
		}
	}
	return g.run(ctx, "forecast", g.models.Forecast, forecastPrompt(products, recent), ForecastFailure)
}

// SummarizeOrders sends every order as is.
func (g *Gateway) SummarizeOrders(ctx context.Context, orders []models.Order) string {
	return g.run(ctx, "summary", g.models.Summary, summaryPrompt(orders), SummaryFailure)
}

func (g *Gateway) run(ctx context.Context, task, model, prompt, fallback string) string {
	ctx, span := otel.Tracer("inventory-dashboard/assistant").Start(ctx, "assistant."+task)
	defer span.End()
	span.SetAttributes(attribute.String("assistant.model", model))

	text, err := g.gen.Generate(ctx, model, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.logger.ErrorContext(ctx, "assistant task failed", "task", task, "model", model, "error", err)
		return fallback
	}
	return text
}
