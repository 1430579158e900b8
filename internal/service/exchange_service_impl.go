package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/focusbox/internal/clock"
	"github.com/alexanderramin/focusbox/internal/exchange"
)

type exchangeService struct {
	store *SessionStore
	clock clock.Clock
}

func NewExchangeService(store *SessionStore, clk clock.Clock) ExchangeService {
	return &exchangeService{store: store, clock: clk}
}

func (s *exchangeService) Export(ctx context.Context) *exchange.Document {
	return exchange.Build(s.store.Measurements(), s.store.Boxes(), s.clock.Now())
}

func (s *exchangeService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	doc, err := exchange.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportDocument(ctx, doc)
}

func (s *exchangeService) ImportDocument(ctx context.Context, doc *exchange.Document) (*ImportResult, error) {
	if errs := exchange.Validate(doc); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	ms, bs, err := exchange.Convert(doc)
	if err != nil {
		return nil, fmt.Errorf("converting import document: %w", err)
	}
	return s.store.Import(ctx, ms, bs)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
