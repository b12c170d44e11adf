package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestStartUsecaseSpan_NoParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startUsecaseSpan(ctx, "usecase.PointsService.Report")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context unchanged without a parent span")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span")
	}
}

func TestFailSpan(t *testing.T) {
	_, span := startUsecaseSpan(context.Background(), "usecase.test")
	boom := errors.New("boom")

	if err := failSpan(span, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := failSpan(span, boom); !errors.Is(err, boom) {
		t.Fatalf("expected err returned unchanged, got %v", err)
	}
}
