package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.ListSeasonPoints", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isHandlerSpan(tt.in)
			if got != tt.want {
				t.Fatalf("isHandlerSpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartHandlerSpan_WithoutParentIsNoop(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/points/season", nil)
	req.Pattern = "GET /v1/points/season"

	ctx, span := startHandlerSpan(req, "httpapi.Handler.ListSeasonPoints")
	defer span.End()

	if ctx != req.Context() {
		t.Fatalf("expected request context unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span without a parent")
	}
}
