package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/bookkeeper/internal/usecase"
)

type chartServiceStub struct {
	treeFn func(ctx context.Context) (*usecase.ChartNode, error)
}

func (s *chartServiceStub) Tree(ctx context.Context) (*usecase.ChartNode, error) {
	return s.treeFn(ctx)
}

func TestChartHandler_Get(t *testing.T) {
	root := &usecase.ChartNode{
		Name: "Root",
		Children: []*usecase.ChartNode{
			{Number: "1000", Name: "Cash", Leaf: true, DebitNormal: true},
		},
	}

	handler := NewChartHandler(&chartServiceStub{
		treeFn: func(ctx context.Context) (*usecase.ChartNode, error) { return root, nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/chart", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp usecase.ChartNode
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "Root" || len(resp.Children) != 1 || resp.Children[0].Number != "1000" {
		t.Fatalf("unexpected tree: %+v", resp)
	}
}

func TestChartHandler_Get_NoChart(t *testing.T) {
	handler := NewChartHandler(&chartServiceStub{
		treeFn: func(ctx context.Context) (*usecase.ChartNode, error) {
			return nil, usecase.ErrNoChart
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/chart", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
