// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/macdeesh/patterns/middleware"
	"github.com/macdeesh/patterns/models"
)

// compatibilityBands mirrors the messages the quiz shows, highest first
var compatibilityBands = []models.CompatibilityBand{
	{Label: "perfect", Min: 90},
	{Label: "very", Min: 75},
	{Label: "some", Min: 50},
	{Label: "low", Min: 0},
}

// Stats handles GET /answers/stats
func (h *RecordsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context(), credential(r))
	if err != nil {
		h.storeError(w, r, "list", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ComputeStats(records))
}

// ComputeStats summarizes the compatibility scores in records. Records
// without a numeric compatibility field are counted but not scored.
func ComputeStats(records []json.RawMessage) models.StatsResponse {
	scores := make([]float64, 0, len(records))
	for _, rec := range records {
		var sub struct {
			Compatibility *float64 `json:"compatibility"`
		}
		if err := json.Unmarshal(rec, &sub); err != nil || sub.Compatibility == nil {
			continue
		}
		scores = append(scores, *sub.Compatibility)
	}

	// Sort for percentile calculations
	sort.Float64s(scores)

	bands := make([]models.CompatibilityBand, len(compatibilityBands))
	copy(bands, compatibilityBands)
	for _, s := range scores {
		for i := range bands {
			if s >= bands[i].Min || i == len(bands)-1 {
				bands[i].Count++
				break
			}
		}
	}

	return models.StatsResponse{
		Records: len(records),
		Scored:  len(scores),
		Mean:    mean(scores),
		Median:  percentile(scores, 0.5),
		P10:     percentile(scores, 0.1),
		P90:     percentile(scores, 0.9),
		Bands:   bands,
	}
}

// percentile calculates the p-th percentile of sorted data
// p should be in range [0, 1]
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0.0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	// Linear interpolation between closest ranks
	rank := p * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// mean calculates the arithmetic mean
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
