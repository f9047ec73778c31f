package handler

import (
	"rcgate/internal/birthnumber/service"
	"rcgate/pkg/birthnumber"
)

// dateLayout renders dates of birth as ISO 8601 calendar dates.
const dateLayout = "2006-01-02"

// BirthNumberResponse is the body returned for a parsed birth number.
type BirthNumberResponse struct {
	Normalized  string `json:"normalized"`
	Formatted   string `json:"formatted"`
	DateOfBirth string `json:"date_of_birth"`
	Sex         string `json:"sex"`
	HasChecksum bool   `json:"has_checksum"`
	Age         int    `json:"age"`
	Adult       bool   `json:"adult"`
}

// FromResult converts a service result to its response.
func FromResult(r *service.Result) BirthNumberResponse {
	bn := r.BirthNumber
	return BirthNumberResponse{
		Normalized:  bn.Normalized(),
		Formatted:   r.Formatted,
		DateOfBirth: bn.DateOfBirth().Format(dateLayout),
		Sex:         bn.Sex().String(),
		HasChecksum: bn.HasChecksum(),
		Age:         r.Age,
		Adult:       r.Adult,
	}
}

// BatchItemResponse reports one batch input by index. Rejected inputs are
// not echoed back.
type BatchItemResponse struct {
	InputIndex  int                  `json:"input_index"`
	Valid       bool                 `json:"valid"`
	Reason      string               `json:"reason,omitempty"`
	BirthNumber *BirthNumberResponse `json:"birth_number,omitempty"`
}

// BatchResponse is the body returned for POST /birth-numbers/batch.
type BatchResponse struct {
	Results []BatchItemResponse `json:"results"`
	Valid   int                 `json:"valid"`
	Invalid int                 `json:"invalid"`
}

// FromBatch converts batch items to the response, preserving order.
func FromBatch(items []service.BatchItem) BatchResponse {
	resp := BatchResponse{Results: make([]BatchItemResponse, 0, len(items))}
	for _, item := range items {
		out := BatchItemResponse{InputIndex: item.Index}
		if item.Reason == birthnumber.ReasonValid && item.Result != nil {
			bn := FromResult(item.Result)
			out.Valid = true
			out.BirthNumber = &bn
			resp.Valid++
		} else {
			out.Reason = item.Reason.String()
			resp.Invalid++
		}
		resp.Results = append(resp.Results, out)
	}
	return resp
}

// FormattedResponse is the body returned for GET /birth-numbers/{value}/formatted.
type FormattedResponse struct {
	Formatted string `json:"formatted"`
}
