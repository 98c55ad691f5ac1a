package costapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AggregateKind names the grouping a CostAggregate bucket belongs to.
type AggregateKind string

const (
	ByMonth      AggregateKind = "month"
	ByCostCenter AggregateKind = "cost_center"
	ByProject    AggregateKind = "project"
	ByCategory   AggregateKind = "category"
)

var aggregateKinds = []AggregateKind{ByMonth, ByCostCenter, ByProject, ByCategory}

// ErrAggregateLabel is returned when a bucket carries several grouping labels.
var ErrAggregateLabel = errors.New("costapi: aggregate must carry at most one label")

// CostAggregate is a bucketed total labelled by at most one grouping. A bucket
// whose labels are all null or missing decodes with an empty Label.
type CostAggregate struct {
	Kind        AggregateKind
	Label       string
	TotalAmount float64
}

// UnmarshalJSON accepts the wire shape {"<kind>": "...", "total_amount": n}.
func (a *CostAggregate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var decoded CostAggregate
	var nullKind AggregateKind
	found := 0
	for _, kind := range aggregateKinds {
		value, ok := raw[string(kind)]
		if !ok {
			continue
		}
		if string(value) == "null" {
			if nullKind == "" {
				nullKind = kind
			}
			continue
		}
		var label string
		if err := json.Unmarshal(value, &label); err != nil {
			return fmt.Errorf("costapi: aggregate %s label: %w", kind, err)
		}
		decoded.Kind = kind
		decoded.Label = label
		found++
	}
	switch {
	case found > 1:
		return ErrAggregateLabel
	case found == 0:
		decoded.Kind = nullKind
	}
	if total, ok := raw["total_amount"]; ok {
		if err := json.Unmarshal(total, &decoded.TotalAmount); err != nil {
			return fmt.Errorf("costapi: aggregate total: %w", err)
		}
	}
	*a = decoded
	return nil
}

// MarshalJSON writes the wire shape back, used by snapshot caching.
func (a CostAggregate) MarshalJSON() ([]byte, error) {
	if a.Kind == "" {
		return json.Marshal(map[string]any{"total_amount": a.TotalAmount})
	}
	return json.Marshal(map[string]any{
		string(a.Kind): a.Label,
		"total_amount": a.TotalAmount,
	})
}
