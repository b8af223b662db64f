package analytics

import (
	"reflect"
	"testing"
)

func TestChartSpecs_CountChartsSorted(t *testing.T) {
	summary := &Summary{
		StatusCounts:   map[string]int{"open": 3, "closed": 1, "in_progress": 2},
		PriorityCounts: map[string]int{"low": 1},
	}

	set := ChartSpecs(summary)

	expectedLabels := []string{"closed", "in_progress", "open"}
	if !reflect.DeepEqual(set.Status.Labels, expectedLabels) {
		t.Errorf("expected sorted labels %v, got %v", expectedLabels, set.Status.Labels)
	}
	expectedSeries := []float64{1, 2, 3}
	if !reflect.DeepEqual(set.Status.Series, expectedSeries) {
		t.Errorf("expected series %v, got %v", expectedSeries, set.Status.Series)
	}
	if set.Status.Kind != "bar" {
		t.Errorf("expected bar chart, got %s", set.Status.Kind)
	}
}

func TestChartSpecs_ResponseTime(t *testing.T) {
	avg, min, max := 4.0, 2.0, 6.0
	summary := &Summary{
		ResponseHours: NumericAggregate{Count: 2, Avg: &avg, Min: &min, Max: &max},
	}

	set := ChartSpecs(summary)

	if !reflect.DeepEqual(set.ResponseTime.Labels, []string{"avg", "min", "max"}) {
		t.Errorf("unexpected labels %v", set.ResponseTime.Labels)
	}
	if !reflect.DeepEqual(set.ResponseTime.Series, []float64{4, 2, 6}) {
		t.Errorf("unexpected series %v", set.ResponseTime.Series)
	}
	if set.ResponseTime.YLabel != "hours" {
		t.Errorf("expected hours unit, got %s", set.ResponseTime.YLabel)
	}
}

func TestChartSpecs_EmptySummary(t *testing.T) {
	set := ChartSpecs(&Summary{})

	if set.Status.Labels == nil || len(set.Status.Labels) != 0 {
		t.Error("empty status chart should carry empty labels, not nil")
	}
	if len(set.ResponseTime.Series) != 0 {
		t.Error("empty aggregate should render an empty series")
	}
}

func TestChartSpecs_SatisfactionBuckets(t *testing.T) {
	summary := &Summary{
		SatisfactionBuckets: map[int]int{4: 2, 2: 1, 5: 3},
	}

	set := ChartSpecs(summary)

	expected := []string{"2 stars", "4 stars", "5 stars"}
	if !reflect.DeepEqual(set.Satisfaction.Labels, expected) {
		t.Errorf("expected %v, got %v", expected, set.Satisfaction.Labels)
	}
	if !reflect.DeepEqual(set.Satisfaction.Series, []float64{1, 2, 3}) {
		t.Errorf("unexpected series %v", set.Satisfaction.Series)
	}
}
