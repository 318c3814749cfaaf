package kuhn

import (
	"math"
	"reflect"
	"testing"
)

func TestCurrentStrategy_ZeroRegrets(t *testing.T) {
	is := NewInfoSet(2)
	strategy := is.CurrentStrategy(1.0)
	if !reflect.DeepEqual(strategy, []float64{0.5, 0.5}) {
		t.Errorf("expected uniform strategy, got %v", strategy)
	}
}

func TestCurrentStrategy_RegretMatching(t *testing.T) {
	is := NewInfoSet(2)
	is.AddRegrets([]float64{5, -3}, 1.0)
	strategy := is.CurrentStrategy(1.0)
	if !reflect.DeepEqual(strategy, []float64{1.0, 0.0}) {
		t.Errorf("expected [1 0], got %v", strategy)
	}

	is = NewInfoSet(3)
	is.AddRegrets([]float64{1, 3, -2}, 2.0)
	strategy = is.CurrentStrategy(1.0)
	expected := []float64{0.25, 0.75, 0}
	for i := range expected {
		if math.Abs(strategy[i]-expected[i]) > 1e-12 {
			t.Errorf("expected %v, got %v", expected, strategy)
		}
	}
}

func TestCurrentStrategy_AllNegativeRegrets(t *testing.T) {
	is := NewInfoSet(2)
	is.AddRegrets([]float64{-1, -4}, 1.0)
	strategy := is.CurrentStrategy(1.0)
	if !reflect.DeepEqual(strategy, []float64{0.5, 0.5}) {
		t.Errorf("expected uniform strategy, got %v", strategy)
	}
}

func TestCurrentStrategy_AccumulatesStrategySum(t *testing.T) {
	is := NewInfoSet(2)
	is.AddRegrets([]float64{3, 1}, 1.0)
	is.CurrentStrategy(0.5)
	is.CurrentStrategy(0.5)

	expected := []float64{0.75, 0.25}
	sum := is.StrategySum()
	for i := range expected {
		if math.Abs(sum[i]-expected[i]) > 1e-12 {
			t.Errorf("expected strategy sum %v, got %v", expected, sum)
		}
	}

	// Regrets are not changed by computing strategies.
	if !reflect.DeepEqual(is.RegretSum(), []float64{3, 1}) {
		t.Errorf("regret sum changed: %v", is.RegretSum())
	}
}

func TestAverageStrategy_Uniform(t *testing.T) {
	is := NewInfoSet(2)
	avg := is.AverageStrategy()
	if !reflect.DeepEqual(avg, []float64{0.5, 0.5}) {
		t.Errorf("expected uniform average strategy, got %v", avg)
	}
}

func TestAverageStrategy_DoesNotMutate(t *testing.T) {
	is := NewInfoSet(2)
	is.AddRegrets([]float64{2, 6}, 1.0)
	is.CurrentStrategy(4.0)
	before := is.StrategySum()
	avg := is.AverageStrategy()
	avg[0] = 42
	if !reflect.DeepEqual(before, is.StrategySum()) {
		t.Errorf("strategy sum modified: %v -> %v", before, is.StrategySum())
	}
	if !reflect.DeepEqual(is.AverageStrategy(), []float64{0.25, 0.75}) {
		t.Errorf("unexpected average strategy: %v", is.AverageStrategy())
	}
}

func TestAverageStrategy_OrderInvariant(t *testing.T) {
	// Two contributions with equal sums, applied in opposite orders.
	a := NewInfoSet(2)
	a.CurrentStrategy(1.0) // Uniform.
	a.AddRegrets([]float64{1, 0}, 1.0)
	a.CurrentStrategy(1.0) // Pure Pass.

	b := NewInfoSet(2)
	b.AddRegrets([]float64{1, 0}, 1.0)
	b.CurrentStrategy(1.0) // Pure Pass.
	b.AddRegrets([]float64{-1, 0}, 1.0)
	b.CurrentStrategy(1.0) // Uniform.

	if !reflect.DeepEqual(a.AverageStrategy(), b.AverageStrategy()) {
		t.Errorf("average strategy depends on order: %v != %v",
			a.AverageStrategy(), b.AverageStrategy())
	}
	if !reflect.DeepEqual(a.AverageStrategy(), []float64{0.75, 0.25}) {
		t.Errorf("unexpected average strategy: %v", a.AverageStrategy())
	}
}

func TestAddRegrets_WrongLengthPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for mismatched regret vector")
		}
	}()

	NewInfoSet(2).AddRegrets([]float64{1, 2, 3}, 1.0)
}

func TestNormalizeOrUniform(t *testing.T) {
	dst := make([]float64, 4)
	normalizeOrUniform(dst, []float64{0, 0, 0, 0})
	if !reflect.DeepEqual(dst, []float64{0.25, 0.25, 0.25, 0.25}) {
		t.Errorf("expected uniform, got %v", dst)
	}

	normalizeOrUniform(dst, []float64{1, 1, 2, 0})
	if !reflect.DeepEqual(dst, []float64{0.25, 0.25, 0.5, 0}) {
		t.Errorf("expected normalized weights, got %v", dst)
	}
}
