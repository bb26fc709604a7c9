package presence

import "testing"

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Fatalf("Mean(nil) = %v", got)
	}
	if got := Mean([]int{}); got != 0 {
		t.Fatalf("Mean([]) = %v", got)
	}
	if got := Mean([]int{10, 20, 30}); got != 20.0 {
		t.Fatalf("Mean([10 20 30]) = %v", got)
	}
	if got := Mean([]int{22969, 22999}); got != 22984.0 {
		t.Fatalf("Mean([22969 22999]) = %v", got)
	}
	if got := Mean([]int{1, 2}); got != 1.5 {
		t.Fatalf("Mean([1 2]) = %v", got)
	}
}

func TestSum(t *testing.T) {
	if got := Sum(nil); got != 0 {
		t.Fatalf("Sum(nil) = %d", got)
	}
	if got := Sum([]int{7200, -7200, 30047}); got != 30047 {
		t.Fatalf("Sum = %d", got)
	}
}

func TestAverageVectors_SecondsUntouched(t *testing.T) {
	cur := ClockVector{1, 1, 1, 10, 18, 36}
	prev := ClockVector{1, 1, 1, 9, 13, 26}

	got := AverageVectors(cur, prev)
	want := ClockVector{1, 1, 1, 9, 15, 36}
	if got != want {
		t.Fatalf("AverageVectors = %v, want %v", got, want)
	}
}
