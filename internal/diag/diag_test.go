package diag

import "testing"

func TestSinkKeepsLowestLayerIndex(t *testing.T) {
	s := &Sink{}
	s.Report(5, New(BoolOp, Location{}, "layer 5 failed"))
	s.Report(2, New(BoolOp, Location{}, "layer 2 failed"))
	s.Report(9, New(BoolOp, Location{}, "layer 9 failed"))

	got := s.Err()
	if got == nil {
		t.Fatalf("Err() = nil, want layer 2's error")
	}
	if got.Message != "layer 2 failed" {
		t.Fatalf("Err().Message = %q, want %q", got.Message, "layer 2 failed")
	}
}

func TestSinkReportReturnsWhetherItWon(t *testing.T) {
	s := &Sink{}
	if !s.Report(3, New(BoolOp, Location{}, "first")) {
		t.Fatalf("first Report should win an empty sink")
	}
	if s.Report(7, New(BoolOp, Location{}, "later, higher index")) {
		t.Fatalf("a higher-index Report should not win over an already-recorded lower one")
	}
	if !s.Report(1, New(BoolOp, Location{}, "lower index")) {
		t.Fatalf("a strictly lower-index Report should win")
	}
	if got := s.Err(); got.Message != "lower index" {
		t.Fatalf("Err().Message = %q, want %q", got.Message, "lower index")
	}
}

func TestSinkHasErrReflectsState(t *testing.T) {
	s := &Sink{}
	if s.HasErr() {
		t.Fatalf("HasErr() on empty sink should be false")
	}
	s.Report(0, New(BoolOp, Location{}, "boom"))
	if !s.HasErr() {
		t.Fatalf("HasErr() after Report should be true")
	}
}
