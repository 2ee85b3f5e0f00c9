package syntax

import (
	"strings"
	"testing"

	"gocsg/internal/source"
)

func mustParse(t *testing.T, src string) []*Form {
	t.Helper()
	body, err := Parse(source.New("t.scad", []byte(src)))
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return body
}

func TestParseEmptyBody(t *testing.T) {
	body := mustParse(t, "")
	if len(body) != 0 {
		t.Fatalf("got %d forms, want 0", len(body))
	}
}

func TestParseSimpleCall(t *testing.T) {
	body := mustParse(t, "cube([10,10,10]);")
	if len(body) != 1 {
		t.Fatalf("got %d forms, want 1", len(body))
	}
	f := body[0]
	if f.Functor != "cube" || len(f.Args) != 1 {
		t.Fatalf("got %+v", f)
	}
	arr, ok := f.Args[0].Value.(*Array)
	if !ok || len(arr.Elems) != 3 {
		t.Fatalf("got %+v, want a 3-element array", f.Args[0].Value)
	}
}

func TestParseDifferenceNested(t *testing.T) {
	body := mustParse(t, `difference(){ cube(10); translate([2,2,-1]) cube([6,6,12]); }`)
	if len(body) != 1 || body[0].Functor != "difference" {
		t.Fatalf("got %+v", body)
	}
	if len(body[0].Body) != 2 {
		t.Fatalf("got %d children, want 2", len(body[0].Body))
	}
	translate := body[0].Body[1]
	if translate.Functor != "translate" || len(translate.Body) != 1 || translate.Body[0].Functor != "cube" {
		t.Fatalf("got %+v", translate)
	}
}

// TestRangeVsArray covers spec §8 scenario 5.
func TestRangeVsArray(t *testing.T) {
	body := mustParse(t, "x = [1:2:10];")
	arg := body[0]
	if !arg.Assign || arg.Functor != "x" {
		t.Fatalf("got %+v, want an assignment named x", arg)
	}
	if _, ok := arg.Args[0].Value.(*Range); !ok {
		t.Fatalf("got %+v, want a *Range value", arg.Args[0].Value)
	}

	body2 := mustParse(t, "y([1,2,10]);")
	arr, ok := body2[0].Args[0].Value.(*Array)
	if !ok || len(arr.Elems) != 3 {
		t.Fatalf("got %+v, want a 3-element array", body2[0].Args[0].Value)
	}
}

func TestRangeThreeValueBinding(t *testing.T) {
	body := mustParse(t, "r([1:2:10]);")
	rng, ok := body[0].Args[0].Value.(*Range)
	if !ok {
		t.Fatalf("got %+v, want *Range", body[0].Args[0].Value)
	}
	start := rng.Start.(*Int).Val
	step := rng.Step.(*Int).Val
	end := rng.End.(*Int).Val
	if start != 1 || step != 2 || end != 10 {
		t.Fatalf("got start=%d step=%d end=%d, want 1,2,10", start, step, end)
	}
}

func TestParseModifiers(t *testing.T) {
	body := mustParse(t, "*!cube(1);")
	if body[0].Mods != ModDisable|ModShowOnly {
		t.Fatalf("got mods %v, want ModDisable|ModShowOnly", body[0].Mods)
	}
}

func TestParseKeyedArg(t *testing.T) {
	body := mustParse(t, "cylinder(r=5, h=10);")
	f := body[0]
	if f.Args[0].Key != "r" || f.Args[1].Key != "h" {
		t.Fatalf("got %+v", f.Args)
	}
}

func TestParseBareTail(t *testing.T) {
	body := mustParse(t, "translate([1,0,0]) cube(10);")
	if len(body) != 1 || len(body[0].Body) != 1 || body[0].Body[0].Functor != "cube" {
		t.Fatalf("got %+v", body)
	}
}

// TestParserRoundTrip is the property from spec §8: pretty-printing the
// surface tree and re-parsing it yields a structurally identical tree.
func TestParserRoundTrip(t *testing.T) {
	src := `difference(){ cube(10); translate([2,2,-1]) cube([6,6,12]); }` + "\n"
	body := mustParse(t, src)
	printed := Print(body)
	reparsed := mustParse(t, printed)
	if Print(reparsed) != printed {
		t.Fatalf("round trip mismatch:\nfirst:  %q\nsecond: %q", printed, Print(reparsed))
	}
}

func TestParseAssignmentPrintsAndReparses(t *testing.T) {
	body := mustParse(t, "x = [1:2:10];")
	printed := Print(body)
	reparsed := mustParse(t, printed)
	if Print(reparsed) != printed {
		t.Fatalf("round trip mismatch:\nfirst:  %q\nsecond: %q", printed, Print(reparsed))
	}
}

func TestParseErrorMissingCloseParen(t *testing.T) {
	_, err := Parse(source.New("t.scad", []byte("cube(10;")))
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestParseErrorFirstWriterWins(t *testing.T) {
	_, err := Parse(source.New("t.scad", []byte("cube(10;;;;")))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	// Only the first failure, the missing ')' at the first ';', is
	// reported; the later ';' tokens do not replace it.
	if !strings.Contains(err.Error(), "expected ')'") {
		t.Fatalf("got %v, want the first failure (expected ')')", err)
	}
}
