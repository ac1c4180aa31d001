package driver

import (
	"testing"

	"lamb/internal/core"
)

func TestTermCodecRoundTrip(t *testing.T) {
	term := core.NewAbs("f", core.NewAbs("x", core.NewApp(core.NewIndex(1), core.NewApp(core.NewIndex(1), core.NewIndex(0)))))
	got, err := decodeTerm(encodeTerm(term))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != term.String() {
		t.Fatalf("round trip: got %v, want %v", got, term)
	}
}

func TestTermCodecRejectsMalformed(t *testing.T) {
	bad := [][]wireNode{
		nil,
		{{Op: wireApp}, {Op: wireIndex}},
		{{Op: wireIndex}, {Op: wireIndex}},
		{{Op: 9}},
	}
	for i, nodes := range bad {
		if _, err := decodeTerm(nodes); err == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
}

func TestKeyDependsOnNames(t *testing.T) {
	a, err := Key(core.NewAbs("x", core.NewIndex(0)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Key(core.NewAbs("y", core.NewIndex(0)))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("keys of differently named terms collide")
	}
}
