package models

import (
	"testing"
)

func TestValidateStatAccessors(t *testing.T) {
	if err := ValidateStatAccessors(); err != nil {
		t.Fatalf("ValidateStatAccessors() error: %v", err)
	}
}

func TestAddStat_Clamp(t *testing.T) {
	p := MechanicProfile{StatHand: 98}

	v, err := p.AddStat(StatHand, 5)
	if err != nil {
		t.Fatalf("AddStat() error: %v", err)
	}
	if v != 100 || p.StatHand != 100 {
		t.Errorf("AddStat(Hand, 5) from 98 = %d (field %d), want 100", v, p.StatHand)
	}

	// already at the ceiling, stays there
	v, err = p.AddStat(StatHand, 3)
	if err != nil {
		t.Fatalf("AddStat() error: %v", err)
	}
	if v != 100 {
		t.Errorf("AddStat at ceiling = %d, want 100", v)
	}
}

func TestAddStat_UnknownStat(t *testing.T) {
	p := MechanicProfile{}
	if _, err := p.AddStat(StatType("Luck"), 1); err == nil {
		t.Fatal("AddStat(unknown) error = nil, want error")
	}
	if _, err := p.Stat(StatType("Luck")); err == nil {
		t.Fatal("Stat(unknown) error = nil, want error")
	}
}

func TestStats_CoversAllStatTypes(t *testing.T) {
	p := MechanicProfile{StatTech: 1, StatHand: 2, StatSpeed: 3, StatArt: 4, StatBiz: 5}
	stats := p.Stats()
	if len(stats) != len(AllStatTypes) {
		t.Fatalf("Stats() has %d entries, want %d", len(stats), len(AllStatTypes))
	}
	for _, st := range AllStatTypes {
		want, err := p.Stat(st)
		if err != nil {
			t.Fatalf("Stat(%q) error: %v", st, err)
		}
		if stats[st] != want {
			t.Errorf("Stats()[%q] = %d, want %d", st, stats[st], want)
		}
	}
}

func TestJobCardRequirements(t *testing.T) {
	seventy := 70
	forty := 40
	card := JobCard{ReqTech: &seventy, ReqBiz: &forty}

	req := card.Requirements()
	if len(req) != 2 {
		t.Fatalf("Requirements() has %d entries, want 2", len(req))
	}
	if req[StatTech] != 70 || req[StatBiz] != 40 {
		t.Errorf("Requirements() = %v", req)
	}

	if len((&JobCard{}).Requirements()) != 0 {
		t.Error("empty card should have no requirements")
	}
}
