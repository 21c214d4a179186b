package gesture

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		p1, p2 Gesture
		want   Outcome
	}{
		{Rock, Scissors, PlayerOneWins},
		{Scissors, Paper, PlayerOneWins},
		{Paper, Rock, PlayerOneWins},
		{Scissors, Rock, PlayerTwoWins},
		{Paper, Scissors, PlayerTwoWins},
		{Rock, Paper, PlayerTwoWins},
		{Rock, Rock, Tie},
		{Paper, Paper, Tie},
		{Scissors, Scissors, Tie},
		{Unknown, Rock, Invalid},
		{Paper, Unknown, Invalid},
		{Unknown, Unknown, Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.p1.String()+"_vs_"+tt.p2.String(), func(t *testing.T) {
			if got := Resolve(tt.p1, tt.p2); got != tt.want {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestResolve_Antisymmetric(t *testing.T) {
	for _, a := range Playable {
		for _, b := range Playable {
			if a == b {
				continue
			}
			ab, ba := Resolve(a, b), Resolve(b, a)
			if ab == ba {
				t.Errorf("Resolve(%v, %v) and Resolve(%v, %v) both gave %v", a, b, b, a, ab)
			}
			if ab != PlayerOneWins && ab != PlayerTwoWins {
				t.Errorf("Resolve(%v, %v) = %v, want a winner", a, b, ab)
			}
		}
	}
}

func TestOutcome_String(t *testing.T) {
	for _, o := range []Outcome{Invalid, Tie, PlayerOneWins, PlayerTwoWins} {
		if got := ParseOutcome(o.String()); got != o {
			t.Errorf("ParseOutcome(%q) = %v, want %v", o.String(), got, o)
		}
	}
}
