package planner

import "testing"

func at(d Day, sh, sm, eh, em int) Session {
	return Session{Day: d, Start: Clock(sh*60 + sm), End: Clock(eh*60 + em)}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b []Session
		want bool
	}{
		{"different days", []Session{at(Monday, 9, 0, 10, 0)}, []Session{at(Tuesday, 9, 0, 10, 0)}, false},
		{"touching endpoints", []Session{at(Monday, 9, 0, 10, 0)}, []Session{at(Monday, 10, 0, 11, 0)}, false},
		{"partial overlap", []Session{at(Monday, 9, 0, 10, 30)}, []Session{at(Monday, 10, 0, 11, 0)}, true},
		{"containment", []Session{at(Friday, 9, 0, 12, 0)}, []Session{at(Friday, 10, 0, 11, 0)}, true},
		{"identical", []Session{at(Monday, 9, 0, 10, 0)}, []Session{at(Monday, 9, 0, 10, 0)}, true},
		{"empty a", nil, []Session{at(Monday, 9, 0, 10, 0)}, false},
		{"empty b", []Session{at(Monday, 9, 0, 10, 0)}, nil, false},
		{"second pair overlaps", []Session{at(Monday, 9, 0, 10, 0), at(Wednesday, 14, 0, 15, 0)},
			[]Session{at(Tuesday, 9, 0, 10, 0), at(Wednesday, 14, 59, 16, 0)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Errorf("Overlaps(b, a) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOverlaps_IgnoresLocation(t *testing.T) {
	a := []Session{{Day: Monday, Start: 540, End: 600, Location: "A"}}
	b := []Session{{Day: Monday, Start: 570, End: 630, Location: "B"}}
	if !Overlaps(a, b) {
		t.Error("不同教室同一时间应判定冲突")
	}
}

func TestScheduleState_CloneIsIndependent(t *testing.T) {
	s := NewScheduleState()
	s.Commit([]Session{at(Monday, 9, 0, 10, 0)})

	cp := s.Clone()
	cp.Commit([]Session{at(Tuesday, 9, 0, 10, 0)})

	if s.Len() != 1 {
		t.Errorf("原状态不应被副本修改，实际长度 %d", s.Len())
	}
	if cp.Len() != 2 {
		t.Errorf("副本长度期望 2，实际 %d", cp.Len())
	}
	if s.Conflicts([]Session{at(Tuesday, 9, 30, 10, 30)}) {
		t.Error("原状态不应包含副本提交的时段")
	}
}
