package planner

// Overlaps 判断两组时段是否存在冲突
//
// 同一天且 max(startA,startB) < min(endA,endB) 才算冲突；首尾相接不算。
func Overlaps(a, b []Session) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Day != y.Day {
				continue
			}
			if max(x.Start, y.Start) < min(x.End, y.End) {
				return true
			}
		}
	}
	return false
}

// ScheduleState 一次排课过程中已确认的时段集合，只增不减
type ScheduleState struct {
	sessions []Session
}

// NewScheduleState 创建空的排课状态
func NewScheduleState() *ScheduleState {
	return &ScheduleState{}
}

// Conflicts 判断给定时段是否与已确认时段冲突
func (s *ScheduleState) Conflicts(sessions []Session) bool {
	return Overlaps(s.sessions, sessions)
}

// Commit 确认一组时段
func (s *ScheduleState) Commit(sessions []Session) {
	s.sessions = append(s.sessions, sessions...)
}

// Clone 复制当前状态，副本上的 Commit 不影响原状态
func (s *ScheduleState) Clone() *ScheduleState {
	cp := make([]Session, len(s.sessions))
	copy(cp, s.sessions)
	return &ScheduleState{sessions: cp}
}

// Sessions 返回已确认时段的副本
func (s *ScheduleState) Sessions() []Session {
	cp := make([]Session, len(s.sessions))
	copy(cp, s.sessions)
	return cp
}

// Len 已确认时段数
func (s *ScheduleState) Len() int {
	return len(s.sessions)
}
