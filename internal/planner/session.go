package planner

import (
	"fmt"
	"regexp"
	"time"
)

// Day 星期（0=周一 … 6=周日）
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"월", "화", "수", "목", "금", "토", "일"}

// String 返回目录中使用的星期符号
func (d Day) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Weekday 转为 time.Weekday
func (d Day) Weekday() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// Clock 一天内的时刻，单位为分钟（0 … 1439）
type Clock int

// String 格式化为 HH:MM
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// ParseClock 解析 24 小时制 HH:MM
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// Session 规范化后的每周上课时段，Start < End
type Session struct {
	Day      Day
	Start    Clock
	End      Clock
	Location string // 仅作展示，不参与冲突判定
}

// String 形如 "월 09:00~10:30"
func (s Session) String() string {
	return fmt.Sprintf("%s %s~%s", s.Day, s.Start, s.End)
}

// ── 上课时间字段解析 ──
//
// 单个 token 形如 "월 [공학관 301] 09:00~10:30"，一个字段可包含多个 token。
// 不匹配的片段直接忽略，解析永不失败。

var dayIndex = map[string]Day{
	"월": Monday, "화": Tuesday, "수": Wednesday, "목": Thursday, "금": Friday, "토": Saturday, "일": Sunday,
	"Mon": Monday, "Tue": Tuesday, "Wed": Wednesday, "Thu": Thursday, "Fri": Friday, "Sat": Saturday, "Sun": Sunday,
}

var sessionPattern = regexp.MustCompile(`(월|화|수|목|금|토|일|Mon|Tue|Wed|Thu|Fri|Sat|Sun) \[([^\]]+)\] (\d{2}:\d{2})~(\d{2}:\d{2})`)

// ParseSessions 从原始上课时间字段中提取所有时段（按出现顺序）
func ParseSessions(timeField string) []Session {
	matches := sessionPattern.FindAllStringSubmatch(timeField, -1)
	sessions := make([]Session, 0, len(matches))
	for _, m := range matches {
		start, err := ParseClock(m[3])
		if err != nil {
			continue
		}
		end, err := ParseClock(m[4])
		if err != nil {
			continue
		}
		if start >= end {
			continue
		}
		sessions = append(sessions, Session{
			Day:      dayIndex[m[1]],
			Start:    start,
			End:      end,
			Location: m[2],
		})
	}
	return sessions
}
