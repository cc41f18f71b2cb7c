package export

import (
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/albert-jeong/auto-class/internal/planner"
)

// ErrInvalidTerm 学期参数非法
var ErrInvalidTerm = errors.New("学期周数必须大于 0")

const productID = "-//auto-class//timetable//KO"

// Calendar 将主选班的每个上课时段生成一个按周重复的 VEVENT
//
// termStart 所在日期为学期第一天；每个时段的首次上课日为 termStart 当天或之后的对应星期，
// 共重复 weeks 次。时间按 termStart 的时区解释。
func Calendar(r planner.Result, termStart time.Time, weeks int) (string, error) {
	if weeks < 1 {
		return "", ErrInvalidTerm
	}
	loc := termStart.Location()
	day0 := time.Date(termStart.Year(), termStart.Month(), termStart.Day(), 0, 0, 0, 0, loc)
	stamp := time.Now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName("课表")

	for _, o := range r.Primaries {
		for i, s := range o.Sessions() {
			first := firstOccurrence(day0, s.Day)

			event := cal.AddEvent(eventUID(o.SubjectCode, i))
			event.SetDtStampTime(stamp)
			event.SetStartAt(first.Add(time.Duration(s.Start) * time.Minute))
			event.SetEndAt(first.Add(time.Duration(s.End) * time.Minute))
			event.SetSummary(o.SubjectName)
			event.SetLocation(s.Location)
			event.SetDescription(fmt.Sprintf("%s · %s", o.SubjectCode, o.Instructor))
			event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", weeks))
		}
	}
	return cal.Serialize(), nil
}

// firstOccurrence day0 当天或之后第一个星期 d
func firstOccurrence(day0 time.Time, d planner.Day) time.Time {
	offset := (int(d.Weekday()) - int(day0.Weekday()) + 7) % 7
	return day0.AddDate(0, 0, offset)
}

// eventUID 同一班级同一时段的 UID 固定，重复导入日历时可覆盖旧事件
func eventUID(code string, idx int) string {
	name := fmt.Sprintf("%s#%d", code, idx)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String() + "@auto-class"
}
