package planner

// Selection 单个科目的选班结果
type Selection struct {
	Primary *Offering
	Backup  *Offering
}

// SelectOffering 在同一科目的候选班中选出主选班与备选班
//
// 主选班：按评分降序第一个与 state 不冲突的班，选中后其时段写入 state。
// 备选班：排除主选班代码后第一个与（已更新的）state 不冲突的班；
// 仍找不到时忽略冲突，取评分最高的其他班。只有一个班时无备选。
func SelectOffering(candidates []Offering, state *ScheduleState, scorer Scorer) Selection {
	var sel Selection
	if len(candidates) == 0 {
		return sel
	}

	ranked := scorer.rank(candidates)

	for i := range ranked {
		if state.Conflicts(ranked[i].sessions) {
			continue
		}
		primary := ranked[i].offering
		sel.Primary = &primary
		state.Commit(ranked[i].sessions)
		break
	}

	for i := range ranked {
		if sel.Primary != nil && ranked[i].offering.SubjectCode == sel.Primary.SubjectCode {
			continue
		}
		if state.Conflicts(ranked[i].sessions) {
			continue
		}
		backup := ranked[i].offering
		sel.Backup = &backup
		return sel
	}

	// 无不冲突的备选：忽略冲突兜底
	if sel.Primary == nil {
		backup := ranked[0].offering
		sel.Backup = &backup
		return sel
	}
	for i := range ranked {
		if ranked[i].offering.SubjectCode == sel.Primary.SubjectCode {
			continue
		}
		backup := ranked[i].offering
		sel.Backup = &backup
		break
	}
	return sel
}
