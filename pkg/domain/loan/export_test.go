package loan

import "time"

func (l *Loan) IsOverdueAt(now time.Time) bool      { return l.isOverdueAt(now) }
func (l *Loan) MonthsRemainingAt(now time.Time) int { return l.monthsRemainingAt(now) }
