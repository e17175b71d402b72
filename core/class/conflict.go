package class

import "errors"

var (
	// conflict errors
	ErrFixedClassConflict  = errors.New("the slot conflicts with a fixed class")
	ErrOneOffClassConflict = errors.New("the slot conflicts with a one-off class")
)

// Conflicts decides whether the proposed class collides with an existing
// template or one-off instance. It is a pure predicate over the provided
// sets; excludeID skips the class being edited. One-off instances are
// checked globally against matching weekdays, not just within the currently
// displayed week.
func Conflicts(proposed Class, excludeID int, templates, oneOffs []Class) error {
	switch proposed.Kind {
	case KindRecurring:
		for _, tpl := range templates {
			if tpl.ID == excludeID {
				continue
			}
			if tpl.Day == proposed.Day && tpl.Time == proposed.Time {
				return ErrFixedClassConflict
			}
		}
		for _, cls := range oneOffs {
			if WeekdayOf(cls.Date) == proposed.Day && cls.Time == proposed.Time {
				return ErrOneOffClassConflict
			}
		}
	case KindOneOff:
		for _, cls := range oneOffs {
			if cls.ID == excludeID {
				continue
			}
			if cls.Date == proposed.Date && cls.Time == proposed.Time {
				return ErrOneOffClassConflict
			}
		}
		weekday := WeekdayOf(proposed.Date)
		for _, tpl := range templates {
			if tpl.Day == weekday && tpl.Time == proposed.Time {
				return ErrFixedClassConflict
			}
		}
	}
	return nil
}
