package enrollment

// Enrollment links one student to one class occurrence. Exactly one of
// TemplateID / OneOffClassID is set; Date carries the one-off occurrence
// date so bulk queries need not re-resolve the class.
type Enrollment struct {
	ID            int    `json:"id"`
	StudentID     int    `json:"studentId"`
	TemplateID    int    `json:"templateId,omitempty"`
	OneOffClassID int    `json:"oneOffClassId,omitempty"`
	Date          string `json:"date,omitempty"`
}

// IsRecurring reports whether the enrollment references a recurring class template.
func (e *Enrollment) IsRecurring() bool { return e.TemplateID != 0 }

// ClassRef identifies the class side of an enrollment operation without
// depending on the class package.
type ClassRef struct {
	TemplateID    int
	OneOffClassID int
	Date          string // one-off occurrence date
	Capacity      int
}

func (r ClassRef) isRecurring() bool { return r.TemplateID != 0 }

func (r ClassRef) matches(e Enrollment) bool {
	if r.isRecurring() {
		return e.TemplateID == r.TemplateID
	}
	return e.OneOffClassID == r.OneOffClassID
}
