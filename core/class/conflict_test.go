package class

import (
	"testing"
	"time"
)

func TestConflicts(t *testing.T) {
	templates := []Class{
		{ID: 1, Kind: KindRecurring, Name: "Hatha", Teacher: "Nura", Capacity: 10, Time: "18:00", Day: 1},
		{ID: 2, Kind: KindRecurring, Name: "Vinyasa", Teacher: "Nura", Capacity: 10, Time: "19:30", Day: 3},
	}
	oneOffs := []Class{
		// 2030-06-10 is a Monday
		{ID: 1, Kind: KindOneOff, Name: "Workshop", Teacher: "Aina", Capacity: 15, Time: "10:00", Date: "2030-06-10"},
	}

	tests := []struct {
		name      string
		proposed  Class
		excludeID int
		wantErr   error
	}{
		{
			name:     "free slot",
			proposed: Class{Kind: KindRecurring, Time: "09:00", Day: 2},
		},
		{
			name:     "same day different time",
			proposed: Class{Kind: KindRecurring, Time: "20:00", Day: 1},
		},
		{
			name:     "same time different day",
			proposed: Class{Kind: KindRecurring, Time: "18:00", Day: 5},
		},
		{
			name:     "template vs template",
			proposed: Class{Kind: KindRecurring, Time: "18:00", Day: 1},
			wantErr:  ErrFixedClassConflict,
		},
		{
			name:      "editing a template skips itself",
			proposed:  Class{ID: 1, Kind: KindRecurring, Time: "18:00", Day: 1},
			excludeID: 1,
		},
		{
			name:     "template vs one-off weekday",
			proposed: Class{Kind: KindRecurring, Time: "10:00", Day: 1},
			wantErr:  ErrOneOffClassConflict,
		},
		{
			name:     "one-off vs one-off same date",
			proposed: Class{Kind: KindOneOff, Time: "10:00", Date: "2030-06-10"},
			wantErr:  ErrOneOffClassConflict,
		},
		{
			name:      "editing a one-off skips itself",
			proposed:  Class{ID: 1, Kind: KindOneOff, Time: "10:00", Date: "2030-06-10"},
			excludeID: 1,
		},
		{
			// conflicts are global: any Monday collides with a Monday template
			name:     "one-off vs template weekday in another week",
			proposed: Class{Kind: KindOneOff, Time: "18:00", Date: "2031-02-10"},
			wantErr:  ErrFixedClassConflict,
		},
		{
			name:     "one-off on a quiet weekday",
			proposed: Class{Kind: KindOneOff, Time: "18:00", Date: "2030-06-11"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Conflicts(tt.proposed, tt.excludeID, templates, oneOffs); err != tt.wantErr {
				t.Errorf("Conflicts() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2030-06-10", 1}, // Monday
		{"2030-06-15", 6}, // Saturday
		{"2030-06-16", 7}, // Sunday maps to 7
		{"not-a-date", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := WeekdayOf(tt.date); got != tt.want {
			t.Errorf("WeekdayOf(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestNewClassValidate(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	tests := []struct {
		name    string
		nc      NewClass
		wantErr bool
	}{
		{
			name: "valid recurring",
			nc:   NewClass{Kind: KindRecurring, Name: "Hatha", Teacher: "Nura", Capacity: 10, Time: "18:00", Day: 1},
		},
		{
			name: "valid one-off",
			nc:   NewClass{Kind: KindOneOff, Name: "Workshop", Teacher: "Nura", Capacity: 10, Time: "10:00", Date: "2030-06-10"},
		},
		{
			name:    "recurring without day",
			nc:      NewClass{Kind: KindRecurring, Name: "Hatha", Teacher: "Nura", Capacity: 10, Time: "18:00"},
			wantErr: true,
		},
		{
			name:    "one-off without date",
			nc:      NewClass{Kind: KindOneOff, Name: "Workshop", Teacher: "Nura", Capacity: 10, Time: "10:00"},
			wantErr: true,
		},
		{
			name:    "one-off in the past",
			nc:      NewClass{Kind: KindOneOff, Name: "Workshop", Teacher: "Nura", Capacity: 10, Time: "10:00", Date: "2030-05-31"},
			wantErr: true,
		},
		{
			name: "one-off today",
			nc:   NewClass{Kind: KindOneOff, Name: "Workshop", Teacher: "Nura", Capacity: 10, Time: "10:00", Date: "2030-06-01"},
		},
		{
			name:    "capacity over limit",
			nc:      NewClass{Kind: KindRecurring, Name: "Hatha", Teacher: "Nura", Capacity: 51, Time: "18:00", Day: 1},
			wantErr: true,
		},
		{
			name:    "capacity zero",
			nc:      NewClass{Kind: KindRecurring, Name: "Hatha", Teacher: "Nura", Capacity: 0, Time: "18:00", Day: 1},
			wantErr: true,
		},
		{
			name:    "bad time format",
			nc:      NewClass{Kind: KindRecurring, Name: "Hatha", Teacher: "Nura", Capacity: 10, Time: "25:00", Day: 1},
			wantErr: true,
		},
		{
			name:    "day out of range",
			nc:      NewClass{Kind: KindRecurring, Name: "Hatha", Teacher: "Nura", Capacity: 10, Time: "18:00", Day: 8},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.nc.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsExpress(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Hatha Express", true},
		{"EXPRESS flow", true},
		{"Hatha", false},
	}
	for _, tt := range tests {
		cls := Class{Name: tt.name}
		if got := cls.IsExpress(); got != tt.want {
			t.Errorf("IsExpress(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
