package library

import (
	"testing"
	"time"
)

func TestIssueDeriveStatus(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{name: "returned wins over everything", issue: Issue{DueDate: "2026-08-01", ReturnDate: "2026-08-20"}, want: StatusReturned},
		{name: "past due date", issue: Issue{DueDate: "2026-08-29"}, want: StatusOverdue},
		{name: "due today is not overdue", issue: Issue{DueDate: "2026-08-30"}, want: StatusIssued},
		{name: "due tomorrow", issue: Issue{DueDate: "2026-08-31"}, want: StatusIssued},
		{name: "no due date", issue: Issue{}, want: StatusIssued},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.issue.deriveStatus(now); got != tt.want {
				t.Errorf("deriveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookQueryFilterMatch(t *testing.T) {
	b := Book{Title: "Concepts of Physics", Author: "H.C. Verma", ISBN: "978-8177091878", Category: "physics"}

	tests := []struct {
		name   string
		filter BookQueryFilter
		want   bool
	}{
		{name: "empty filter matches", want: true},
		{name: "title substring", filter: BookQueryFilter{Search: "concepts"}, want: true},
		{name: "author substring", filter: BookQueryFilter{Search: "VERMA"}, want: true},
		{name: "isbn substring", filter: BookQueryFilter{Search: "8177"}, want: true},
		{name: "category exact", filter: BookQueryFilter{Category: "physics"}, want: true},
		{name: "category is not a substring match", filter: BookQueryFilter{Category: "phys"}, want: false},
		{name: "both must match", filter: BookQueryFilter{Search: "verma", Category: "maths"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(b); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}
