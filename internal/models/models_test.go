package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmploymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected EmploymentStatus
		ok       bool
	}{
		{"Canonical bachelor", "bachelor-student", StatusBachelorStudent, true},
		{"Bachelor shorthand", "bachelor", StatusBachelorStudent, true},
		{"Master with space", "master student", StatusMasterStudent, true},
		{"Graduate shorthand", "graduated", StatusGraduatedSameYear, true},
		{"Employee shorthand", "employee", StatusFullTimeEmployee, true},
		{"Mixed case with spaces", "  Full-Time-Employee  ", StatusFullTimeEmployee, true},
		{"Unknown", "freelancer", "", false},
		{"Empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, ok := ParseEmploymentStatus(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, status)
			}
		})
	}
}

func TestAllStatusesCoversEveryConstant(t *testing.T) {
	statuses := AllStatuses()
	assert.Len(t, statuses, 4)
	assert.Contains(t, statuses, StatusBachelorStudent)
	assert.Contains(t, statuses, StatusMasterStudent)
	assert.Contains(t, statuses, StatusGraduatedSameYear)
	assert.Contains(t, statuses, StatusFullTimeEmployee)
}

func TestHasYear(t *testing.T) {
	assert.True(t, ExtractedData{Year: 2021}.HasYear())
	assert.False(t, ExtractedData{Year: 0}.HasYear())
	assert.False(t, ExtractedData{Year: 21}.HasYear())
	assert.False(t, ExtractedData{Year: 12345}.HasYear())
}
