package models

import "time"

// SkillLevel is the closed set of training levels a program can target.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// Valid returns true when the level is a supported value.
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	default:
		return false
	}
}

// SkillLevels lists the supported levels in display order.
func SkillLevels() []SkillLevel {
	return []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced}
}

// Program is a training course with a fixed skill level and duration in weeks.
type Program struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	CoachName   string     `db:"coach_name" json:"coach_name"`
	Contact     string     `db:"contact" json:"contact"`
	Duration    int        `db:"duration" json:"duration"`
	SkillLevel  SkillLevel `db:"skill_level" json:"skill_level"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ProgramSummary annotates a program with its live enrolment count.
type ProgramSummary struct {
	Program
	EnrolmentCount int `db:"enrolment_count" json:"enrolment_count"`
}

// ProgramFilter captures the optional search criteria for listing programs.
// Both filters combine with logical AND; empty values are ignored.
type ProgramFilter struct {
	Search     string
	SkillLevel SkillLevel
}
