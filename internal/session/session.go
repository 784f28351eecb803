// Package session holds the per-customer intake state. A customer has at
// most one session at a time; it exists only while an intake questionnaire
// is in progress and is deleted the moment it becomes an order.
package session

import "time"

// Step identifies the current intake question.
type Step string

const (
	StepCondition Step = "condition"
	StepModel     Step = "model"
	StepStorage   Step = "storage"
	StepColor     Step = "color"
	StepName      Step = "name"
	StepPhone     Step = "phone"
)

// Session accumulates a customer's intake answers.
type Session struct {
	CustomerID int64
	Step       Step

	Condition     string
	Model         string
	Storage       string
	Color         string
	ColorFreeform bool
	Name          string
	Phone         string

	StartedAt time.Time
	UpdatedAt time.Time
}
