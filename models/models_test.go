package models

import (
	"errors"
	"testing"
)

func validUser() User {
	return User{
		Username: "jdoe",
		Role:     RoleEmployee,
		FullName: "Jane Doe",
		Email:    "jdoe@example.com",
		Active:   true,
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleEvaluator, RoleEmployee} {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	for _, r := range []Role{"", "superuser", "Admin"} {
		if r.Valid() {
			t.Errorf("role %q should be invalid", r)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@sub.example.org", "x_1%@d.io"}
	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("email %q should be valid", e)
		}
	}
	invalid := []string{"", "plain", "@example.com", "a@b", "a b@c.com", "a@.com"}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("email %q should be invalid", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Abcd123!"); err != nil {
		t.Errorf("8-char password rejected: %v", err)
	}
	err := ValidatePassword("short1!")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for short password, got %v", err)
	}
}

func TestUserValidate(t *testing.T) {
	u := validUser()
	if err := u.Validate(); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*User)
	}{
		{"short username", func(u *User) { u.Username = "ab" }},
		{"whitespace username", func(u *User) { u.Username = "   " }},
		{"unknown role", func(u *User) { u.Role = "manager" }},
		{"bad email", func(u *User) { u.Email = "not-an-email" }},
	}
	for _, tc := range cases {
		u := validUser()
		tc.mutate(&u)
		if err := u.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tc.name, err)
		}
	}
}

func TestUserSanitized(t *testing.T) {
	u := validUser()
	u.PasswordHash = "$2a$10$hash"
	s := u.Sanitized()
	if s.PasswordHash != "" {
		t.Error("Sanitized should clear the password hash")
	}
	if u.PasswordHash == "" {
		t.Error("Sanitized should not modify the receiver")
	}
	if s.Username != u.Username || s.Email != u.Email {
		t.Error("Sanitized should preserve the other fields")
	}
}

func TestUserPatch(t *testing.T) {
	u := validUser()
	u.ID = "u-1"

	name := "Janet Doe"
	role := RoleEvaluator
	inactive := false
	p := UserPatch{FullName: &name, Role: &role, Active: &inactive}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid patch rejected: %v", err)
	}
	p.Apply(&u)

	if u.FullName != "Janet Doe" || u.Role != RoleEvaluator || u.Active {
		t.Errorf("patch not applied: %+v", u)
	}
	if u.Username != "jdoe" || u.ID != "u-1" {
		t.Errorf("patch touched unrelated fields: %+v", u)
	}

	badRole := Role("root")
	if err := (UserPatch{Role: &badRole}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for bad role patch, got %v", err)
	}
	badEmail := "nope"
	if err := (UserPatch{Email: &badEmail}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for bad email patch, got %v", err)
	}
	shortName := "ab"
	if err := (UserPatch{Username: &shortName}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for short username patch, got %v", err)
	}
}

func TestCriterionValidate(t *testing.T) {
	c := Criterion{Name: "Teamwork", Weight: 1.5}
	if err := c.Validate(); err != nil {
		t.Fatalf("valid criterion rejected: %v", err)
	}

	c = Criterion{Name: "X", Weight: 1}
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for one-char name, got %v", err)
	}
	c = Criterion{Name: "Teamwork", Weight: 0}
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for zero weight, got %v", err)
	}
	c = Criterion{Name: "Teamwork", Weight: -2}
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for negative weight, got %v", err)
	}
}

func TestCriterionPatch(t *testing.T) {
	c := Criterion{ID: "c-1", Name: "Teamwork", Description: "old", Weight: 1}
	w := 2.5
	desc := "collaboration across teams"
	p := CriterionPatch{Weight: &w, Description: &desc}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid patch rejected: %v", err)
	}
	p.Apply(&c)
	if c.Weight != 2.5 || c.Description != desc || c.Name != "Teamwork" {
		t.Errorf("patch misapplied: %+v", c)
	}

	zero := 0.0
	if err := (CriterionPatch{Weight: &zero}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for zero weight patch, got %v", err)
	}
}

func TestEvaluationStatusValid(t *testing.T) {
	for _, s := range []EvaluationStatus{StatusDraft, StatusFinal, StatusArchived} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if EvaluationStatus("pending").Valid() {
		t.Error("status \"pending\" should be invalid")
	}
}

func validEvaluation() Evaluation {
	return Evaluation{
		EmployeeID:  "u-emp",
		EvaluatorID: "u-eval",
		Date:        "2024-06-01",
		Scores:      map[string]int{"c-1": 4, "c-2": 5},
		Status:      StatusDraft,
	}
}

func TestEvaluationValidate(t *testing.T) {
	e := validEvaluation()
	if err := e.Validate(); err != nil {
		t.Fatalf("valid evaluation rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Evaluation)
	}{
		{"missing employee", func(e *Evaluation) { e.EmployeeID = "" }},
		{"missing evaluator", func(e *Evaluation) { e.EvaluatorID = "" }},
		{"no scores", func(e *Evaluation) { e.Scores = nil }},
		{"score too low", func(e *Evaluation) { e.Scores["c-1"] = 0 }},
		{"score too high", func(e *Evaluation) { e.Scores["c-1"] = 6 }},
		{"unknown status", func(e *Evaluation) { e.Status = "done" }},
	}
	for _, tc := range cases {
		e := validEvaluation()
		tc.mutate(&e)
		if err := e.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tc.name, err)
		}
	}
}

func TestEvaluationPatch(t *testing.T) {
	e := validEvaluation()
	before := e.UpdatedAt

	status := StatusFinal
	comments := "solid quarter"
	p := EvaluationPatch{
		Scores:   map[string]int{"c-3": 2},
		Comments: &comments,
		Status:   &status,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid patch rejected: %v", err)
	}
	p.Apply(&e)

	if len(e.Scores) != 1 || e.Scores["c-3"] != 2 {
		t.Errorf("scores should be replaced wholesale, got %v", e.Scores)
	}
	if e.Status != StatusFinal || e.Comments != comments {
		t.Errorf("patch misapplied: %+v", e)
	}
	if !e.UpdatedAt.After(before) {
		t.Error("Apply should bump UpdatedAt")
	}

	if err := (EvaluationPatch{Scores: map[string]int{"c-1": 9}}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Error("expected ErrInvalid for out-of-range score patch")
	}
	bad := EvaluationStatus("closed")
	if err := (EvaluationPatch{Status: &bad}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Error("expected ErrInvalid for unknown status patch")
	}
}
