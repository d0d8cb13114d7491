package repository

import (
	"errors"
	"path/filepath"
	"time"

	"performanceEvaluation/internal/store"
	"performanceEvaluation/models"
)

// Collection aliases keep generic signatures readable at call sites.
type (
	UserCollection       = store.Collection[models.User, *models.User]
	CriterionCollection  = store.Collection[models.Criterion, *models.Criterion]
	EvaluationCollection = store.Collection[models.Evaluation, *models.Evaluation]
)

// ErrUsernameTaken reports a username uniqueness violation on user create
// or update.
var ErrUsernameTaken = errors.New("username already taken")

// ErrBadReference reports that a referenced record (employee, evaluator, or
// criterion) does not resolve at write time.
var ErrBadReference = errors.New("reference does not resolve")

// Collections bundles the three backing stores, one JSON file per kind.
type Collections struct {
	Users       *UserCollection
	Criteria    *CriterionCollection
	Evaluations *EvaluationCollection
}

// OpenCollections opens (creating if absent) the users, criteria, and
// evaluations collections under dataDir.
func OpenCollections(dataDir string, lockTimeout time.Duration) (*Collections, error) {
	users, err := store.NewCollection[models.User](filepath.Join(dataDir, "users.json"), "u", lockTimeout)
	if err != nil {
		return nil, err
	}
	criteria, err := store.NewCollection[models.Criterion](filepath.Join(dataDir, "criteria.json"), "c", lockTimeout)
	if err != nil {
		return nil, err
	}
	evaluations, err := store.NewCollection[models.Evaluation](filepath.Join(dataDir, "evaluations.json"), "ev", lockTimeout)
	if err != nil {
		return nil, err
	}
	return &Collections{Users: users, Criteria: criteria, Evaluations: evaluations}, nil
}
