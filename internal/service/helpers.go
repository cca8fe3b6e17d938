package service

import (
	"errors"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

// notFoundOr classifies a repository error: a missing row becomes a
// not_found error on field, anything else a dependency failure.
func notFoundOr(err error, field string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return contract.NewError(contract.ErrNotFound, field, err)
	}
	return contract.NewError(contract.ErrDependencyUnavailable, field, err)
}
