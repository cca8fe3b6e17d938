package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/importer"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

type catalogService struct {
	courses  repository.CourseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCatalogService(courses repository.CourseRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CatalogService {
	return &catalogService{courses: courses, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Import loads a YAML or JSON catalog file and writes every course and
// progress record in a single transaction.
func (s *catalogService) Import(ctx context.Context, path string) (result *ImportResult, err error) {
	ctx, uc := startUseCase(ctx, s.observer, "catalog.import")
	defer func() { uc.end(ctx, err) }()

	file, err := importer.LoadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	if errs := importer.ValidateCatalog(file); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	cat := importer.Convert(file)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		courses := repository.NewSQLiteCourseRepo(tx)
		progress := repository.NewSQLiteProgressRepo(tx)
		for _, c := range cat.Courses {
			if err := courses.Upsert(ctx, c); err != nil {
				return err
			}
		}
		for _, p := range cat.Progress {
			if err := progress.Record(ctx, p.OwnerID, p.LessonID, p.Percent); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing catalog: %w", err)
	}

	result = &ImportResult{Courses: len(cat.Courses), Lessons: cat.LessonCount(), Progress: len(cat.Progress)}
	uc.set("courses", result.Courses)
	uc.set("lessons", result.Lessons)
	return result, nil
}

func (s *catalogService) List(ctx context.Context) ([]repository.CourseSummary, error) {
	return s.courses.List(ctx)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
