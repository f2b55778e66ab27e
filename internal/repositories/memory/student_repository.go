package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
)

// StudentRepository is an in-memory student store.
type StudentRepository struct {
	mu       sync.RWMutex
	students map[string]domain.Student
	byNIS    map[string]string
	order    []string
}

var _ repositories.StudentRepositoryFacade = (*StudentRepository)(nil)

// NewStudentRepository creates an empty student store.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		students: make(map[string]domain.Student),
		byNIS:    make(map[string]string),
	}
}

func (r *StudentRepository) SaveStudent(_ context.Context, student domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.students[student.StudentID]; exists {
		return fmt.Errorf("%w: student %s", apperrors.ErrDuplicate, student.StudentID)
	}
	if _, exists := r.byNIS[student.NIS]; exists {
		return fmt.Errorf("%w: NIS %s", apperrors.ErrDuplicate, student.NIS)
	}
	r.students[student.StudentID] = student
	r.byNIS[student.NIS] = student.StudentID
	r.order = append(r.order, student.StudentID)
	return nil
}

func (r *StudentRepository) FindStudentByID(_ context.Context, studentID string) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	student, ok := r.students[studentID]
	if !ok {
		return nil, fmt.Errorf("%w: student %s", apperrors.ErrNotFound, studentID)
	}
	return &student, nil
}

func (r *StudentRepository) FindStudentByNIS(_ context.Context, nis string) (*domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNIS[nis]
	if !ok {
		return nil, fmt.Errorf("%w: NIS %s", apperrors.ErrNotFound, nis)
	}
	student := r.students[id]
	return &student, nil
}

func (r *StudentRepository) ListStudents(_ context.Context) ([]domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]domain.Student, 0, len(r.order))
	for _, id := range r.order {
		students = append(students, r.students[id])
	}
	return students, nil
}

func (r *StudentRepository) ListStudentsByClassroom(_ context.Context, classroomID string) ([]domain.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]domain.Student, 0)
	for _, id := range r.order {
		if r.students[id].ClassroomID == classroomID {
			students = append(students, r.students[id])
		}
	}
	return students, nil
}

func (r *StudentRepository) UpdateStudent(_ context.Context, student domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.students[student.StudentID]
	if !ok {
		return fmt.Errorf("%w: student %s", apperrors.ErrNotFound, student.StudentID)
	}
	if existing.NIS != student.NIS {
		if _, taken := r.byNIS[student.NIS]; taken {
			return fmt.Errorf("%w: NIS %s", apperrors.ErrDuplicate, student.NIS)
		}
		delete(r.byNIS, existing.NIS)
		r.byNIS[student.NIS] = student.StudentID
	}
	r.students[student.StudentID] = student
	return nil
}

func (r *StudentRepository) DeleteStudent(_ context.Context, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.students[studentID]
	if !ok {
		return fmt.Errorf("%w: student %s", apperrors.ErrNotFound, studentID)
	}
	delete(r.students, studentID)
	delete(r.byNIS, student.NIS)
	for i, id := range r.order {
		if id == studentID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
