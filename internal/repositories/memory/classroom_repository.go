package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
)

// ClassroomRepository is an in-memory classroom store.
type ClassroomRepository struct {
	mu         sync.RWMutex
	classrooms map[string]domain.Classroom
	order      []string
}

var _ repositories.ClassroomRepositoryFacade = (*ClassroomRepository)(nil)

// NewClassroomRepository creates an empty classroom store.
func NewClassroomRepository() *ClassroomRepository {
	return &ClassroomRepository{classrooms: make(map[string]domain.Classroom)}
}

func (r *ClassroomRepository) SaveClassroom(_ context.Context, classroom domain.Classroom) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classrooms[classroom.ClassroomID]; exists {
		return fmt.Errorf("%w: classroom %s", apperrors.ErrDuplicate, classroom.ClassroomID)
	}
	r.classrooms[classroom.ClassroomID] = classroom
	r.order = append(r.order, classroom.ClassroomID)
	return nil
}

func (r *ClassroomRepository) FindClassroomByID(_ context.Context, classroomID string) (*domain.Classroom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classroom, ok := r.classrooms[classroomID]
	if !ok {
		return nil, fmt.Errorf("%w: classroom %s", apperrors.ErrNotFound, classroomID)
	}
	return &classroom, nil
}

func (r *ClassroomRepository) ListClassrooms(_ context.Context) ([]domain.Classroom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classrooms := make([]domain.Classroom, 0, len(r.order))
	for _, id := range r.order {
		classrooms = append(classrooms, r.classrooms[id])
	}
	return classrooms, nil
}

func (r *ClassroomRepository) ListClassroomsByInstitution(_ context.Context, institutionID string) ([]domain.Classroom, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classrooms := make([]domain.Classroom, 0)
	for _, id := range r.order {
		if r.classrooms[id].InstitutionID == institutionID {
			classrooms = append(classrooms, r.classrooms[id])
		}
	}
	return classrooms, nil
}

func (r *ClassroomRepository) UpdateClassroom(_ context.Context, classroom domain.Classroom) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classrooms[classroom.ClassroomID]; !ok {
		return fmt.Errorf("%w: classroom %s", apperrors.ErrNotFound, classroom.ClassroomID)
	}
	r.classrooms[classroom.ClassroomID] = classroom
	return nil
}

func (r *ClassroomRepository) DeleteClassroom(_ context.Context, classroomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classrooms[classroomID]; !ok {
		return fmt.Errorf("%w: classroom %s", apperrors.ErrNotFound, classroomID)
	}
	delete(r.classrooms, classroomID)
	for i, id := range r.order {
		if id == classroomID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
