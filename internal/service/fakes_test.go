package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/domain"
	"github.com/alen-nirmal29/personalized-fitness-app-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepository is an in-memory repository.UserRepository.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepository) UpdateMeasurements(ctx context.Context, id primitive.ObjectID, current, progress *domain.BodyMeasurements) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if current != nil {
		c := *current
		u.CurrentMeasurements = &c
	}
	if progress != nil {
		p := *progress
		u.ProgressMeasurements = &p
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeUserRepository) AddProgressPhoto(ctx context.Context, id primitive.ObjectID, photo domain.ProgressPhoto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ProgressPhotos = append(u.ProgressPhotos, photo)
	return nil
}

// fakePlanRepository is an in-memory repository.PlanRepository.
type fakePlanRepository struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]*domain.WorkoutPlan
}

func newFakePlanRepository() *fakePlanRepository {
	return &fakePlanRepository{plans: make(map[primitive.ObjectID]*domain.WorkoutPlan)}
}

func (r *fakePlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	stored := *plan
	stored.ID = id
	r.plans[id] = &stored
	return id, nil
}

func (r *fakePlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePlanRepository) GetCurrentByUser(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.UserID == userID && p.IsCurrent {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepository) SetCurrent(ctx context.Context, userID, planID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.plans[planID]
	if !ok || target.UserID != userID {
		return repository.ErrNotFound
	}
	for _, p := range r.plans {
		if p.UserID == userID {
			p.IsCurrent = false
		}
	}
	target.IsCurrent = true
	return nil
}

func (r *fakePlanRepository) UpdateProgress(ctx context.Context, planID primitive.ObjectID, percent float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[planID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Progress = percent
	return nil
}

// fakeStateRepository is an in-memory repository.WorkoutStateRepository.
type fakeStateRepository struct {
	mu     sync.Mutex
	states map[primitive.ObjectID]*domain.WorkoutState
}

func newFakeStateRepository() *fakeStateRepository {
	return &fakeStateRepository{states: make(map[primitive.ObjectID]*domain.WorkoutState)}
}

func (r *fakeStateRepository) Load(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.states[userID]; ok {
		return s, nil
	}
	return &domain.WorkoutState{}, nil
}

func (r *fakeStateRepository) Save(ctx context.Context, userID primitive.ObjectID, state *domain.WorkoutState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = state
	return nil
}

// fakeFileStorage returns deterministic URLs instead of talking to S3.
type fakeFileStorage struct {
	mu         sync.Mutex
	uploadKeys []string
	failUpload error
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expiry time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpload != nil {
		return "", s.failUpload
	}
	s.uploadKeys = append(s.uploadKeys, objectKey)
	return fmt.Sprintf("https://storage.example.com/upload/%s", objectKey), nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.example.com/download/%s", objectKey), nil
}

func (s *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return nil
}
