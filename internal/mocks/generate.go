// Package mocks provides mock implementations for testing the hirewire analytics service.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for JobRepository interface from internal/core package.
// This creates MockJobRepository with methods for all JobRepository interface methods:
// Create, GetByID, List, IDs, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/hirewire/hirewire-api/internal/core JobRepository

// Generate mock for ApplicationRepository interface from internal/core package.
// This creates MockApplicationRepository with methods for all ApplicationRepository interface methods:
// Create, GetByID, ListByJobIDs, AdvanceStage, UpdateStatus
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=application_repository_mock.go github.com/hirewire/hirewire-api/internal/core ApplicationRepository

// Generate mock for StageRepository interface from internal/core package.
// This creates MockStageRepository with methods for all StageRepository interface methods:
// Create, GetByID, ListAll
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=stage_repository_mock.go github.com/hirewire/hirewire-api/internal/core StageRepository

// Generate mock for TransitionRepository interface from internal/core package.
// This creates MockTransitionRepository with methods for all TransitionRepository interface methods:
// ListByApplicationIDs, ListHistory
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=transition_repository_mock.go github.com/hirewire/hirewire-api/internal/core TransitionRepository

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// GetByID, GetByIDs
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/hirewire/hirewire-api/internal/core UserRepository
