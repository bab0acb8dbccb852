package testutil

import (
	"time"

	"github.com/hirewire/hirewire-api/internal/domain/model"
)

// ApplicationBuilder provides a fluent interface for building Application
// fixtures for tests.
type ApplicationBuilder struct {
	app model.Application
}

// NewApplication creates a new ApplicationBuilder with sensible defaults.
func NewApplication() *ApplicationBuilder {
	return &ApplicationBuilder{
		app: model.Application{
			ID:            "app-1",
			JobID:         "job-1",
			CandidateName: "Casey Candidate",
			Source:        "referral",
			Status:        model.ApplicationStatusActive,
			AppliedAt:     TestTime(),
		},
	}
}

// WithID sets the application ID.
func (b *ApplicationBuilder) WithID(id string) *ApplicationBuilder {
	b.app.ID = id
	return b
}

// WithJob sets the job the application belongs to.
func (b *ApplicationBuilder) WithJob(jobID string) *ApplicationBuilder {
	b.app.JobID = jobID
	return b
}

// WithSource sets the acquisition source.
func (b *ApplicationBuilder) WithSource(source string) *ApplicationBuilder {
	b.app.Source = source
	return b
}

// WithStatus sets the application status.
func (b *ApplicationBuilder) WithStatus(status model.ApplicationStatus) *ApplicationBuilder {
	b.app.Status = status
	return b
}

// WithStage sets the cached current stage.
func (b *ApplicationBuilder) WithStage(stageID string, changedAt time.Time) *ApplicationBuilder {
	b.app.CurrentStageID = &stageID
	b.app.StageChangedAt = &changedAt
	return b
}

// WithAppliedAt sets the application timestamp.
func (b *ApplicationBuilder) WithAppliedAt(t time.Time) *ApplicationBuilder {
	b.app.AppliedAt = t
	return b
}

// Build returns the constructed application.
func (b *ApplicationBuilder) Build() *model.Application {
	app := b.app
	return &app
}

// TransitionBuilder provides a fluent interface for building StageTransition
// fixtures for tests.
type TransitionBuilder struct {
	tr model.StageTransition
}

// NewTransition creates a new TransitionBuilder with sensible defaults.
func NewTransition() *TransitionBuilder {
	return &TransitionBuilder{
		tr: model.StageTransition{
			ID:            "tr-1",
			ApplicationID: "app-1",
			ToStageID:     "stage-1",
			ChangedAt:     TestTime(),
			ChangedBy:     "user-1",
		},
	}
}

// WithID sets the transition ID.
func (b *TransitionBuilder) WithID(id string) *TransitionBuilder {
	b.tr.ID = id
	return b
}

// WithApplication sets the application the transition belongs to.
func (b *TransitionBuilder) WithApplication(appID string) *TransitionBuilder {
	b.tr.ApplicationID = appID
	return b
}

// From sets the origin stage. A nil origin marks entry into the pipeline.
func (b *TransitionBuilder) From(stageID string) *TransitionBuilder {
	b.tr.FromStageID = &stageID
	return b
}

// To sets the destination stage.
func (b *TransitionBuilder) To(stageID string) *TransitionBuilder {
	b.tr.ToStageID = stageID
	return b
}

// At sets the transition timestamp.
func (b *TransitionBuilder) At(t time.Time) *TransitionBuilder {
	b.tr.ChangedAt = t
	return b
}

// By sets the actor who moved the application.
func (b *TransitionBuilder) By(userID string) *TransitionBuilder {
	b.tr.ChangedBy = userID
	return b
}

// Build returns the constructed transition.
func (b *TransitionBuilder) Build() *model.StageTransition {
	tr := b.tr
	return &tr
}
