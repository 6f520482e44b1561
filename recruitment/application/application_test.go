package application

import (
	"testing"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationStartsAtFirstStep(t *testing.T) {
	now := time.Now()
	app := NewApplication(3, 7, now)

	assert.Equal(t, 0, app.CurrentInterviewStep)
	assert.Equal(t, now, app.ApplicationDate)
	assert.EqualValues(t, 3, app.CandidateID)
	assert.EqualValues(t, 7, app.PositionID)
}

func TestMoveToStep(t *testing.T) {
	tests := []struct {
		name    string
		step    int
		total   int
		wantErr bool
	}{
		{"first", 0, 3, false},
		{"last", 2, 3, false},
		{"negative", -1, 3, true},
		{"past end", 3, 3, true},
		{"no steps", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApplication(1, 1, time.Now())
			app.CurrentInterviewStep = 1

			err := app.MoveToStep(tt.step, tt.total)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errx.IsCode(err, CodeInvalidInterviewStep))
				assert.True(t, errx.IsType(err, errx.TypeValidation))
				assert.Equal(t, 1, app.CurrentInterviewStep, "state unchanged on rejection")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.step, app.CurrentInterviewStep)
		})
	}
}

func TestMoveToStepIsIdempotent(t *testing.T) {
	app := NewApplication(1, 1, time.Now())
	require.NoError(t, app.MoveToStep(1, 2))
	require.NoError(t, app.MoveToStep(1, 2))
	assert.Equal(t, 1, app.CurrentInterviewStep)
}
