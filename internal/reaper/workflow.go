package reaper

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// WorkflowID is fixed so that only one cron run exists per namespace.
	WorkflowID = "reap-expired-holds"
	// CronSchedule runs the sweep every minute.
	CronSchedule = "* * * * *"
	// ActivityName is the registered name of the sweep activity.
	ActivityName = "ReapExpiredHolds"
)

// Activities exposes the reaper to a Temporal worker.
type Activities struct {
	reaper *Reaper
}

func NewActivities(r *Reaper) *Activities {
	return &Activities{reaper: r}
}

// ReapExpiredHolds activity - deletes expired holds and reports how many.
func (a *Activities) ReapExpiredHolds(ctx context.Context) (int, error) {
	logger := activity.GetLogger(ctx)

	removed, err := a.reaper.Sweep(ctx)
	if err != nil {
		logger.Error("Failed to reap expired holds", "error", err)
		return 0, err
	}
	logger.Info("Reaped expired holds", "count", removed)
	return removed, nil
}

// ReapExpiredHoldsWorkflow runs one sweep. It is started on CronSchedule.
func ReapExpiredHoldsWorkflow(ctx workflow.Context) (int, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	})

	var removed int
	if err := workflow.ExecuteActivity(ctx, ActivityName).Get(ctx, &removed); err != nil {
		workflow.GetLogger(ctx).Error("Reap workflow failed", "error", err)
		return 0, err
	}
	return removed, nil
}

// Registry is satisfied by a worker and by the test workflow environment.
type Registry interface {
	RegisterWorkflow(w interface{})
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register adds the workflow and its activity to w.
func Register(w Registry, acts *Activities) {
	w.RegisterWorkflow(ReapExpiredHoldsWorkflow)
	w.RegisterActivityWithOptions(acts.ReapExpiredHolds, activity.RegisterOptions{Name: ActivityName})
}

// StartSchedule starts the cron workflow on taskQueue. If it is already
// running the existing run is kept.
func StartSchedule(ctx context.Context, c client.Client, taskQueue string) error {
	_, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           WorkflowID,
		TaskQueue:    taskQueue,
		CronSchedule: CronSchedule,
	}, ReapExpiredHoldsWorkflow)
	return err
}
