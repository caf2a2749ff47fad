package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/models"
)

func TestProcurementCreateDefaultsAndSpecValidation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := NewProcurementService(repo, nil)

	p := &models.ProcurementRequest{
		ItemName: "Dev laptop",
		ItemKind: models.ItemHardware,
		Spec: &models.ItemSpec{
			Kind:     models.ItemHardware,
			Hardware: &models.HardwareSpec{CPU: "8 cores", RAM: "32GB"},
		},
	}
	require.NoError(t, svc.Create(ctx, p))
	assert.Equal(t, models.ProcurementPending, p.Status)
	assert.Equal(t, 1, p.Quantity)

	stored, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.Spec)
	assert.Equal(t, "32GB", stored.Spec.Hardware.RAM)
}

func TestProcurementCreateRejectsMismatchedSpec(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewProcurementService(repo, nil)

	p := &models.ProcurementRequest{
		ItemName: "Editor licenses",
		ItemKind: models.ItemSoftware,
		Spec: &models.ItemSpec{
			Kind:     models.ItemHardware,
			Hardware: &models.HardwareSpec{CPU: "irrelevant"},
		},
	}
	assert.Error(t, svc.Create(context.Background(), p))
}

func TestProcurementStatusTransitions(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := NewProcurementService(repo, nil)

	p := &models.ProcurementRequest{ItemName: "Monitors", ItemKind: models.ItemHardware}
	require.NoError(t, svc.Create(ctx, p))

	// pending -> received skips approval and ordering.
	p.Status = models.ProcurementReceived
	assert.Error(t, svc.Update(ctx, p))

	p.Status = models.ProcurementApproved
	require.NoError(t, svc.Update(ctx, p))
	p.Status = models.ProcurementOrdered
	require.NoError(t, svc.Update(ctx, p))
	p.Status = models.ProcurementReceived
	require.NoError(t, svc.Update(ctx, p))

	// received is terminal.
	p.Status = models.ProcurementPending
	assert.Error(t, svc.Update(ctx, p))
}

func TestProcurementRejectedFromApproved(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	svc := NewProcurementService(repo, nil)

	p := &models.ProcurementRequest{ItemName: "Printers", ItemKind: models.ItemHardware}
	require.NoError(t, svc.Create(ctx, p))

	p.Status = models.ProcurementApproved
	require.NoError(t, svc.Update(ctx, p))
	p.Status = models.ProcurementRejected
	require.NoError(t, svc.Update(ctx, p))
}
