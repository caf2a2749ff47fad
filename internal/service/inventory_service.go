package service

import (
	"context"
	"fmt"

	"github.com/inventra/inventra-backend/internal/automation"
	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/notifications"
	"github.com/inventra/inventra-backend/internal/repository"
)

// InventoryService manages equipment, licenses, and seat assignments.
type InventoryService interface {
	ListEquipment(ctx context.Context) ([]models.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*models.Equipment, error)
	// CreateEquipment runs EQUIPMENT_CREATED automation rules against the
	// record before it is persisted.
	CreateEquipment(ctx context.Context, e *models.Equipment) error
	UpdateEquipment(ctx context.Context, e *models.Equipment) error
	DeleteEquipment(ctx context.Context, id string) error

	ListLicenses(ctx context.Context) ([]models.License, error)
	GetLicense(ctx context.Context, id string) (*models.License, error)
	CreateLicense(ctx context.Context, l *models.License) error
	UpdateLicense(ctx context.Context, l *models.License) error
	DeleteLicense(ctx context.Context, id string) error

	ListAssignments(ctx context.Context, licenseID string) ([]models.LicenseAssignment, error)
	// SyncAssignments replaces the seat assignments of a license. Fails when
	// the desired set exceeds the license seat count.
	SyncAssignments(ctx context.Context, licenseID string, collaboratorIDs []string) error

	Snapshot(ctx context.Context) (*models.InventorySnapshot, error)
}

type inventoryService struct {
	equipment repository.EquipmentRepository
	licenses  repository.LicenseRepository
	snapshots repository.InventorySnapshotter
	engine    *automation.Engine
	notifier  *notifications.Notifier
	broadcast Broadcaster
}

func NewInventoryService(
	equipment repository.EquipmentRepository,
	licenses repository.LicenseRepository,
	snapshots repository.InventorySnapshotter,
	engine *automation.Engine,
	notifier *notifications.Notifier,
	broadcast Broadcaster,
) InventoryService {
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	return &inventoryService{
		equipment: equipment,
		licenses:  licenses,
		snapshots: snapshots,
		engine:    engine,
		notifier:  notifier,
		broadcast: broadcast,
	}
}

func (s *inventoryService) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	return s.equipment.ListEquipment(ctx)
}

func (s *inventoryService) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	return s.equipment.GetEquipment(ctx, id)
}

func (s *inventoryService) CreateEquipment(ctx context.Context, e *models.Equipment) error {
	if s.engine != nil {
		s.engine.ApplyEquipmentRules(e)
	}
	if err := s.equipment.CreateEquipment(ctx, e); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.Notify(models.NotifyEvent{
			EventType:     models.EventEquipmentCreated,
			ResourceTable: "equipment",
			ResourceID:    e.ID,
			Message:       e.Name,
		})
	}
	s.broadcast.BroadcastRefresh(DomainInventory, EventCreated, e)
	return nil
}

func (s *inventoryService) UpdateEquipment(ctx context.Context, e *models.Equipment) error {
	existing, err := s.equipment.GetEquipment(ctx, e.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("equipment %s not found", e.ID)
	}
	if err := s.equipment.UpdateEquipment(ctx, e); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainInventory, EventUpdated, e)
	return nil
}

func (s *inventoryService) DeleteEquipment(ctx context.Context, id string) error {
	if err := s.equipment.DeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainInventory, EventDeleted, nil)
	return nil
}

func (s *inventoryService) ListLicenses(ctx context.Context) ([]models.License, error) {
	return s.licenses.ListLicenses(ctx)
}

func (s *inventoryService) GetLicense(ctx context.Context, id string) (*models.License, error) {
	return s.licenses.GetLicense(ctx, id)
}

func (s *inventoryService) CreateLicense(ctx context.Context, l *models.License) error {
	if err := s.licenses.CreateLicense(ctx, l); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainInventory, EventCreated, l)
	return nil
}

func (s *inventoryService) UpdateLicense(ctx context.Context, l *models.License) error {
	existing, err := s.licenses.GetLicense(ctx, l.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("license %s not found", l.ID)
	}
	// Shrinking the pool below the current assignment count would orphan seats.
	if l.Seats < existing.Seats {
		assigned, err := s.licenses.ListAssignments(ctx, l.ID)
		if err != nil {
			return err
		}
		if l.Seats < len(assigned) {
			return fmt.Errorf("license %s has %d assigned seats, cannot reduce to %d", l.ID, len(assigned), l.Seats)
		}
	}
	if err := s.licenses.UpdateLicense(ctx, l); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainInventory, EventUpdated, l)
	return nil
}

func (s *inventoryService) DeleteLicense(ctx context.Context, id string) error {
	if err := s.licenses.DeleteLicense(ctx, id); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainInventory, EventDeleted, nil)
	return nil
}

func (s *inventoryService) ListAssignments(ctx context.Context, licenseID string) ([]models.LicenseAssignment, error) {
	return s.licenses.ListAssignments(ctx, licenseID)
}

func (s *inventoryService) SyncAssignments(ctx context.Context, licenseID string, collaboratorIDs []string) error {
	license, err := s.licenses.GetLicense(ctx, licenseID)
	if err != nil {
		return err
	}
	if license == nil {
		return fmt.Errorf("license %s not found", licenseID)
	}
	unique := dedupe(collaboratorIDs)
	if len(unique) > license.Seats {
		return fmt.Errorf("license %s has %d seats, cannot assign %d collaborators", licenseID, license.Seats, len(unique))
	}
	if err := s.licenses.SyncAssignments(ctx, licenseID, unique); err != nil {
		return err
	}
	s.broadcast.BroadcastRefresh(DomainInventory, EventUpdated, license)
	return nil
}

func (s *inventoryService) Snapshot(ctx context.Context) (*models.InventorySnapshot, error) {
	return s.snapshots.InventorySnapshot(ctx)
}

// dedupe preserves first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
