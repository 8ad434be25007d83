package memory

import (
	"context"
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"

	"github.com/google/uuid"
)

type deviceRepository struct {
	g guard
}

// NewDeviceRepository returns a DeviceRepository backed by the store. Deleted devices are removed outright.
func NewDeviceRepository(store *Store) repository.DeviceRepository {
	return &deviceRepository{g: guard{store: store}}
}

func cloneDevice(d *entity.Device) *entity.Device {
	if d == nil {
		return nil
	}
	cp := *d

	return &cp
}

func (r *deviceRepository) CreateDevice(_ context.Context, device *entity.Device) error {
	var err error
	r.g.write(func() {
		s := r.g.store
		for _, existing := range s.devices {
			if existing.AccountID == device.AccountID && existing.DeviceID == device.DeviceID {
				err = repository.ErrDuplicateDevice

				return
			}
		}
		if device.ID == uuid.Nil {
			device.ID = uuid.New()
		}
		s.stamp(device.ID, &device.CreatedAt, &device.UpdatedAt)
		s.devices[device.ID] = cloneDevice(device)
	})

	return err
}

func (r *deviceRepository) FindDeviceByID(_ context.Context, id uuid.UUID) (*entity.Device, error) {
	var found *entity.Device
	r.g.read(func() {
		found = cloneDevice(r.g.store.devices[id])
	})
	if found == nil {
		return nil, repository.ErrDeviceNotFound
	}

	return found, nil
}

func (r *deviceRepository) FindDevicesByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.Device, error) {
	return r.list(accountID, false), nil
}

func (r *deviceRepository) FindActiveDevicesByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.Device, error) {
	return r.list(accountID, true), nil
}

func (r *deviceRepository) list(accountID uuid.UUID, activeOnly bool) []*entity.Device {
	devices := make([]*entity.Device, 0)
	r.g.read(func() {
		for _, d := range r.g.store.devices {
			if d.AccountID != accountID || (activeOnly && !d.IsActive) {
				continue
			}
			devices = append(devices, cloneDevice(d))
		}
		newestFirst(r.g.store, devices, func(d *entity.Device) (uuid.UUID, time.Time) { return d.ID, d.CreatedAt })
	})

	return devices
}

func (r *deviceRepository) UpdateFCMToken(_ context.Context, deviceID uuid.UUID, fcmToken string) error {
	var err error
	r.g.write(func() {
		s := r.g.store
		d, ok := s.devices[deviceID]
		if !ok {
			err = repository.ErrDeviceNotFound

			return
		}
		d.FCMToken = fcmToken
		d.UpdatedAt = s.now()
	})

	return err
}

func (r *deviceRepository) DeleteDevice(_ context.Context, id uuid.UUID) error {
	var err error
	r.g.write(func() {
		s := r.g.store
		if _, ok := s.devices[id]; !ok {
			err = repository.ErrDeviceNotFound

			return
		}
		delete(s.devices, id)
		delete(s.order, id)
	})

	return err
}
