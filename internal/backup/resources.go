package backup

import (
	"database/sql"

	"github.com/sealvault/sealvault-core/internal/device"
)

// Resources are the injected collaborators the backup protocol runs
// against: the local database, the device identity and the cloud storage.
// Production and test implementations satisfy the same interface.
type Resources interface {
	// DB is the local wallet database.
	DB() *sql.DB

	// DeviceID is this device's stable identifier.
	DeviceID() device.Identifier

	// BackupStorage is the cloud storage collaborator.
	BackupStorage() Storage
}

// CoreResources is the production Resources implementation: a plain bundle
// of the opened database, the persisted device identifier and a storage
// adapter.
type CoreResources struct {
	db       *sql.DB
	deviceID device.Identifier
	storage  Storage
}

func NewCoreResources(db *sql.DB, deviceID device.Identifier, storage Storage) *CoreResources {
	return &CoreResources{db: db, deviceID: deviceID, storage: storage}
}

func (r *CoreResources) DB() *sql.DB {
	return r.db
}

func (r *CoreResources) DeviceID() device.Identifier {
	return r.deviceID
}

func (r *CoreResources) BackupStorage() Storage {
	return r.storage
}
