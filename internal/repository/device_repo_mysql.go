package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Donny1114/Device-Management-System/internal/model"
)

type mysqlDeviceRepository struct {
	db *sql.DB
}

// NewMySQLDeviceRepository creates a mysql-backed DeviceRepository
func NewMySQLDeviceRepository(db *sql.DB) DeviceRepository {
	return &mysqlDeviceRepository{db: db}
}

// Create inserts a new device into the database
func (r *mysqlDeviceRepository) Create(ctx context.Context, d *model.Device) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	query := `INSERT INTO devices (name, type, count, serial_number, issues, comment) VALUES (?, ?, ?, ?, ?, ?)`
	result, err := conn.ExecContext(ctx, query, d.Name, d.Type, d.Count, d.SerialNumber, d.Issues, d.Comment)
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get device id: %w", err)
	}
	d.ID = id
	return nil
}

// FindAll retrieves every device in storage order
func (r *mysqlDeviceRepository) FindAll(ctx context.Context) ([]model.Device, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	query := `SELECT id, name, type, count, serial_number, COALESCE(issues, ''), COALESCE(comment, '') FROM devices`
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	devices := []model.Device{}
	for rows.Next() {
		var d model.Device
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.Count, &d.SerialNumber, &d.Issues, &d.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan device row: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device rows: %w", err)
	}
	return devices, nil
}
