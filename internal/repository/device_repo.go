package repository

import (
	"context"
	"fmt"

	"github.com/Donny1114/Device-Management-System/internal/model"
)

type deviceRepository struct {
	connect PgConnectFunc
}

// NewDeviceRepository creates a postgres-backed DeviceRepository
func NewDeviceRepository(connect PgConnectFunc) DeviceRepository {
	return &deviceRepository{connect: connect}
}

// Create inserts a new device into the database
func (r *deviceRepository) Create(ctx context.Context, d *model.Device) error {
	conn, err := r.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closePg(ctx, conn)

	sql := `INSERT INTO devices (name, type, count, serial_number, issues, comment)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = conn.QueryRow(ctx, sql, d.Name, d.Type, d.Count, d.SerialNumber, d.Issues, d.Comment).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	return nil
}

// FindAll retrieves every device in storage order
func (r *deviceRepository) FindAll(ctx context.Context) ([]model.Device, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closePg(ctx, conn)

	sql := `SELECT id, name, type, count::text, serial_number, COALESCE(issues, ''), COALESCE(comment, '')
            FROM devices`
	rows, err := conn.Query(ctx, sql)
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
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device rows: %w", err)
	}
	return devices, nil
}
