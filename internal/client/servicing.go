package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/erazemk/konzola/internal/model"
)

// ServicingMachines returns released machines with their servicing flags.
func (c *Client) ServicingMachines(ctx context.Context) ([]model.ServicingMachine, error) {
	return getList[model.ServicingMachine](ctx, c, "/api/forServicing")
}

func serviceRecordsPath(kind string) (string, error) {
	switch kind {
	case model.ServiceMaintenance:
		return "/api/maintenanceRecords", nil
	case model.ServiceCalibration:
		return "/api/calibrationRecords", nil
	case model.ServiceWarranty:
		return "/api/warrantyClaims", nil
	}
	return "", fmt.Errorf("unknown service record kind %q", kind)
}

// serviceRecordWire carries every date field name the backend uses.
type serviceRecordWire struct {
	model.ServiceRecord
	MaintenanceDate model.Date `json:"maintenance_date"`
	CalibrationDate model.Date `json:"calibration_date"`
	ClaimDate       model.Date `json:"claim_date"`
}

func (w serviceRecordWire) record(kind string) model.ServiceRecord {
	r := w.ServiceRecord
	switch kind {
	case model.ServiceCalibration:
		r.Date = w.CalibrationDate
	case model.ServiceWarranty:
		r.Date = w.ClaimDate
	default:
		r.Date = w.MaintenanceDate
	}
	return r
}

// ServiceRecords returns the log of one kind for a serial number.
func (c *Client) ServiceRecords(ctx context.Context, kind, serial string) ([]model.ServiceRecord, error) {
	base, err := serviceRecordsPath(kind)
	if err != nil {
		return nil, err
	}
	path := base + "/" + url.PathEscape(serial)

	var wire []serviceRecordWire
	if err := c.Get(ctx, path, &wire); err != nil {
		return nil, err
	}

	records := make([]model.ServiceRecord, 0, len(wire))
	for i, w := range wire {
		r := w.record(kind)
		if err := r.Validate(); err != nil {
			return nil, &SchemaError{Path: path, Err: fmt.Errorf("item %d: %w", i, err)}
		}
		records = append(records, r)
	}
	return records, nil
}

// ServiceRecordPayload renders a record the way the backend expects it for
// kind, with the date under the kind's field name.
func ServiceRecordPayload(kind string, r model.ServiceRecord) map[string]any {
	return map[string]any{
		"serial_number":              r.SerialNumber,
		model.ServiceDateField(kind): r.Date,
		"description":                r.Description,
		"performed_by":               r.PerformedBy,
	}
}

// CreateServiceRecord appends a record to a serial's log.
func (c *Client) CreateServiceRecord(ctx context.Context, kind string, r model.ServiceRecord) error {
	path, err := serviceRecordsPath(kind)
	if err != nil {
		return err
	}
	return c.Post(ctx, path, ServiceRecordPayload(kind, r), nil)
}

// UpdateServiceRecord replaces a record.
func (c *Client) UpdateServiceRecord(ctx context.Context, kind string, r model.ServiceRecord) error {
	base, err := serviceRecordsPath(kind)
	if err != nil {
		return err
	}
	return c.Put(ctx, fmt.Sprintf("%s/%d", base, r.ID), ServiceRecordPayload(kind, r), nil)
}

// DeleteServiceRecord deletes a record.
func (c *Client) DeleteServiceRecord(ctx context.Context, kind string, id int64) error {
	base, err := serviceRecordsPath(kind)
	if err != nil {
		return err
	}
	return c.Delete(ctx, fmt.Sprintf("%s/%d", base, id))
}

