package model

import "strconv"

// Device type catalogue. Values are stored verbatim, so the historical
// "Blueetooth" spelling stays.
const (
	DeviceTypeProbeBluetooth  = "Probe-Blueetooth"
	DeviceTypeProbeSDI12Side  = "Probe-SDI-12-Side"
	DeviceTypeProbeSDI12RC    = "Probe-SDI-12-R/C"
	DeviceTypeProbeStage2Side = "Probe-Stage2-Side"
	DeviceTypeProbeStage2RC   = "Probe-Stage2-R/C"
	DeviceTypeBoard           = "Board"
	DeviceTypeOther           = "Other"
)

// DeviceTypes is the closed list offered by every data-entry surface, in display order
var DeviceTypes = []string{
	DeviceTypeProbeBluetooth,
	DeviceTypeProbeSDI12Side,
	DeviceTypeProbeSDI12RC,
	DeviceTypeProbeStage2Side,
	DeviceTypeProbeStage2RC,
	DeviceTypeBoard,
	DeviceTypeOther,
}

// DeviceColumns are the devices table columns in select order.
// Spreadsheet and CSV exports use them as the header row.
var DeviceColumns = []string{"id", "name", "type", "count", "serial_number", "issues", "comment"}

// IsDeviceType reports whether t belongs to the catalogue
func IsDeviceType(t string) bool {
	for _, known := range DeviceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Device represents a row of the device registry
type Device struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Count        string `json:"count"` // Stored as entered, never parsed
	SerialNumber string `json:"serial_number"`
	Issues       string `json:"issues"`
	Comment      string `json:"comment"`
}

// Row returns the device as a spreadsheet/CSV record in DeviceColumns order
func (d Device) Row() []string {
	return []string{
		strconv.FormatInt(d.ID, 10),
		d.Name,
		d.Type,
		d.Count,
		d.SerialNumber,
		d.Issues,
		d.Comment,
	}
}

// AddDeviceRequest is the input of the add-device form
type AddDeviceRequest struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Count        string `json:"count"`
	SerialNumber string `json:"serial_number"`
	Issues       string `json:"issues"`
	Comment      string `json:"comment"`
}
