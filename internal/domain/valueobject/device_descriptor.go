package valueobject

import (
	"strings"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
)

// DeviceDescriptor identifies the configuration being traded in.
type DeviceDescriptor struct {
	Brand   string
	Model   string
	Storage string
	Color   string
}

// NewDeviceDescriptor trims the fields and requires brand, model and storage.
func NewDeviceDescriptor(brand, model, storage, color string) (DeviceDescriptor, error) {
	d := DeviceDescriptor{
		Brand:   strings.TrimSpace(brand),
		Model:   strings.TrimSpace(model),
		Storage: strings.TrimSpace(storage),
		Color:   strings.TrimSpace(color),
	}
	switch {
	case d.Brand == "":
		return DeviceDescriptor{}, domainerr.Validation("device.brand", "is required")
	case d.Model == "":
		return DeviceDescriptor{}, domainerr.Validation("device.model", "is required")
	case d.Storage == "":
		return DeviceDescriptor{}, domainerr.Validation("device.storage", "is required")
	}
	return d, nil
}

// String renders "Brand Model Storage".
func (d DeviceDescriptor) String() string {
	return strings.Join([]string{d.Brand, d.Model, d.Storage}, " ")
}
