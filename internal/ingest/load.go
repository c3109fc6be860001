package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/invoicematch/internal/models"
)

// LoadInvoices reads a JSON or YAML list of invoices and validates it.
func (v *Validator) LoadInvoices(path string) ([]models.ContractorInvoice, error) {
	var invoices []models.ContractorInvoice
	if err := decodeFile(path, &invoices); err != nil {
		return nil, err
	}
	if err := v.Invoices(invoices); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return invoices, nil
}

// LoadEntries reads a JSON or YAML list of billing entries and validates it.
func (v *Validator) LoadEntries(path string) ([]models.BillingEntry, error) {
	var entries []models.BillingEntry
	if err := decodeFile(path, &entries); err != nil {
		return nil, err
	}
	if err := v.Entries(entries); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// decodeFile picks the decoder from the file extension: .yaml/.yml or JSON otherwise.
func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
