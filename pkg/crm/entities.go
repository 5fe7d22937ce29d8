package crm

import (
	"encoding/json"
	"fmt"
)

// Typed domain entities for the resources that carry an entity mapping in
// the catalog. Conversion consumes a Response's normalized content; the
// pipeline itself only guarantees that shape is stable.

// Lead represents one record of the Leads resource.
type Lead struct {
	ID      string `json:"id"      yaml:"id"`
	Name    string `json:"name"    yaml:"name"`
	Company string `json:"company" yaml:"company"`
	Email   string `json:"email"   yaml:"email"`
	Phone   string `json:"phone"   yaml:"phone"`
	Owner   string `json:"owner"   yaml:"owner"`
	Source  string `json:"source"  yaml:"source"`
}

// Contact represents one record of the Contacts resource.
type Contact struct {
	ID        string `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	AccountID string `json:"account_id" yaml:"account_id"`
	Email     string `json:"email"      yaml:"email"`
	Phone     string `json:"phone"      yaml:"phone"`
	Owner     string `json:"owner"      yaml:"owner"`
}

// Account represents one record of the Accounts resource.
type Account struct {
	ID       string `json:"id"       yaml:"id"`
	Name     string `json:"name"     yaml:"name"`
	Website  string `json:"website"  yaml:"website"`
	Industry string `json:"industry" yaml:"industry"`
	Owner    string `json:"owner"    yaml:"owner"`
}

// Potential represents one record of the Potentials resource.
type Potential struct {
	ID        string `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	AccountID string `json:"account_id" yaml:"account_id"`
	Stage     string `json:"stage"      yaml:"stage"`
	Amount    string `json:"amount"     yaml:"amount"`
	CloseDate string `json:"close_date" yaml:"close_date"`
}

// DecodeRecord converts one normalized record into a typed entity.
func DecodeRecord(record Record, out interface{}) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	err = json.Unmarshal(raw, out)
	if err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}

	return nil
}

// ToEntities converts a Response's records into typed entities, preserving
// vendor order.
func ToEntities[T any](resp *Response) ([]T, error) {
	if !resp.ConvertibleToEntity() {
		return []T{}, nil
	}

	entities := make([]T, 0, resp.Count())

	for i, record := range resp.Records() {
		var entity T

		err := DecodeRecord(record, &entity)
		if err != nil {
			return nil, fmt.Errorf("converting record %d: %w", i, err)
		}

		entities = append(entities, entity)
	}

	return entities, nil
}
