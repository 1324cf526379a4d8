package quote

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxEligibleAge is the oldest age, in completed years, that can be quoted.
const MaxEligibleAge = 70

var (
	ErrNegativePremium = errors.New("negative premium")
	ErrAgeOutOfRange   = errors.New("age outside eligible range")
)

//go:embed pricing.yaml
var defaultPricingData []byte

// PricingTable maps an age to its monthly premium. It is read-only once built.
type PricingTable struct {
	premiums map[int]int
}

type pricingFile struct {
	Currency string      `yaml:"currency"`
	Premiums map[int]int `yaml:"premiums"`
}

// NewPricingTable validates and copies premiums into a new table.
func NewPricingTable(premiums map[int]int) (*PricingTable, error) {
	table := &PricingTable{premiums: make(map[int]int, len(premiums))}
	for age, premium := range premiums {
		if age < 0 || age > MaxEligibleAge {
			return nil, fmt.Errorf("age %d: %w", age, ErrAgeOutOfRange)
		}
		if premium < 0 {
			return nil, fmt.Errorf("age %d premium %d: %w", age, premium, ErrNegativePremium)
		}
		table.premiums[age] = premium
	}
	return table, nil
}

// ParsePricingTable parses a YAML pricing document.
func ParsePricingTable(data []byte) (*PricingTable, error) {
	var file pricingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing pricing table: %w", err)
	}
	return NewPricingTable(file.Premiums)
}

// LoadPricingTable reads a YAML pricing document from disk.
func LoadPricingTable(path string) (*PricingTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading pricing table: %w", err)
	}
	return ParsePricingTable(data)
}

// DefaultPricingTable returns the table compiled into the binary.
func DefaultPricingTable() *PricingTable {
	table, err := ParsePricingTable(defaultPricingData)
	if err != nil {
		panic(fmt.Sprintf("embedded pricing table: %v", err))
	}
	return table
}

// Lookup returns the premium for an exact age.
func (t *PricingTable) Lookup(age int) (int, bool) {
	premium, ok := t.premiums[age]
	return premium, ok
}

// Len is the number of ages with a premium.
func (t *PricingTable) Len() int {
	return len(t.premiums)
}

// Missing lists eligible ages with no premium, in ascending order.
func (t *PricingTable) Missing() []int {
	var missing []int
	for age := 0; age <= MaxEligibleAge; age++ {
		if _, ok := t.premiums[age]; !ok {
			missing = append(missing, age)
		}
	}
	return missing
}
