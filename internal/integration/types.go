// Package integration defines the closed label sets shared by the modules
// that consume the AAIN configuration substrate.
package integration

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Status labels an integration point.
type Status string

const (
	StatusActive      Status = "active"
	StatusPending     Status = "pending"
	StatusDegraded    Status = "degraded"
	StatusFailed      Status = "failed"
	StatusOptimizing  Status = "optimizing"
	StatusMaintenance Status = "maintenance"
)

var statuses = map[Status]struct{}{
	StatusActive:      {},
	StatusPending:     {},
	StatusDegraded:    {},
	StatusFailed:      {},
	StatusOptimizing:  {},
	StatusMaintenance: {},
}

// Statuses returns every defined status label.
func Statuses() []Status {
	return []Status{
		StatusActive, StatusPending, StatusDegraded,
		StatusFailed, StatusOptimizing, StatusMaintenance,
	}
}

func (s Status) String() string { return string(s) }

// Valid reports whether s is one of the defined labels.
func (s Status) Valid() bool {
	_, ok := statuses[s]
	return ok
}

// ParseStatus converts a raw string into a Status, rejecting anything
// outside the defined set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown integration status %q", raw)
	}
	return s, nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ModuleType labels the kind of module behind an integration point.
type ModuleType string

const (
	ModuleDataProcessor  ModuleType = "data_processor"
	ModuleAPIGateway     ModuleType = "api_gateway"
	ModuleMLModel        ModuleType = "ml_model"
	ModuleDatabase       ModuleType = "database"
	ModuleWorkflowEngine ModuleType = "workflow_engine"
	ModuleCustom         ModuleType = "custom"
)

var moduleTypes = map[ModuleType]struct{}{
	ModuleDataProcessor:  {},
	ModuleAPIGateway:     {},
	ModuleMLModel:        {},
	ModuleDatabase:       {},
	ModuleWorkflowEngine: {},
	ModuleCustom:         {},
}

// ModuleTypes returns every defined module type label.
func ModuleTypes() []ModuleType {
	return []ModuleType{
		ModuleDataProcessor, ModuleAPIGateway, ModuleMLModel,
		ModuleDatabase, ModuleWorkflowEngine, ModuleCustom,
	}
}

func (t ModuleType) String() string { return string(t) }

// Valid reports whether t is one of the defined labels.
func (t ModuleType) Valid() bool {
	_, ok := moduleTypes[t]
	return ok
}

// ParseModuleType converts a raw string into a ModuleType, rejecting anything
// outside the defined set.
func ParseModuleType(raw string) (ModuleType, error) {
	t := ModuleType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("unknown module type %q", raw)
	}
	return t, nil
}

func (t *ModuleType) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseModuleType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *ModuleType) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseModuleType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
