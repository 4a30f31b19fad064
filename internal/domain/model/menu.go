package model

import (
	"fmt"
	"strings"
)

// MaxIdentifierBytes is the Telegram limit for callback_data.
const MaxIdentifierBytes = 64

// Button is one selectable option: the visible label and the identifier
// sent back when it is pressed.
type Button struct {
	Label string
	ID    string
}

type Row []Button

// MenuDefinition is an ordered sequence of rows. Menus are built once at
// startup and never mutated afterwards.
type MenuDefinition struct {
	Name string
	Rows []Row
}

func NewMenu(name string, rows ...Row) *MenuDefinition {
	return &MenuDefinition{Name: name, Rows: rows}
}

// Identifiers returns every button identifier in layout order.
func (m *MenuDefinition) Identifiers() []string {
	if m == nil {
		return nil
	}
	var ids []string
	for _, row := range m.Rows {
		for _, b := range row {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// Lookup returns the label of the button with the given identifier.
func (m *MenuDefinition) Lookup(id string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, row := range m.Rows {
		for _, b := range row {
			if b.ID == id {
				return b.Label, true
			}
		}
	}
	return "", false
}

// Validate reports empty, duplicate or oversized identifiers.
func (m *MenuDefinition) Validate() error {
	if m == nil {
		return fmt.Errorf("menu is nil")
	}
	seen := make(map[string]struct{})
	for i, row := range m.Rows {
		if len(row) == 0 {
			return fmt.Errorf("menu %q: row %d is empty", m.Name, i+1)
		}
		for _, b := range row {
			switch {
			case strings.TrimSpace(b.ID) == "":
				return fmt.Errorf("menu %q: button %q has no identifier", m.Name, b.Label)
			case len(b.ID) > MaxIdentifierBytes:
				return fmt.Errorf("menu %q: identifier %q exceeds %d bytes", m.Name, b.ID, MaxIdentifierBytes)
			case strings.TrimSpace(b.Label) == "":
				return fmt.Errorf("menu %q: identifier %q has no label", m.Name, b.ID)
			}
			if _, dup := seen[b.ID]; dup {
				return fmt.Errorf("menu %q: duplicate identifier %q", m.Name, b.ID)
			}
			seen[b.ID] = struct{}{}
		}
	}
	return nil
}
