package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MoveSlotCount is the fixed width of every moveset. A slot without a real
// move holds the empty string.
const MoveSlotCount = 4

// MoveSlots is a fixed-width moveset stored as a JSON array so the same
// column works on Postgres and the sqlite test driver.
type MoveSlots []string

// NewMoveSlots returns a moveset normalized to exactly MoveSlotCount entries.
func NewMoveSlots(moves []string) MoveSlots {
	slots := make(MoveSlots, MoveSlotCount)
	for i := 0; i < MoveSlotCount && i < len(moves); i++ {
		slots[i] = moves[i]
	}
	return slots
}

// IsFull reports whether the moveset has the required fixed width.
func (m MoveSlots) IsFull() bool {
	return len(m) == MoveSlotCount
}

// Value marshals the moveset as a JSON array literal.
func (m MoveSlots) Value() (driver.Value, error) {
	if !m.IsFull() {
		return nil, fmt.Errorf("move slots: expected %d entries, got %d", MoveSlotCount, len(m))
	}
	encoded, err := json.Marshal([]string(m))
	if err != nil {
		return nil, fmt.Errorf("move slots: %w", err)
	}
	return string(encoded), nil
}

// Scan decodes the stored JSON array and normalizes it to the fixed width.
func (m *MoveSlots) Scan(value interface{}) error {
	if value == nil {
		*m = NewMoveSlots(nil)
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("move slots: unsupported scan type %T", value)
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("move slots: %w", err)
	}
	*m = NewMoveSlots(decoded)
	return nil
}
