package domain

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Tracking is the decoded shape of the Invoice.Tracking JSON column.
type Tracking struct {
	Milestones []Milestone `json:"milestones"`
}

// Milestones decodes the invoice's tracking data. Absent or malformed
// tracking reads as nil, never as an error.
func (i Invoice) Milestones() []Milestone {
	return DecodeTracking(i.Tracking)
}

// DecodeTracking decodes raw tracking JSON, degrading to nil on any
// malformed input.
func DecodeTracking(raw datatypes.JSON) []Milestone {
	if len(raw) == 0 {
		return nil
	}
	var tracking Tracking
	if err := json.Unmarshal(raw, &tracking); err != nil {
		return nil
	}
	if len(tracking.Milestones) == 0 {
		return nil
	}
	return tracking.Milestones
}

// EncodeTracking encodes milestones back into the stored JSON shape.
func EncodeTracking(milestones []Milestone) (datatypes.JSON, error) {
	raw, err := json.Marshal(Tracking{Milestones: milestones})
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// AppendMilestone returns the tracking JSON with one more milestone
// recorded. Existing malformed tracking is replaced rather than kept.
func AppendMilestone(raw datatypes.JSON, m Milestone) (datatypes.JSON, error) {
	milestones := DecodeTracking(raw)
	return EncodeTracking(append(milestones, m))
}
