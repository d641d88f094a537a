package timeline

import "math"

// LaneAssigner packs labels into the four lanes for one layout run. A start
// event takes the first lane, in LanePreference order, whose last label
// ends at least one margin before this label begins; when none is free it
// overflows into LaneOuterBelow. An end event follows its task's lane.
type LaneAssigner struct {
	half      float64
	margin    float64
	last      [LaneOuterBelow + 1]float64
	byTask    map[string]Lane
	fallbacks int
}

// NewLaneAssigner sizes the assigner from the scaler's label footprint.
func NewLaneAssigner(sc Scaler) *LaneAssigner {
	a := &LaneAssigner{
		half:   sc.HalfLabelWidth(),
		margin: sc.LabelMargin(),
		byTask: make(map[string]Lane),
	}
	for i := range a.last {
		a.last[i] = math.Inf(-1)
	}
	return a
}

// Place assigns a lane to the label centred at pos.
func (a *LaneAssigner) Place(taskName string, role EventRole, pos float64) Lane {
	var lane Lane
	if role == RoleEnd {
		var ok bool
		if lane, ok = a.byTask[taskName]; !ok {
			lane = LaneInnerAbove
		}
	} else {
		lane = a.free(pos)
		a.byTask[taskName] = lane
	}

	if right := pos + a.half; right > a.last[lane] {
		a.last[lane] = right
	}
	return lane
}

func (a *LaneAssigner) free(pos float64) Lane {
	for _, l := range LanePreference {
		if pos-a.half >= a.last[l]+a.margin {
			return l
		}
	}
	a.fallbacks++
	return LaneOuterBelow
}

// TaskLane returns the lane recorded for a task's start event.
func (a *LaneAssigner) TaskLane(taskName string) (Lane, bool) {
	l, ok := a.byTask[taskName]
	return l, ok
}

// Fallbacks counts start events that found no free lane.
func (a *LaneAssigner) Fallbacks() int {
	return a.fallbacks
}
