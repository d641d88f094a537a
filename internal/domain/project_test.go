package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidShortID(t *testing.T) {
	for _, id := range []string{"SCL01", "KTX02", "ABC1234", "ABCDEF01", "scl01", "Ktx0234"} {
		assert.True(t, ValidShortID(id), "should accept %q", id)
	}
	for _, id := range []string{"", "AB1", "PHYSICS", "SCL123456", "SC01", "SCL01A", "SCL 01"} {
		assert.False(t, ValidShortID(id), "should reject %q", id)
	}
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "SCL01", (&Project{ID: "0123456789", ShortID: "SCL01"}).DisplayID())
	assert.Equal(t, "01234567", (&Project{ID: "0123456789"}).DisplayID())
	assert.Equal(t, "abc", (&Project{ID: "abc"}).DisplayID())
}

func TestShortName(t *testing.T) {
	p := &Project{Name: "SCL kiến trúc Trụ sở Quận 1"}
	assert.Equal(t, "Trụ sở Quận 1", p.ShortName())

	p = &Project{Name: "Nhà kho B"}
	assert.Equal(t, "Nhà kho B", p.ShortName())
}

func TestMilestone_RoundTripsEveryField(t *testing.T) {
	p := &Project{}
	for i, f := range MilestoneFields {
		v := string(rune('a' + i))
		p.SetMilestone(f, v)
		assert.Equal(t, v, p.Milestone(f), "field %s", f)
	}
	assert.Equal(t, "a", p.CapitalPlanApproval.Date)
	assert.Equal(t, "", p.Milestone(MilestoneField("unknown")))
}

func TestColorTag_Valid(t *testing.T) {
	assert.True(t, ColorDarkBlue.Valid())
	assert.False(t, ColorTag("magenta").Valid())
}

func TestMilestoneField_LabelCoversEveryField(t *testing.T) {
	for _, f := range MilestoneFields {
		assert.NotEqual(t, string(f), f.Label(), "missing label for %s", f)
	}
	assert.Equal(t, "unknown_field", MilestoneField("unknown_field").Label())
}
