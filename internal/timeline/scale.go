package timeline

// Mode names a coordinate space.
type Mode string

const (
	ModePercent Mode = "percent"
	ModePixel   Mode = "pixel"
)

// ParseMode accepts "percent" or "pixel".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModePercent, ModePixel:
		return Mode(s), true
	}
	return "", false
}

const (
	// PercentMargin is the gutter kept on each side in percent mode.
	PercentMargin = 2.0
	// LabelWidthPercent is the nominal label width in percent mode.
	LabelWidthPercent = 9.0
	// LabelMarginPercent is the minimum gap between labels in one lane.
	LabelMarginPercent = 1.0

	// DefaultPixelsPerDay is the horizontal density in pixel mode.
	DefaultPixelsPerDay = 5.0
	// LabelWidthPixels is the nominal label width in pixel mode.
	LabelWidthPixels = 100.0
	// LabelMarginPixels is the minimum gap between labels in one lane.
	LabelMarginPixels = 10.0
	// DefaultPadDays pads pixel-mode spans on both sides.
	DefaultPadDays = 30
)

// Scaler maps day offsets into one coordinate space and reports the label
// footprint in that same space.
type Scaler interface {
	Mode() Mode
	Scale(dayOffset int, span Span) float64
	HalfLabelWidth() float64
	LabelMargin() float64
	Width(span Span) float64
}

// PercentScaler fits the whole span into [margin, 100-margin].
type PercentScaler struct {
	Margin float64
}

// NewPercentScaler returns the default percent scaler.
func NewPercentScaler() PercentScaler {
	return PercentScaler{Margin: PercentMargin}
}

func (s PercentScaler) Mode() Mode { return ModePercent }

func (s PercentScaler) Scale(dayOffset int, span Span) float64 {
	if span.TotalDays <= 0 {
		return s.Margin
	}
	return s.Margin + float64(dayOffset)/float64(span.TotalDays)*(100-2*s.Margin)
}

func (s PercentScaler) HalfLabelWidth() float64 { return LabelWidthPercent / 2 }

func (s PercentScaler) LabelMargin() float64 { return LabelMarginPercent }

func (s PercentScaler) Width(Span) float64 { return 100 }

// PixelScaler places each day a fixed number of pixels from the span start.
type PixelScaler struct {
	PixelsPerDay float64
}

// NewPixelScaler returns a pixel scaler; non-positive densities fall back
// to DefaultPixelsPerDay.
func NewPixelScaler(pixelsPerDay float64) PixelScaler {
	if pixelsPerDay <= 0 {
		pixelsPerDay = DefaultPixelsPerDay
	}
	return PixelScaler{PixelsPerDay: pixelsPerDay}
}

func (s PixelScaler) Mode() Mode { return ModePixel }

func (s PixelScaler) Scale(dayOffset int, _ Span) float64 {
	return float64(dayOffset) * s.PixelsPerDay
}

func (s PixelScaler) HalfLabelWidth() float64 { return LabelWidthPixels / 2 }

func (s PixelScaler) LabelMargin() float64 { return LabelMarginPixels }

func (s PixelScaler) Width(span Span) float64 { return float64(span.TotalDays) * s.PixelsPerDay }

// ScalerFor returns the default scaler for a mode.
func ScalerFor(mode Mode, pixelsPerDay float64) Scaler {
	if mode == ModePixel {
		return NewPixelScaler(pixelsPerDay)
	}
	return NewPercentScaler()
}
