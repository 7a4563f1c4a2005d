package rleimage

import "golang.org/x/exp/constraints"

// VolumeOption configures a Volume during construction. Use functional
// options to customize Volume behavior, the same convention gg uses
// for ContextOption.
type VolumeOption[C constraints.Unsigned, P comparable] func(*volumeOptions[C, P])

// volumeOptions holds optional configuration for Volume creation.
type volumeOptions[C constraints.Unsigned, P comparable] struct {
	cleanup      bool
	defaultValue P
}

// defaultVolumeOptions mirrors itkRLEImage.h's m_OnTheFlyCleanup{true}
// default member initializer.
func defaultVolumeOptions[C constraints.Unsigned, P comparable]() volumeOptions[C, P] {
	return volumeOptions[C, P]{cleanup: true}
}

// WithOnTheFlyCleanup sets the initial on-the-fly cleanup mode: whether
// every Line Edit restores canonical form locally as it happens, rather
// than leaving that to an explicit Clean pass. Defaults to true.
//
// Example:
//
//	vol := rleimage.New[uint8, uint16](region, rleimage.WithOnTheFlyCleanup[uint8, uint16](false))
func WithOnTheFlyCleanup[C constraints.Unsigned, P comparable](v bool) VolumeOption[C, P] {
	return func(o *volumeOptions[C, P]) {
		o.cleanup = v
	}
}

// WithDefaultValue sets the pixel value Allocate fills every buffered
// line with. Defaults to the zero value of P.
func WithDefaultValue[C constraints.Unsigned, P comparable](v P) VolumeOption[C, P] {
	return func(o *volumeOptions[C, P]) {
		o.defaultValue = v
	}
}
