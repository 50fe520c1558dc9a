package domain

import "errors"

var errLegUnset = errors.New("distance not computed")

// Leg is the outcome of one distance lookup: home to the morning site,
// or the evening site back home.
//
// A Leg either carries a distance in kilometers or the reason the lookup
// failed. Callers decide explicitly how a failed leg is counted.
type Leg struct {
	km  float64
	err error
	set bool
}

// LegKm returns a successful leg.
func LegKm(km float64) Leg { return Leg{km: km, set: true} }

// LegFailed returns a leg whose distance is unknown.
func LegFailed(err error) Leg {
	if err == nil {
		err = errLegUnset
	}
	return Leg{err: err, set: true}
}

// Km returns the distance and whether it is known.
func (l Leg) Km() (float64, bool) {
	if !l.set || l.err != nil {
		return 0, false
	}
	return l.km, true
}

// Err returns the lookup failure, or nil for a known distance.
func (l Leg) Err() error {
	if !l.set {
		return errLegUnset
	}
	return l.err
}

// KmOrZero counts an unknown distance as 0 km.
func (l Leg) KmOrZero() float64 {
	km, _ := l.Km()
	return km
}

// Ptr returns the distance as a pointer, nil when unknown.
func (l Leg) Ptr() *float64 {
	km, ok := l.Km()
	if !ok {
		return nil
	}
	return &km
}
