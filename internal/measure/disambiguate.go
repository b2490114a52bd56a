package measure

// ReferenceIndex returns 0 when first is the reference and 1 when second
// is. With SideLeft the extent with the smaller CentroidX is the reference;
// with SideRight the larger one is. Equal centroids resolve to first.
func ReferenceIndex(first, second OrientedExtent, side Side) int {
	secondIsRef := second.CentroidX < first.CentroidX
	if side == SideRight {
		secondIsRef = second.CentroidX > first.CentroidX
	}
	if secondIsRef {
		return 1
	}
	return 0
}

// Disambiguate assigns roles to the two extents found in one photograph
// using ReferenceIndex.
func Disambiguate(first, second OrientedExtent, side Side) ViewObservation {
	pair := [2]OrientedExtent{first, second}
	ref := ReferenceIndex(first, second, side)
	return ViewObservation{Reference: pair[ref], Target: pair[1-ref]}
}
