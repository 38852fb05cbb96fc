package model

// FeatureCount is the number of slots in a FeatureVector.
const FeatureCount = 9

// Feature slot indexes. Slot i always corresponds to FeatureNames[i].
const (
	FeatureHasIP = iota
	FeatureSubdomainCount
	FeatureSuspiciousWords
	FeatureAtSymbols
	FeatureExternalAnchors
	FeatureHasPasswordField
	FeatureNotHTTPS
	FeatureURLLength
	FeatureTitleLength
)

// FeatureNames lists the exported feature names in vector order.
//
// external_anchors, has_password_field and title_length are always zero
// offline; they keep the vector shape compatible with the in-browser
// extractor that has access to the page.
var FeatureNames = [FeatureCount]string{
	"has_ip",
	"subdomain_count",
	"suspicious_words",
	"at_symbols",
	"external_anchors",
	"has_password_field",
	"not_https",
	"url_length",
	"title_length",
}

// FeatureVector is the numeric representation of a URL.
type FeatureVector [FeatureCount]float64

// Slice returns the vector as a newly allocated slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// FeatureNameList returns FeatureNames as a slice.
func FeatureNameList() []string {
	out := make([]string, FeatureCount)
	copy(out, FeatureNames[:])
	return out
}
