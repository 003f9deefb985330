package gmm

// Static capability declarations the hazard framework queries before
// invoking the model. These describe what the model supports; they have no
// runtime behavior.

const (
	// TectonicRegion is the supported tectonic region type.
	TectonicRegion = "Vrancea Intermediate Depth"

	// IMComponent is the supported intensity measure component.
	IMComponent = "Average Horizontal"
)

// SupportedIMTs lists the intensity measure families the model declares.
func SupportedIMTs() []IMTType {
	return []IMTType{TypePGA, TypeSA}
}

// SupportedStdDevKinds lists the dispersion kinds the model can return.
func SupportedStdDevKinds() []StdDevKind {
	return []StdDevKind{StdDevTotal, StdDevInterEvent, StdDevIntraEvent}
}

// RequiredSiteParams lists the per-site inputs the model needs.
func RequiredSiteParams() []string {
	return []string{"vs30", "backarc"}
}

// RequiredRuptureParams lists the rupture inputs the model needs.
func RequiredRuptureParams() []string {
	return []string{"mag", "hypo_depth"}
}

// RequiredDistances lists the distance measures the model needs.
func RequiredDistances() []string {
	return []string{"rhypo"}
}
