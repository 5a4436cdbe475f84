package transform

// ProvisionalParams put the Asakusabashi station area within a few hundred
// units of the game origin at about 11 game units per 0.001 degree. They stand
// in until an operator measures reference points.
var ProvisionalParams = Params{
	ScaleX:     11132.0,
	ScaleZ:     -11132.0,
	OffsetX:    -1556000.0,
	OffsetZ:    397500.0,
	OriginLat:  35.6963,
	OriginLng:  139.7832,
	OriginName: "Asakusabashi Station (provisional)",
}

// Provisional returns the transform built from ProvisionalParams.
func Provisional() *Transform {
	return &Transform{p: ProvisionalParams}
}
