package internal

// AirspaceZone is static, compiled-in reference data drawn onto the scope
// face when its circle intersects the active range.
type AirspaceZone struct {
	Name      string
	ShortCode string
	Center    Coordinates
	RadiusKm  float64
}

// Zones around the default observer position in the Vale of York. Military
// aerodrome traffic zones dominate the area, which is also why the inbound
// alert exists in the first place.
var Zones = []AirspaceZone{
	{
		Name:      "Leeds Bradford CTR",
		ShortCode: "LBA",
		Center:    Coordinates{Latitude: 53.8659, Longitude: -1.6606},
		RadiusKm:  9.3,
	},
	{
		Name:      "Linton-on-Ouse MATZ",
		ShortCode: "LIN",
		Center:    Coordinates{Latitude: 54.0489, Longitude: -1.2525},
		RadiusKm:  9.3,
	},
	{
		Name:      "Topcliffe MATZ",
		ShortCode: "TOP",
		Center:    Coordinates{Latitude: 54.2055, Longitude: -1.3820},
		RadiusKm:  9.3,
	},
	{
		Name:      "Church Fenton ATZ",
		ShortCode: "CFN",
		Center:    Coordinates{Latitude: 53.8343, Longitude: -1.1955},
		RadiusKm:  4.6,
	},
}
