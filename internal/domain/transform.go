package domain

import "fmt"

// Transform runs the transform selected by kind. Most kinds take a single
// source; KindPopulationUrbanGrowth takes pg.csv then uba.csv.
func Transform(kind Kind, sources []Source, opts Options) (Result, error) {
	if want := kind.Inputs(); want == 0 || len(sources) != want {
		return Result{}, fmt.Errorf("transform %s: want %d inputs, got %d", kind, kind.Inputs(), len(sources))
	}

	switch kind {
	case KindPopulationGrowth:
		return PopulationGrowth(sources[0], opts)
	case KindPopulationAgeSex:
		return PopulationAgeSex(sources[0], opts)
	case KindUrbanBuiltUpArea:
		return UrbanBuiltUpArea(sources[0], opts)
	case KindPopulationUrbanGrowth:
		return PopulationUrbanGrowth(sources[0], sources[1], opts)
	case KindLandCover:
		return LandCover(sources[0], opts)
	case KindSolar:
		return Solar(sources[0], opts)
	case KindFlood:
		return Flood(sources[0], opts)
	case KindEarthquake:
		return Earthquake(sources[0], opts)
	case KindFireWeather:
		return FireWeather(sources[0], opts)
	default:
		return Result{}, fmt.Errorf("transform %s: %w", kind, ErrAmbiguousSelection)
	}
}

// Header returns the fixed header of an output table by name, e.g. "pg" or "fu".
func Header(table string) ([]string, bool) {
	switch table {
	case "pg":
		return PopulationGrowthHeader, true
	case "pas":
		return PopulationAgeSexHeader, true
	case "uba":
		return UrbanBuiltUpAreaHeader, true
	case "pug":
		return PopulationUrbanGrowthHeader, true
	case "lc":
		return LandCoverHeader, true
	case "pv":
		return SolarHeader, true
	case "ee":
		return EarthquakeHeader, true
	case "fwi":
		return FireWeatherHeader, true
	}
	for _, ft := range FloodTypes {
		if ft.Code == table {
			return FloodHeader(ft.Code), true
		}
	}
	return nil, false
}

// TableNames lists every output table name in a stable order.
func TableNames() []string {
	names := []string{"pg", "pas", "uba", "pug", "lc", "pv"}
	for _, ft := range FloodTypes {
		names = append(names, ft.Code)
	}
	return append(names, "ee", "fwi")
}
