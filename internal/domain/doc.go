// Package domain turns City Scan tabular extracts into the normalized tables
// read by the visualization layer.
//
// # Data Source
//
// Extracts come from the City Scan analysis workflow (the "tabular output"
// folder and the interim Scan Calculation Sheet). Each extract is a flat CSV
// with a header row. Column names are taken verbatim from the workflow, which
// is why they mix styles ("Pixel Count", "cumulative sq km", "pctile_95").
//
// # Output Conventions
//
// Every transform produces one or more [Table] values whose header is fixed
// per dataset. Output files are named after the short dataset code:
//
//	pg.csv    population growth
//	pas.csv   population by age bracket and sex
//	uba.csv   urban built-up area
//	pug.csv   population vs. urban growth (join of pg.csv and uba.csv)
//	lc.csv    land cover
//	pv.csv    photovoltaic potential
//	cu.csv, fu.csv, pu.csv, comb.csv   coastal, fluvial, pluvial, combined flood
//	ee.csv    earthquake events
//	fwi.csv   fire weather index
//
// Numeric conventions:
//
//	Rounding is half-to-even at a fixed number of places per column (see
//	[Precision]), matching NumPy so reruns are byte-for-byte identical.
//	Floats always carry a decimal point ("5.0"); integer columns do not.
//	Undefined values (first growth row, zero denominators) are empty fields.
//
// Missing cells:
//
//	"", "NA", "NaN", "nan" and "null" are treated as missing. Rows whose sort
//	key (year, month, week) is missing or not an integer are dropped with a
//	warning; other missing numbers propagate as undefined.
//
// # Classification Tables
//
// Fire weather danger (European Forest Fire Information System classes):
//
//	<5.2 Very low | <11.2 Low | <21.3 Moderate | <38.0 High | <50.0 Very high | else Extreme
//
// ISO week to month buckets use fixed week counts, not calendar dates:
//
//	1-4 Jan | 5-9 Feb | 10-13 Mar | 14-17 Apr | 18-22 May | 23-26 Jun
//	27-30 Jul | 31-35 Aug | 36-39 Sep | 40-43 Oct | 44-47 Nov | 48-53 Dec
package domain
