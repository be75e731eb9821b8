// Package timeseries provides year-indexed series data structures and
// alignment operations.
//
// This package includes the Series type for yearly observations with
// meaningful gaps (NaN marks a missing year), along with the cleaning and
// lag-alignment operations the regression and decomposition layers build on.
//
// # Creating a Series
//
// Create a series over consecutive years:
//
//	hires := timeseries.FromValues(2000, []float64{31, 35, 33, 40, 38})
//
// or with an explicit year axis (gaps allowed):
//
//	series, err := timeseries.New(
//	    []int{2000, 2001, 2004, 2005},
//	    []float64{31, 35, 40, math.NaN()},
//	)
//
// # Cleaning and Alignment
//
// Restrict two series to their jointly observed years:
//
//	xc, yc := timeseries.Clean(x, y)
//
// Pair X shifted forward by a lag against Y, keeping only jointly valid
// positions:
//
//	xl, ya := timeseries.AlignWithLag(x, y, 2)
//
// At lag 0 the two operations agree.
//
// # Loading from CSV
//
// Load year,value data from CSV files; blank or "NA" cells become missing
// observations rather than dropped rows:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "hires"
//	series, err := timeseries.LoadCSV("hires.csv", opts)
package timeseries
