// Package options contains the program options.
package options

// Program options of the graphics tool.
type Program struct {
	Input     string // input ROM file
	Output    string // output ROM file written by injection
	OutputDir string // directory extracted assets are written to

	InjectConfig string // JSON batch file describing images to inject

	Verify bool // round-trip verify every asset instead of extracting
	Debug  bool
	Quiet  bool
}
