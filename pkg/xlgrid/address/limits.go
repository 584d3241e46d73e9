package address

// Sheet limits of the spreadsheet format. Label arithmetic itself is unbounded;
// these bound what a document may contain.
const (
	// MaxColumns is the number of columns a worksheet may hold (A through XFD).
	MaxColumns = 16384
	// MaxRows is the number of rows a worksheet may hold.
	MaxRows = 1048576
)
