package writefiles

import (
	"bufio"
	"fmt"
	"io"

	"github.com/notargets/gofdtd/FDTD"
	"github.com/notargets/gofdtd/utils"
)

// WriteASCII writes one line per cell, the cell coordinates followed by the value
func WriteASCII(w io.Writer, f FDTD.Field) (err error) {
	var (
		bw  = bufio.NewWriter(w)
		ind = make([]int, len(f.Shape))
	)
	for off, val := range f.Data {
		utils.Unflatten(f.Shape, off, ind)
		for n, i := range ind {
			if _, err = fmt.Fprintf(bw, "%e ", float64(i)*f.Spacing[n]); err != nil {
				return
			}
		}
		if _, err = fmt.Fprintf(bw, "%e\n", val); err != nil {
			return
		}
	}
	return bw.Flush()
}
