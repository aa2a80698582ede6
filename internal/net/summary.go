package net

import (
	"fmt"
	"io"
)

// Summary writes a table of the layers and their parameter counts to w.
func (n *Network) Summary(w io.Writer) {
	n.mu.Lock()
	defer n.mu.Unlock()

	fmt.Fprintln(w, "Model: Feedforward")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")

	if len(n.sizes) > 0 {
		fmt.Fprintf(w, "%-25s %-20s %-10d\n", "Input", fmt.Sprintf("(%d)", n.sizes[0]), 0)
	}
	totalParams := 0
	for i, l := range n.layers {
		params := l.OutSize()*l.InSize() + l.OutSize()
		totalParams += params
		fmt.Fprintf(w, "%-25s %-20s %-10d\n", fmt.Sprintf("Dense_%d (sigmoid)", i), fmt.Sprintf("(%d)", l.OutSize()), params)
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", totalParams)
	fmt.Fprintln(w, "_________________________________________________________________")
}
