package commands

import (
	"fmt"
	"text/tabwriter"

	uidUseCase "github.com/allisson/uids/internal/uid/usecase"
)

type variantOutput struct {
	Name   string `json:"name"`
	Tag    uint8  `json:"tag"`
	Blocks int    `json:"blocks"`
}

// RunListVariants prints the registered variants in registration order.
func RunListVariants(useCase uidUseCase.UidUseCase, io IOTuple, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	variants := useCase.Variants()

	if format == "json" {
		output := make([]variantOutput, 0, len(variants))
		for _, v := range variants {
			output = append(output, variantOutput{Name: v.Name, Tag: v.Tag, Blocks: v.Blocks})
		}
		return writeJSON(io.Writer, output)
	}

	w := tabwriter.NewWriter(io.Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTAG\tBLOCKS")
	for _, v := range variants {
		_, _ = fmt.Fprintf(w, "%s\t%04b\t%d\n", v.Name, v.Tag, v.Blocks)
	}
	return w.Flush()
}
