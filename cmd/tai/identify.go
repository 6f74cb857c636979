package main

import (
	"fmt"
	"image/color"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/therealolds/Tai/internal/iccprofile"
	"github.com/therealolds/Tai/internal/imagefile"
	"github.com/therealolds/Tai/internal/ir"
	"github.com/therealolds/Tai/internal/jpeg"
)

func newIdentifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify [file]",
		Short: "Inspect image format, layout and ICC profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runIdentify,
	}
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	name, cfg, err := imagefile.Sniff(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "File:        %s\n", path)
	fmt.Fprintf(w, "Format:      %s\n", name)
	fmt.Fprintf(w, "Dimensions:  %d x %d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(w, "File size:   %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))
	if _, err := ir.ParseFormat(name); err != nil {
		fmt.Fprintf(w, "Splittable:  no (%v)\n", err)
	} else {
		fmt.Fprintln(w, "Splittable:  yes")
	}

	if name != "jpeg" {
		fmt.Fprintf(w, "Color model: %s\n", colorModelName(cfg.ColorModel))
		return nil
	}

	info, err := jpeg.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	fmt.Fprintf(w, "Color space: %s\n", info.ColorSpace)
	fmt.Fprintf(w, "Components:  %d\n", info.NumComponents)
	for i, c := range info.Components {
		fmt.Fprintf(w, "  #%d sampling %s, quant table %d\n", i, c.Sampling, c.QuantTable)
	}
	for _, slot := range slices.Sorted(maps.Keys(info.QuantTables)) {
		fmt.Fprintf(w, "Quant table %d: DC %d\n", slot, info.QuantTables[slot][0])
	}
	if info.Subsampled() {
		fmt.Fprintln(w, "Chroma:      subsampled")
	} else {
		fmt.Fprintln(w, "Chroma:      full resolution")
	}
	printICC(w, info.ICC)
	return nil
}

func printICC(w io.Writer, icc []byte) {
	if icc == nil {
		fmt.Fprintln(w, "ICC profile: none")
		return
	}
	pi, err := iccprofile.Parse(icc)
	if err != nil {
		fmt.Fprintf(w, "ICC profile: present (%d bytes) but invalid: %v\n", len(icc), err)
		return
	}
	fmt.Fprintf(w, "ICC profile: %d bytes\n", len(icc))
	fmt.Fprintf(w, "  Version:     %s\n", pi.Version)
	fmt.Fprintf(w, "  Color space: %s\n", iccprofile.ColorSpaceName(pi.ColorSpace))
	fmt.Fprintf(w, "  PCS:         %s\n", iccprofile.ColorSpaceName(pi.PCS))
	fmt.Fprintf(w, "  Class:       %s\n", iccprofile.ClassName(pi.Class))
}

func colorModelName(m color.Model) string {
	if p, ok := m.(color.Palette); ok {
		return fmt.Sprintf("Paletted (%d colors)", len(p))
	}
	switch m {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.CMYKModel:
		return "CMYK"
	case color.YCbCrModel:
		return "YCbCr"
	}
	return fmt.Sprintf("%T", m)
}
