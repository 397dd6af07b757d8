package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"framepass/internal/surface"
)

func newFormatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "formats",
		Short:       "List pixel formats and their enhancement-engine entries",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := surface.Formats()
			if asJSON {
				return writeJSON(cmd, formatViews(formats))
			}
			rows := make([][]string, 0, len(formats))
			for _, f := range formats {
				v := f.Vebox()
				bits := "-"
				if depth := f.BitDepth(); depth > 0 {
					bits = strconv.FormatUint(uint64(depth), 10)
				}
				rows = append(rows, []string{
					f.String(),
					bits,
					f.ColorPack().String(),
					yesNo(f.HasAlpha()),
					yesNo(v.DenoiseSupported),
					fmt.Sprintf("%dx%d", v.HorizontalAlign, v.VerticalAlign),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				{title: "Format"},
				{title: "Bits", numeric: true},
				{title: "Subsampling"},
				{title: "Alpha"},
				{title: "Denoise"},
				{title: "Align", numeric: true},
			}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

type formatView struct {
	Name        string `json:"name"`
	BitDepth    uint32 `json:"bit_depth"`
	Subsampling string `json:"subsampling"`
	Alpha       bool   `json:"alpha"`
	RGB64Float  bool   `json:"rgb64_float"`
	Denoise     bool   `json:"denoise"`
	AlignH      uint32 `json:"align_h"`
	AlignV      uint32 `json:"align_v"`
}

func formatViews(formats []surface.Format) []formatView {
	out := make([]formatView, 0, len(formats))
	for _, f := range formats {
		v := f.Vebox()
		out = append(out, formatView{
			Name:        f.String(),
			BitDepth:    f.BitDepth(),
			Subsampling: f.ColorPack().String(),
			Alpha:       f.HasAlpha(),
			RGB64Float:  f.IsRGB64Float(),
			Denoise:     v.DenoiseSupported,
			AlignH:      v.HorizontalAlign,
			AlignV:      v.VerticalAlign,
		})
	}
	return out
}
